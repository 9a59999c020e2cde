package handlers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/farellandr/dataswift/internal/helpers"
	"github.com/farellandr/dataswift/internal/models"
	"github.com/farellandr/dataswift/internal/store"
)

type PurchaseRequest struct {
	Network   models.Network `json:"network" binding:"required,oneof=MTN Telecel AT"`
	PlanID    string         `json:"plan_id" binding:"required"`
	Recipient string         `json:"recipient" binding:"required,min=10"`
}

func paymentDelay() time.Duration {
	if raw := os.Getenv("PAYMENT_DELAY_MS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			return time.Duration(parsed) * time.Millisecond
		}
	}
	return time.Second
}

// CreatePurchase places a bundle order. The payment step is a fixed
// simulated delay with no failure path: the order always lands Pending and
// commits even if the caller goes away mid-delay. An admin reconciles the
// manual payment afterwards.
func CreatePurchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	plan, err := st.FindPlan(req.PlanID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Plan not found.")
		return
	}
	if plan.Network != req.Network {
		helpers.RespondWithError(c, http.StatusBadRequest, "Selected plan does not belong to the chosen network.")
		return
	}

	time.Sleep(paymentDelay())

	tx := st.AddTransaction(plan.Price, req.Recipient, plan.Label(), plan.Network)
	st.SetView(models.ViewHistory)

	c.JSON(http.StatusCreated, gin.H{
		"message":     fmt.Sprintf("Order for %s is processing. Our admins will verify payment.", req.Recipient),
		"transaction": tx,
		"view":        models.ViewHistory,
	})
}

// GenerateOrderQR renders the manual-payment reference for an order as a
// PNG QR code, signed so admins can verify it wasn't tampered with.
func GenerateOrderQR(c *gin.Context) {
	transactionID := c.Param("id")

	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	tx, err := st.FindTransaction(transactionID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Transaction not found.")
		return
	}

	signature := helpers.GenerateOrderSignature(tx.ID, tx.Recipient, os.Getenv("JWT_SECRET"))
	qrData := fmt.Sprintf("order:%s;recipient:%s;amount:%.2f;signature:%s",
		tx.ID, tx.Recipient, tx.Amount, signature)

	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

func extractOrderReference(qrData string) (transactionID, signature string, err error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[0], "order:") || !strings.HasPrefix(parts[3], "signature:") {
		return "", "", fmt.Errorf("invalid payment reference format")
	}
	return strings.TrimPrefix(parts[0], "order:"), strings.TrimPrefix(parts[3], "signature:"), nil
}

// VerifyOrderReference lets an admin check a buyer's payment reference
// before flipping the order status.
func VerifyOrderReference(c *gin.Context) {
	var req struct {
		QRData string `json:"qr_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	transactionID, signature, err := extractOrderReference(req.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment reference format.")
		return
	}

	tx, err := st.FindTransaction(transactionID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Transaction not found.")
		return
	}

	if !helpers.ValidateOrderSignature(tx.ID, tx.Recipient, os.Getenv("JWT_SECRET"), signature) {
		helpers.RespondWithError(c, http.StatusForbidden, "Invalid payment reference signature.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Payment reference verified.",
		"transaction": tx,
	})
}
