package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/dataswift/internal/helpers"
	"github.com/farellandr/dataswift/internal/models"
	"github.com/farellandr/dataswift/internal/store"
)

type StatusRequest struct {
	Status models.Status `json:"status" binding:"required,oneof=Success Failed"`
}

type AdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// ListOrders combines the status facet with the free-text search over
// order id and recipient, both filters ANDed.
func ListOrders(c *gin.Context) {
	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	statusFilter := c.DefaultQuery("status", "All")
	if statusFilter != "All" && !models.Status(statusFilter).Valid() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown status filter.")
		return
	}
	q := c.Query("q")

	orders := make([]models.Transaction, 0)
	for _, tx := range st.Transactions() {
		if statusFilter != "All" && tx.Status != models.Status(statusFilter) {
			continue
		}
		if q != "" &&
			!strings.Contains(tx.Recipient, q) &&
			!strings.Contains(strings.ToLower(tx.ID), strings.ToLower(q)) {
			continue
		}
		orders = append(orders, tx)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func UpdateOrderStatus(c *gin.Context) {
	transactionID := c.Param("id")

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Status must be Success or Failed.")
		return
	}

	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	if err := st.UpdateTransactionStatus(transactionID, req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Transaction not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusConflict, "Transaction has already been reconciled.")
		return
	}

	tx, err := st.FindTransaction(transactionID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Transaction not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Order status updated successfully.",
		"transaction": tx,
	})
}

// ListClients searches end-user accounts by name or phone.
func ListClients(c *gin.Context) {
	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	q := c.Query("q")
	clients := make([]models.User, 0)
	for _, u := range st.Users() {
		if u.Role != models.RoleUser {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(u.Name), strings.ToLower(q)) &&
			!strings.Contains(u.Phone, q) {
			continue
		}
		clients = append(clients, u)
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// ListStaff searches admin accounts by name or email.
func ListStaff(c *gin.Context) {
	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	q := c.Query("q")
	staff := make([]models.User, 0)
	for _, u := range st.Users() {
		if u.Role != models.RoleAdmin {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(u.Name), strings.ToLower(q)) &&
			!strings.Contains(u.Email, q) {
			continue
		}
		staff = append(staff, u)
	}

	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

func DeleteClient(c *gin.Context) {
	userID := c.Param("id")

	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	if err := st.DeleteUser(userID); err != nil {
		if errors.Is(err, store.ErrRootAdmin) {
			helpers.RespondWithError(c, http.StatusForbidden, "The root administrator account cannot be removed.")
			return
		}
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed successfully."})
}

func ResetClientPassword(c *gin.Context) {
	userID := c.Param("id")

	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Password must be at least 6 characters.")
		return
	}

	actorID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	if err := st.UpdateUserPassword(userID, req.Password, actorID.(string)); err != nil {
		if errors.Is(err, store.ErrRootAdmin) {
			helpers.RespondWithError(c, http.StatusForbidden, "Only the root administrator can reset its own password.")
			return
		}
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully."})
}

func CreateAdmin(c *gin.Context) {
	var req AdminRequest
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

	admin := st.AddAdmin(req.Name, req.Email, req.Password)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin created successfully.",
		"admin":   admin,
	})
}

// GetAdminStats backs the console header cards.
func GetAdminStats(c *gin.Context) {
	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	var totalSales float64
	pending, failed := 0, 0
	transactions := st.Transactions()
	for _, tx := range transactions {
		switch tx.Status {
		case models.StatusSuccess:
			totalSales += tx.Amount
		case models.StatusPending:
			pending++
		case models.StatusFailed:
			failed++
		}
	}

	clients, staff := 0, 0
	for _, u := range st.Users() {
		if u.Role == models.RoleAdmin {
			staff++
		} else {
			clients++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_sales":    totalSales,
		"pending_orders": pending,
		"total_orders":   len(transactions),
		"failed_orders":  failed,
		"total_clients":  clients,
		"total_staff":    staff,
	})
}
