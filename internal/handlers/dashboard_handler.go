package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/dataswift/internal/helpers"
	"github.com/farellandr/dataswift/internal/models"
	"github.com/farellandr/dataswift/internal/store"
)

// GetDashboard returns the read-only aggregate summary. Totals are global:
// an admin reads the volume as revenue, a user as spend.
func GetDashboard(c *gin.Context) {
	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	transactions := st.Transactions()

	var totalVolume float64
	pending, failed := 0, 0
	for _, tx := range transactions {
		switch tx.Status {
		case models.StatusSuccess:
			totalVolume += tx.Amount
		case models.StatusPending:
			pending++
		case models.StatusFailed:
			failed++
		}
	}

	recent := transactions
	if len(recent) > 4 {
		recent = recent[:4]
	}

	resp := gin.H{
		"total_volume":      totalVolume,
		"transaction_count": len(transactions),
		"recent":            recent,
	}

	role, _ := c.Get("role")
	if role == models.RoleAdmin {
		clients, staff := 0, 0
		for _, u := range st.Users() {
			if u.Role == models.RoleAdmin {
				staff++
			} else {
				clients++
			}
		}
		resp["pending_orders"] = pending
		resp["failed_orders"] = failed
		resp["client_count"] = clients
		resp["staff_count"] = staff
	}

	c.JSON(http.StatusOK, resp)
}
