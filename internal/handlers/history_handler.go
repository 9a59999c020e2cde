package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/dataswift/internal/helpers"
	"github.com/farellandr/dataswift/internal/models"
	"github.com/farellandr/dataswift/internal/store"
)

// ListHistory returns the transaction feed, newest first. History is
// global, not per-account: every authenticated principal sees all records.
func ListHistory(c *gin.Context) {
	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	transactions := st.Transactions()

	if q := c.Query("q"); q != "" {
		lowered := strings.ToLower(q)
		filtered := make([]models.Transaction, 0, len(transactions))
		for _, tx := range transactions {
			if strings.Contains(strings.ToLower(tx.ID), lowered) ||
				strings.Contains(tx.Recipient, q) ||
				strings.Contains(strings.ToLower(tx.Plan), lowered) {
				filtered = append(filtered, tx)
			}
		}
		transactions = filtered
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
