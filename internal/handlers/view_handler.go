package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/dataswift/internal/helpers"
	"github.com/farellandr/dataswift/internal/models"
	"github.com/farellandr/dataswift/internal/store"
)

type ViewRequest struct {
	View models.View `json:"view" binding:"required"`
}

// SetView is the flat view router: no history stack, just set-current-view.
// A view the role may not access silently lands on the dashboard instead of
// surfacing an error.
func SetView(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if !req.View.Valid() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown view.")
		return
	}

	role, exists := c.Get("role")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Role not found in token.")
		return
	}

	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	view := req.View
	if !models.CanAccess(view, role.(models.Role)) {
		view = models.ViewDashboard
	}
	st.SetView(view)

	c.JSON(http.StatusOK, gin.H{"view": view})
}
