package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/dataswift/internal/helpers"
	"github.com/farellandr/dataswift/internal/models"
	"github.com/farellandr/dataswift/internal/store"
)

type PlanRequest struct {
	Network  models.Network `json:"network" binding:"required,oneof=MTN Telecel AT"`
	Size     string         `json:"size" binding:"required"`
	Price    float64        `json:"price" binding:"required,gt=0"`
	Validity string         `json:"validity"`
}

func ListPlans(c *gin.Context) {
	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	plans := st.Plans()

	if network := c.Query("network"); network != "" {
		filtered := make([]models.DataPlan, 0, len(plans))
		for _, p := range plans {
			if p.Network == models.Network(network) {
				filtered = append(filtered, p)
			}
		}
		plans = filtered
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func CreatePlan(c *gin.Context) {
	var req PlanRequest
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

	validity := req.Validity
	if validity == "" {
		validity = "30 Days"
	}
	plan := st.AddPlan(req.Network, req.Size, req.Price, validity)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Plan created successfully.",
		"plan":    plan,
	})
}

// UpdatePlan backs the inline size/price edit on the plans tab.
func UpdatePlan(c *gin.Context) {
	planID := c.Param("id")

	var req PlanRequest
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

	plan, err := st.FindPlan(planID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Plan not found.")
		return
	}

	plan.Network = req.Network
	plan.Size = req.Size
	plan.Price = req.Price
	if req.Validity != "" {
		plan.Validity = req.Validity
	}

	if err := st.UpdatePlan(plan); err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Plan not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plan updated successfully.",
		"plan":    plan,
	})
}

func DeletePlan(c *gin.Context) {
	planID := c.Param("id")

	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	if err := st.DeletePlan(planID); err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Plan not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully."})
}
