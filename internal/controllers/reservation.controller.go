package controllers

import (
	"log"
	"net/http"
	"time"

	"caloria/internal/services"
	"caloria/internal/utils"

	"github.com/gin-gonic/gin"
)

// Cached adjusted-budget results go stale fast and are cheap to recompute.
const adjustedBudgetTTL = 10 * time.Minute

type ReservationController struct {
	distributor *services.OverageDistributor
	cache       BudgetCache
}

func NewReservationController(distributor *services.OverageDistributor, cache BudgetCache) *ReservationController {
	return &ReservationController{distributor: distributor, cache: cache}
}

type reserveRequest struct {
	Date            string `json:"date" binding:"required" example:"2023-01-07"`
	PlannedCalories int    `json:"planned_calories" binding:"required" example:"2500"`
	Note            string `json:"note" example:"birthday dinner"`
}

// Reserve godoc
// @Summary Reserve calories for a future exception day
// @Description Upsert a planned exception day. Past dates are rejected; a second reservation on the same date overwrites the first.
// @Tags reservation
// @Accept json
// @Produce json
// @Param reservation body reserveRequest true "Reservation data"
// @Success 200 {object} map[string]interface{} "Reservation saved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data or past date"
// @Router /reservation [post]
func (rc *ReservationController) Reserve(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	date, err := utils.ParseCivilDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid date",
			"error":   err.Error(),
		})
		return
	}

	reservation, err := rc.distributor.Reserve(userID, date, req.PlannedCalories, req.Note, time.Now())
	if err != nil {
		respondEngineError(c, err, "Failed to save reservation")
		return
	}

	rc.invalidate(userID, req.Date)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reservation saved successfully",
		"data":    reservation,
	})
}

// GetAdjustedBudget godoc
// @Summary Get the adjusted budget for a date
// @Description Return the distribution result for a date inside the active period: base budget, redistribution adjustment, reserved-day state, remaining ordinary days, and cumulative overage
// @Tags reservation
// @Produce json
// @Param date path string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Adjusted budget retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid date"
// @Failure 404 {object} map[string]interface{} "No active period covers the date"
// @Router /budget/adjusted/{date} [get]
func (rc *ReservationController) GetAdjustedBudget(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	dateParam := c.Param("date")
	date, err := utils.ParseCivilDate(dateParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid date",
			"error":   err.Error(),
		})
		return
	}

	if rc.cache != nil {
		if cached, found, err := rc.cache.GetAdjustedBudget(userID, dateParam); err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"status":  "success",
				"message": "Adjusted budget retrieved successfully",
				"data":    cached,
			})
			return
		}
	}

	budget, err := rc.distributor.AdjustedBudget(userID, date)
	if err != nil {
		respondEngineError(c, err, "Failed to compute adjusted budget")
		return
	}

	if rc.cache != nil {
		if err := rc.cache.StoreAdjustedBudget(userID, budget, adjustedBudgetTTL); err != nil {
			log.Printf("cache store failed for user %d on %s: %v", userID, dateParam, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Adjusted budget retrieved successfully",
		"data":    budget,
	})
}

// DeleteReservation godoc
// @Summary Delete a reservation
// @Description Remove the reservation for a date
// @Tags reservation
// @Produce json
// @Param date path string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Reservation deleted successfully"
// @Failure 400 {object} map[string]interface{} "Invalid date"
// @Router /reservation/{date} [delete]
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	dateParam := c.Param("date")
	date, err := utils.ParseCivilDate(dateParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid date",
			"error":   err.Error(),
		})
		return
	}

	if err := rc.distributor.DeleteReservation(userID, date); err != nil {
		respondEngineError(c, err, "Failed to delete reservation")
		return
	}

	rc.invalidate(userID, dateParam)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reservation deleted successfully",
	})
}

func (rc *ReservationController) invalidate(userID uint, date string) {
	if rc.cache == nil {
		return
	}
	if err := rc.cache.InvalidateAdjustedBudget(userID, date); err != nil {
		log.Printf("cache invalidation failed for user %d on %s: %v", userID, date, err)
	}
}
