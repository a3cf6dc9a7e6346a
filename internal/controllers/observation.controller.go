package controllers

import (
	"log"
	"net/http"

	"caloria/internal/services"
	"caloria/internal/utils"

	"github.com/gin-gonic/gin"
)

type ObservationController struct {
	recalculator *services.Recalculator
	publisher    ObservationPublisher
	cache        BudgetCache
}

func NewObservationController(recalculator *services.Recalculator, publisher ObservationPublisher, cache BudgetCache) *ObservationController {
	return &ObservationController{
		recalculator: recalculator,
		publisher:    publisher,
		cache:        cache,
	}
}

type consumptionRequest struct {
	Date     string `json:"date" binding:"required" example:"2023-01-04"`
	Calories int    `json:"calories" binding:"required" example:"1850"`
	DayType  string `json:"day_type" example:"normal"`
}

type exerciseRequest struct {
	Date     string `json:"date" binding:"required" example:"2023-01-04"`
	Calories int    `json:"calories" binding:"required" example:"300"`
}

// LogConsumption godoc
// @Summary Log consumed calories for a date
// @Description Upsert the day's consumed calories and recompute the period totals
// @Tags observation
// @Accept json
// @Produce json
// @Param observation body consumptionRequest true "Consumption data"
// @Success 200 {object} map[string]interface{} "Observation recorded successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "No active period covers the date"
// @Router /observation [post]
func (oc *ObservationController) LogConsumption(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req consumptionRequest
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

	result, err := oc.recalculator.LogConsumption(userID, date, req.Calories, req.DayType)
	if err != nil {
		respondEngineError(c, err, "Failed to record observation")
		return
	}

	oc.notify(userID, req.Date)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Observation recorded successfully",
		"data":    result,
	})
}

// LogExercise godoc
// @Summary Log an exercise burn for a date
// @Description Upsert the day's burned calories, creating the observation row with zero consumed calories when absent, and recompute the period totals
// @Tags observation
// @Accept json
// @Produce json
// @Param observation body exerciseRequest true "Exercise data"
// @Success 200 {object} map[string]interface{} "Exercise recorded successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "No active period covers the date"
// @Router /observation/exercise [post]
func (oc *ObservationController) LogExercise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req exerciseRequest
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

	result, err := oc.recalculator.LogExerciseBurn(userID, date, req.Calories)
	if err != nil {
		respondEngineError(c, err, "Failed to record exercise")
		return
	}

	oc.notify(userID, req.Date)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Exercise recorded successfully",
		"data":    result,
	})
}

// notify invalidates the cached adjusted budget and publishes the
// observation event. Both are best effort; the inline recalculation above
// already committed the new state.
func (oc *ObservationController) notify(userID uint, date string) {
	if oc.cache != nil {
		if err := oc.cache.InvalidateAdjustedBudget(userID, date); err != nil {
			log.Printf("cache invalidation failed for user %d on %s: %v", userID, date, err)
		}
	}
	if oc.publisher != nil {
		parsed, err := utils.ParseCivilDate(date)
		if err != nil {
			return
		}
		if err := oc.publisher.ObservationLogged(userID, parsed, string(services.ReasonObservationEvent)); err != nil {
			log.Printf("observation event publish failed for user %d on %s: %v", userID, date, err)
		}
	}
}
