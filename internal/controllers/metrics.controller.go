package controllers

import (
	"net/http"
	"strconv"

	"caloria/internal/repository"
	"caloria/internal/services"
	"caloria/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MetricsController struct {
	recalculator *services.Recalculator
	periodRepo   repository.WeeklyPeriodRepository
	snapshotRepo repository.WeeklyMetricSnapshotRepository
}

func NewMetricsController(recalculator *services.Recalculator, periodRepo repository.WeeklyPeriodRepository, snapshotRepo repository.WeeklyMetricSnapshotRepository) *MetricsController {
	return &MetricsController{recalculator: recalculator, periodRepo: periodRepo, snapshotRepo: snapshotRepo}
}

type recalculateRequest struct {
	Date string `json:"date" binding:"required" example:"2023-01-04"`
}

// RecalculateMetrics godoc
// @Summary Recalculate totals and adherence scores for a date
// @Description Recompute the period totals and the balance/consistency/drift scores, overwriting the single snapshot row for (user, period, date)
// @Tags metrics
// @Accept json
// @Produce json
// @Param request body recalculateRequest true "Calculation date"
// @Success 200 {object} map[string]interface{} "Metrics recalculated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "No active period covers the date"
// @Router /metrics/recalculate [post]
func (mc *MetricsController) RecalculateMetrics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req recalculateRequest
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

	result, err := mc.recalculator.Recalculate(userID, date, services.ReasonClientRequest)
	if err != nil {
		respondEngineError(c, err, "Failed to recalculate metrics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Metrics recalculated successfully",
		"data":    result,
	})
}

// GetPeriodSnapshots godoc
// @Summary Get all metric snapshots for a period
// @Description Retrieve the daily metric snapshots recorded for one weekly period, ordered by calculation date
// @Tags metrics
// @Produce json
// @Param period_id path int true "Weekly period ID"
// @Success 200 {object} map[string]interface{} "Snapshots retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid period ID"
// @Failure 404 {object} map[string]interface{} "Period not found"
// @Router /metrics/period/{period_id} [get]
func (mc *MetricsController) GetPeriodSnapshots(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	periodID, err := strconv.ParseUint(c.Param("period_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid period ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	period, err := mc.periodRepo.FindByID(uint(periodID))
	if err != nil {
		respondEngineError(c, err, "Period not found")
		return
	}
	if period.UserID != userID {
		// Never leak another user's period; indistinguishable from absent.
		respondEngineError(c, gorm.ErrRecordNotFound, "Period not found")
		return
	}

	snapshots, err := mc.snapshotRepo.FindByPeriod(userID, period.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve snapshots",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Snapshots retrieved successfully",
		"data": gin.H{
			"period_id":  period.ID,
			"start_date": utils.FormatCivilDate(period.StartDate),
			"end_date":   utils.FormatCivilDate(period.EndDate),
			"day_count":  period.DayCount(),
			"snapshots":  snapshots,
		},
	})
}

// GetPeriodSnapshot godoc
// @Summary Get the metric snapshot for one calculation date
// @Description Retrieve the single snapshot row recorded for (period, date)
// @Tags metrics
// @Produce json
// @Param period_id path int true "Weekly period ID"
// @Param date path string true "Calculation date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Snapshot retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid period ID or date"
// @Failure 404 {object} map[string]interface{} "Snapshot not found"
// @Router /metrics/period/{period_id}/{date} [get]
func (mc *MetricsController) GetPeriodSnapshot(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	periodID, err := strconv.ParseUint(c.Param("period_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid period ID",
			"error":   "ID must be a valid positive integer",
		})
		return
	}

	date, err := utils.ParseCivilDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid date",
			"error":   err.Error(),
		})
		return
	}

	snapshot, err := mc.snapshotRepo.FindByKey(userID, uint(periodID), date)
	if err != nil {
		respondEngineError(c, err, "Snapshot not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Snapshot retrieved successfully",
		"data":    snapshot,
	})
}
