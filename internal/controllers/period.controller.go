package controllers

import (
	"net/http"
	"time"

	"caloria/internal/services"
	"caloria/internal/utils"

	"github.com/gin-gonic/gin"
)

type PeriodController struct {
	manager *services.PeriodManager
	worker  *services.RotationWorker
}

func NewPeriodController(manager *services.PeriodManager, worker *services.RotationWorker) *PeriodController {
	return &PeriodController{manager: manager, worker: worker}
}

type startBaselineRequest struct {
	StartDate string `json:"start_date" example:"2023-01-02"`
}

// StartBaseline godoc
// @Summary Open the baseline observation window
// @Description Start the one-time 7-day measurement window for the authenticated user. Reuses an already-active window.
// @Tags period
// @Accept json
// @Produce json
// @Param request body startBaselineRequest false "Optional start date, defaults to today"
// @Success 201 {object} map[string]interface{} "Baseline period started successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /period/baseline [post]
func (pc *PeriodController) StartBaseline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req startBaselineRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	startDate := time.Now()
	if req.StartDate != "" {
		parsed, err := utils.ParseCivilDate(req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid start date",
				"error":   err.Error(),
			})
			return
		}
		startDate = parsed
	}

	period, err := pc.manager.StartBaseline(userID, startDate)
	if err != nil {
		respondEngineError(c, err, "Failed to start baseline period")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Baseline period started successfully",
		"data":    period,
	})
}

// AbandonBaseline godoc
// @Summary Abandon the baseline observation window
// @Description Terminate the active baseline window for a declared-only estimate
// @Tags period
// @Produce json
// @Success 200 {object} map[string]interface{} "Baseline period abandoned"
// @Failure 404 {object} map[string]interface{} "No active baseline period"
// @Router /period/baseline/abandon [post]
func (pc *PeriodController) AbandonBaseline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	if err := pc.manager.AbandonBaseline(userID); err != nil {
		respondEngineError(c, err, "Failed to abandon baseline period")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Baseline period abandoned",
	})
}

// CreateOrRotatePeriod godoc
// @Summary Create or rotate the weekly tracking period
// @Description Idempotently ensure a tracking period covering today, rotating a lapsed period or completing the baseline flow as needed
// @Tags period
// @Produce json
// @Success 200 {object} map[string]interface{} "Period ensured successfully"
// @Failure 409 {object} map[string]interface{} "Insufficient or missing baseline data, or period conflict"
// @Failure 422 {object} map[string]interface{} "Synthesized budget below safety floor"
// @Router /period/rotate [post]
func (pc *PeriodController) CreateOrRotatePeriod(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	period, err := pc.manager.CreateOrRotate(userID, time.Now())
	if err != nil {
		respondEngineError(c, err, "Failed to create or rotate period")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Period ensured successfully",
		"data":    period,
	})
}

// RunRotationJob godoc
// @Summary Run the batch rotation sweep
// @Description Queue rotation for every user whose active period has lapsed. Invoked by the scheduled job runner with the cron bearer credential.
// @Tags jobs
// @Produce json
// @Success 200 {object} map[string]interface{} "Rotation sweep queued"
// @Failure 500 {object} map[string]interface{} "Failed to queue rotation sweep"
// @Router /jobs/rotate [post]
func (pc *PeriodController) RunRotationJob(c *gin.Context) {
	queued, err := pc.worker.EnqueueLapsed(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to queue rotation sweep",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Rotation sweep queued",
		"data":    gin.H{"queued_users": queued},
	})
}
