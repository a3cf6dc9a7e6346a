package controllers

import (
	"net/http"
	"time"

	"caloria/internal/models"
	"caloria/internal/repository"
	"caloria/internal/services"
	"caloria/internal/utils"

	"github.com/gin-gonic/gin"
)

type BudgetController struct {
	profileRepo repository.MetabolicProfileRepository
	synthesizer *services.BudgetSynthesizer
}

func NewBudgetController(profileRepo repository.MetabolicProfileRepository, synthesizer *services.BudgetSynthesizer) *BudgetController {
	return &BudgetController{profileRepo: profileRepo, synthesizer: synthesizer}
}

type synthesizeRequest struct {
	Profile              models.ProfileInput `json:"profile" binding:"required"`
	MeasuredAverage      *float64            `json:"measured_average"`
	ActivityTierOverride int                 `json:"activity_tier_override"`
}

// EstimateBaseline godoc
// @Summary Estimate formula-based daily expenditure
// @Description Compute the Mifflin-St Jeor basal rate and activity-adjusted expenditure for a profile
// @Tags budget
// @Accept json
// @Produce json
// @Param profile body models.ProfileInput true "Physical profile"
// @Success 200 {object} map[string]interface{} "Estimate computed successfully"
// @Failure 400 {object} map[string]interface{} "Invalid profile input"
// @Router /budget/estimate [post]
func (bc *BudgetController) EstimateBaseline(c *gin.Context) {
	var input models.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	birthDate, err := utils.ParseCivilDate(input.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid birth date",
			"error":   err.Error(),
		})
		return
	}

	estimate, err := services.FormulaExpenditure(input.ToProfile(birthDate), time.Now())
	if err != nil {
		respondEngineError(c, err, "Failed to compute estimate")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Estimate computed successfully",
		"data":    estimate,
	})
}

// SynthesizeBudget godoc
// @Summary Synthesize a daily and weekly calorie budget
// @Description Blend the formula expenditure with an optional measured average and apply the goal adjustment and safety floor
// @Tags budget
// @Accept json
// @Produce json
// @Param request body synthesizeRequest true "Profile with optional measured average and tier override"
// @Success 200 {object} map[string]interface{} "Budget synthesized successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 422 {object} map[string]interface{} "Budget below safety floor"
// @Router /budget/synthesize [post]
func (bc *BudgetController) SynthesizeBudget(c *gin.Context) {
	var req synthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	birthDate, err := utils.ParseCivilDate(req.Profile.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid birth date",
			"error":   err.Error(),
		})
		return
	}

	now := time.Now()
	profile := req.Profile.ToProfile(birthDate)

	var measurement *models.BaselineMeasurement
	if req.MeasuredAverage != nil {
		measurement, err = services.MeasurementFromAverage(profile, *req.MeasuredAverage, req.ActivityTierOverride, now)
		if err != nil {
			respondEngineError(c, err, "Failed to build measurement")
			return
		}
	}

	plan, err := bc.synthesizer.Synthesize(profile, measurement, now)
	if err != nil {
		respondEngineError(c, err, "Failed to synthesize budget")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Budget synthesized successfully",
		"data":    plan,
	})
}

// SaveProfile godoc
// @Summary Create or replace the metabolic profile
// @Description Upsert the authenticated user's physical profile. Profile edits never retroactively change an active period's budget; budgets only change through re-baseline.
// @Tags budget
// @Accept json
// @Produce json
// @Param profile body models.ProfileInput true "Physical profile"
// @Success 200 {object} map[string]interface{} "Profile saved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid profile input"
// @Router /budget/profile [put]
func (bc *BudgetController) SaveProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var input models.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	birthDate, err := utils.ParseCivilDate(input.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid birth date",
			"error":   err.Error(),
		})
		return
	}
	if input.WeightLbs <= 0 || input.HeightInches <= 0 {
		respondEngineError(c, models.ErrInvalidProfileInput, "Invalid physical measurements")
		return
	}

	profile := input.ToProfile(birthDate)
	profile.UserID = userID
	if err := bc.profileRepo.Upsert(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to save profile",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile saved successfully",
		"data":    profile,
	})
}

// GetProfile godoc
// @Summary Get the metabolic profile
// @Description Retrieve the authenticated user's physical profile
// @Tags budget
// @Produce json
// @Success 200 {object} map[string]interface{} "Profile retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Router /budget/profile [get]
func (bc *BudgetController) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	profile, err := bc.profileRepo.FindByUserID(userID)
	if err != nil {
		respondEngineError(c, err, "Profile not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile retrieved successfully",
		"data":    profile,
	})
}
