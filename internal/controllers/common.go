package controllers

import (
	"errors"
	"net/http"
	"time"

	"caloria/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ObservationPublisher notifies the recalculation consumer that a
// (user, date) pair gained new observation data. Nil-able: the API keeps
// working without the event pipeline, falling back to the inline
// recalculation already performed on the write path.
type ObservationPublisher interface {
	ObservationLogged(userID uint, date time.Time, reason string) error
}

// BudgetCache is the display-level cache for distribution results.
type BudgetCache interface {
	StoreAdjustedBudget(userID uint, budget *models.AdjustedBudget, duration time.Duration) error
	GetAdjustedBudget(userID uint, date string) (*models.AdjustedBudget, bool, error)
	InvalidateAdjustedBudget(userID uint, date string) error
}

// currentUserID pulls the authenticated user from the context set by the
// auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": "User not authenticated",
		"error":   "Missing user context",
	})
}

// respondEngineError maps the engine error taxonomy onto HTTP statuses
// with the standard response envelope.
func respondEngineError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidProfileInput),
		errors.Is(err, models.ErrReservationInPast):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrInsufficientBaselineData),
		errors.Is(err, models.ErrMissingBaselineData),
		errors.Is(err, models.ErrPeriodConflict):
		status = http.StatusConflict
	case errors.Is(err, models.ErrUnsafeBudgetFloor):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}
