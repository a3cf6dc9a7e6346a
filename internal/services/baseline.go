package services

import (
	"time"

	"caloria/internal/models"
)

// Cumulative baseline-week burn thresholds for the four measured activity
// tiers. A tier indexes the same multiplier table as declared levels.
const (
	tierTwoBurn   = 500
	tierThreeBurn = 1200
	tierFourBurn  = 2000
)

// Fewer qualifying days than this and the baseline cannot be measured.
const minQualifyingDays = 5

// ClassifyActivityTier buckets a week's cumulative exercise burn into one
// of four measured activity tiers.
func ClassifyActivityTier(totalBurn int) int {
	switch {
	case totalBurn < tierTwoBurn:
		return 1
	case totalBurn < tierThreeBurn:
		return 2
	case totalBurn < tierFourBurn:
		return 3
	default:
		return 4
	}
}

// AggregateBaseline measures a baseline week from its observations.
// Qualifying days are those inside the window with strictly positive
// consumed calories; zero-intake days are excluded as non-representative,
// not treated as zeros. Fewer than 5 qualifying days returns
// ErrInsufficientBaselineData so the caller can choose between waiting and
// a declared-only estimate.
//
// The measured burn tier replaces the user's self-declared level in a
// second multiplier pass, producing the activity-corrected formula
// expenditure the synthesizer blends with the measured average.
func AggregateBaseline(profile *models.MetabolicProfile, period *models.BaselinePeriod, observations []models.DailyObservation, asOf time.Time) (*models.BaselineMeasurement, error) {
	start, end := period.StartDate, period.EndDate()

	var qualifyingDays, totalConsumed, totalBurn int
	for _, obs := range observations {
		if obs.LogDate.Before(start) || obs.LogDate.After(end) {
			continue
		}
		totalBurn += obs.BurnedCalories
		if obs.ConsumedCalories > 0 {
			qualifyingDays++
			totalConsumed += obs.ConsumedCalories
		}
	}

	if qualifyingDays < minQualifyingDays {
		return nil, models.ErrInsufficientBaselineData
	}

	tier := ClassifyActivityTier(totalBurn)
	mult, err := ActivityMultiplier(tier)
	if err != nil {
		return nil, err
	}
	bmr, err := BasalRate(profile, asOf)
	if err != nil {
		return nil, err
	}

	return &models.BaselineMeasurement{
		QualifyingDays:        qualifyingDays,
		MeasuredDailyAverage:  float64(totalConsumed) / float64(qualifyingDays),
		TotalExerciseBurn:     totalBurn,
		MeasuredActivityLevel: tier,
		CorrectedExpenditure:  bmr * mult,
	}, nil
}
