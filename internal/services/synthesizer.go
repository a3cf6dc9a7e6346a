package services

import (
	"math"
	"time"

	"caloria/internal/models"
)

// DefaultSafetyFloor is the minimum safe daily intake in kcal. A single
// global constant for now; overridable through SAFETY_FLOOR_KCAL.
const DefaultSafetyFloor = 1500

// Daily surplus applied for a weight-gain goal.
const gainSurplus = 500

// Macro split percentages of weekly calories and kcal-per-gram densities.
const (
	proteinShare = 0.30
	carbShare    = 0.40
	fatShare     = 0.30
	kcalPerGramP = 4
	kcalPerGramC = 4
	kcalPerGramF = 9
)

// BudgetSynthesizer blends the activity-corrected formula expenditure with
// the measured baseline average into a goal-adjusted daily and weekly
// target.
type BudgetSynthesizer struct {
	safetyFloor int
}

func NewBudgetSynthesizer(safetyFloor int) *BudgetSynthesizer {
	if safetyFloor <= 0 {
		safetyFloor = DefaultSafetyFloor
	}
	return &BudgetSynthesizer{safetyFloor: safetyFloor}
}

// lossDeficit looks up the daily deficit for a weight-loss goal. The tiers
// scale with total weight left to lose and stay deliberately conservative
// for small remaining losses.
func lossDeficit(weightToLoseLbs float64) int {
	switch {
	case weightToLoseLbs >= 50:
		return 750
	case weightToLoseLbs >= 25:
		return 625
	case weightToLoseLbs >= 15:
		return 500
	default:
		return 375
	}
}

// MeasurementFromAverage builds a synthetic baseline measurement from a
// caller-supplied measured average, used on the declared-estimate fallback
// path where no full baseline week exists. tierOverride of 0 keeps the
// profile's declared activity level.
func MeasurementFromAverage(profile *models.MetabolicProfile, measuredAverage float64, tierOverride int, asOf time.Time) (*models.BaselineMeasurement, error) {
	level := profile.ActivityLevel
	if tierOverride > 0 {
		level = tierOverride
	}
	mult, err := ActivityMultiplier(level)
	if err != nil {
		return nil, err
	}
	bmr, err := BasalRate(profile, asOf)
	if err != nil {
		return nil, err
	}
	return &models.BaselineMeasurement{
		MeasuredDailyAverage:  measuredAverage,
		MeasuredActivityLevel: level,
		CorrectedExpenditure:  bmr * mult,
	}, nil
}

// Synthesize produces the final budget plan. The two expenditure estimates
// are blended with an unweighted arithmetic mean: the formula captures
// physiology, the measured average captures real behavior, and averaging
// damps both idiosyncratic error and formula bias. A nil measurement is
// the declared-only path and uses the formula expenditure alone.
//
// A daily target below the safety floor returns ErrUnsafeBudgetFloor
// instead of clamping; the caller must prompt for a less aggressive goal.
func (s *BudgetSynthesizer) Synthesize(profile *models.MetabolicProfile, measurement *models.BaselineMeasurement, asOf time.Time) (*models.BudgetPlan, error) {
	var blended float64
	var baselineAverage int

	if measurement != nil {
		blended = (measurement.CorrectedExpenditure + measurement.MeasuredDailyAverage) / 2
		baselineAverage = int(math.Round(measurement.MeasuredDailyAverage))
	} else {
		estimate, err := FormulaExpenditure(profile, asOf)
		if err != nil {
			return nil, err
		}
		blended = estimate.FormulaExpenditure
	}

	switch profile.Goal {
	case models.GoalGain:
		blended += gainSurplus
	case models.GoalLose:
		blended -= float64(lossDeficit(profile.WeightLbs - profile.TargetWeightLbs))
	}

	daily := int(math.Round(blended))
	if daily < s.safetyFloor {
		return nil, models.ErrUnsafeBudgetFloor
	}

	weekly := daily * daysPerWeek
	return &models.BudgetPlan{
		DailyBudget:          daily,
		WeeklyBudget:         weekly,
		BaselineDailyAverage: baselineAverage,
		Macros: models.MacroTargets{
			ProteinGrams: int(math.Round(float64(weekly) * proteinShare / kcalPerGramP)),
			CarbGrams:    int(math.Round(float64(weekly) * carbShare / kcalPerGramC)),
			FatGrams:     int(math.Round(float64(weekly) * fatShare / kcalPerGramF)),
		},
	}, nil
}
