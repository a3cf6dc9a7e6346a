package services

import (
	"math"
	"testing"
	"time"

	"caloria/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestLossDeficitTiers(t *testing.T) {
	tests := []struct {
		toLose float64
		want   int
	}{
		{60, 750},
		{50, 750},
		{49.9, 625},
		{40, 625},
		{25, 625},
		{24.9, 500},
		{15, 500},
		{14.9, 375},
		{5, 375},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, lossDeficit(tt.toLose), "toLose=%v", tt.toLose)
	}
}

func TestSynthesizeBlendsEstimates(t *testing.T) {
	asOf := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	synthesizer := NewBudgetSynthesizer(0)

	profile := testProfile()
	profile.Goal = models.GoalMaintain

	measurement := &models.BaselineMeasurement{
		MeasuredDailyAverage: 2100,
		CorrectedExpenditure: 1900,
	}

	plan, err := synthesizer.Synthesize(profile, measurement, asOf)
	assert.NoError(t, err)
	assert.Equal(t, 2000, plan.DailyBudget)
	assert.Equal(t, 14000, plan.WeeklyBudget)
	assert.Equal(t, 2100, plan.BaselineDailyAverage)
}

func TestSynthesizeGoalAdjustments(t *testing.T) {
	asOf := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	synthesizer := NewBudgetSynthesizer(0)

	measurement := &models.BaselineMeasurement{
		MeasuredDailyAverage: 2600,
		CorrectedExpenditure: 2600,
	}

	t.Run("gain adds fixed surplus", func(t *testing.T) {
		profile := testProfile()
		profile.Goal = models.GoalGain
		plan, err := synthesizer.Synthesize(profile, measurement, asOf)
		assert.NoError(t, err)
		assert.Equal(t, 3100, plan.DailyBudget)
	})

	t.Run("40 lb to lose resolves to the 625 tier", func(t *testing.T) {
		profile := testProfile()
		profile.Goal = models.GoalLose
		profile.WeightLbs = 200
		profile.TargetWeightLbs = 160
		plan, err := synthesizer.Synthesize(profile, measurement, asOf)
		assert.NoError(t, err)
		assert.Equal(t, 2600-625, plan.DailyBudget)
	})
}

func TestSynthesizeSafetyFloorBoundary(t *testing.T) {
	asOf := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	synthesizer := NewBudgetSynthesizer(0)
	profile := testProfile()
	profile.Goal = models.GoalMaintain

	t.Run("1499 fails", func(t *testing.T) {
		measurement := &models.BaselineMeasurement{
			MeasuredDailyAverage: 1499,
			CorrectedExpenditure: 1499,
		}
		_, err := synthesizer.Synthesize(profile, measurement, asOf)
		assert.ErrorIs(t, err, models.ErrUnsafeBudgetFloor)
	})

	t.Run("1500 succeeds", func(t *testing.T) {
		measurement := &models.BaselineMeasurement{
			MeasuredDailyAverage: 1500,
			CorrectedExpenditure: 1500,
		}
		plan, err := synthesizer.Synthesize(profile, measurement, asOf)
		assert.NoError(t, err)
		assert.Equal(t, 1500, plan.DailyBudget)
	})
}

func TestSynthesizeMacroSplit(t *testing.T) {
	asOf := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	synthesizer := NewBudgetSynthesizer(0)
	profile := testProfile()
	profile.Goal = models.GoalMaintain

	measurement := &models.BaselineMeasurement{
		MeasuredDailyAverage: 2000,
		CorrectedExpenditure: 2000,
	}

	plan, err := synthesizer.Synthesize(profile, measurement, asOf)
	assert.NoError(t, err)

	weekly := float64(plan.WeeklyBudget)
	assert.Equal(t, int(math.Round(weekly*0.30/4)), plan.Macros.ProteinGrams)
	assert.Equal(t, int(math.Round(weekly*0.40/4)), plan.Macros.CarbGrams)
	assert.Equal(t, int(math.Round(weekly*0.30/9)), plan.Macros.FatGrams)
}

func TestSynthesizeDeclaredOnlyFallback(t *testing.T) {
	asOf := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	synthesizer := NewBudgetSynthesizer(0)
	profile := testProfile()
	profile.Goal = models.GoalMaintain

	estimate, err := FormulaExpenditure(profile, asOf)
	assert.NoError(t, err)

	plan, err := synthesizer.Synthesize(profile, nil, asOf)
	assert.NoError(t, err)
	assert.Equal(t, int(math.Round(estimate.FormulaExpenditure)), plan.DailyBudget)
	assert.Equal(t, 0, plan.BaselineDailyAverage)
}
