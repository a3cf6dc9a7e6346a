package models

import "time"

// BudgetEstimate is the output of the formula-only metabolic estimate.
type BudgetEstimate struct {
	BasalRate          float64 `json:"basal_rate" example:"1420.5"`
	ActivityLevel      int     `json:"activity_level" example:"2"`
	FormulaExpenditure float64 `json:"formula_expenditure" example:"1953.2"`
}

// BaselineMeasurement is the output of aggregating one baseline week of
// observations: the measured daily average, the burn-derived activity tier,
// and the formula expenditure recomputed with that measured tier.
type BaselineMeasurement struct {
	QualifyingDays        int     `json:"qualifying_days" example:"6"`
	MeasuredDailyAverage  float64 `json:"measured_daily_average" example:"2100"`
	TotalExerciseBurn     int     `json:"total_exercise_burn" example:"900"`
	MeasuredActivityLevel int     `json:"measured_activity_level" example:"2"`
	CorrectedExpenditure  float64 `json:"corrected_expenditure" example:"2010.4"`
}

// MacroTargets is the weekly macro split in grams.
type MacroTargets struct {
	ProteinGrams int `json:"protein_grams" example:"1024"`
	CarbGrams    int `json:"carb_grams" example:"1365"`
	FatGrams     int `json:"fat_grams" example:"455"`
}

// BudgetPlan is a synthesized calorie budget: the blended daily target, its
// weekly total, and the derived macro targets.
type BudgetPlan struct {
	DailyBudget          int          `json:"daily_budget" example:"1950"`
	WeeklyBudget         int          `json:"weekly_budget" example:"13650"`
	BaselineDailyAverage int          `json:"baseline_daily_average" example:"2100"`
	Macros               MacroTargets `json:"macros"`
}

// AdjustedBudget is the distribution result other components and the
// display layer rely on. The shape is a contract: base budget, the signed
// redistribution adjustment, the adjusted allowance, whether the queried
// day is itself a reserved exception day (with its preset amount), how many
// ordinary days remain, and the cumulative overage being spread.
type AdjustedBudget struct {
	Date                  string `json:"date" example:"2023-01-04"`
	BaseBudget            int    `json:"base_budget" example:"1950"`
	Adjustment            int    `json:"adjustment" example:"-150"`
	AdjustedBudget        int    `json:"adjusted_budget" example:"1800"`
	IsReservedDay         bool   `json:"is_reserved_day" example:"false"`
	ReservedCalories      int    `json:"reserved_calories" example:"0"`
	RemainingOrdinaryDays int    `json:"remaining_ordinary_days" example:"3"`
	CumulativeOverage     int    `json:"cumulative_overage" example:"450"`
}

// AdherenceScores are the three independent 0-100 adherence tiers.
type AdherenceScores struct {
	Balance     int `json:"balance" example:"100"`
	Consistency int `json:"consistency" example:"85"`
	Drift       int `json:"drift" example:"50"`
}

// RecalculationResult is the response of the unified metrics recalculation.
type RecalculationResult struct {
	PeriodID        uint            `json:"period_id" example:"1"`
	CalcDate        string          `json:"calc_date" example:"2023-01-04"`
	ConsumedTotal   int             `json:"consumed_total" example:"5600"`
	BurnedTotal     int             `json:"burned_total" example:"900"`
	NetTotal        int             `json:"net_total" example:"4700"`
	RemainingBudget int             `json:"remaining_budget" example:"8950"`
	ReservedTotal   int             `json:"reserved_total" example:"2500"`
	Scores          AdherenceScores `json:"scores"`
}

// ProfileInput is the boundary shape for profile-driven estimates. Dates
// cross the boundary as YYYY-MM-DD civil calendar dates.
type ProfileInput struct {
	Sex             string  `json:"sex" binding:"required" example:"female"`
	WeightLbs       float64 `json:"weight_lbs" binding:"required" example:"165"`
	HeightInches    float64 `json:"height_inches" binding:"required" example:"66"`
	BirthDate       string  `json:"birth_date" binding:"required" example:"1990-04-12"`
	ActivityLevel   int     `json:"activity_level" binding:"required" example:"2"`
	Goal            string  `json:"goal" example:"lose"`
	TargetWeightLbs float64 `json:"target_weight_lbs" example:"145"`
}

// ToProfile converts the boundary shape into a MetabolicProfile. The birth
// date must already be validated by ParseCivilDate.
func (in *ProfileInput) ToProfile(birthDate time.Time) *MetabolicProfile {
	return &MetabolicProfile{
		Sex:             in.Sex,
		WeightLbs:       in.WeightLbs,
		HeightInches:    in.HeightInches,
		BirthDate:       birthDate,
		ActivityLevel:   in.ActivityLevel,
		Goal:            in.Goal,
		TargetWeightLbs: in.TargetWeightLbs,
	}
}
