package services

import (
	"time"

	"caloria/internal/models"
)

// Unit conversions: profiles store imperial measurements, the Mifflin-St
// Jeor form wants metric.
const (
	lbsPerKg    = 2.20462
	cmPerInch   = 2.54
	sexOffsetM  = 5.0
	sexOffsetF  = -161.0
	daysPerWeek = 7
)

// activityMultipliers maps the five declared activity levels to their TDEE
// multiplier. Level 1 is sedentary, level 5 very active. This is the single
// source of truth for valid activity levels.
var activityMultipliers = map[int]float64{
	1: 1.20,
	2: 1.375,
	3: 1.55,
	4: 1.725,
	5: 1.90,
}

// ActivityMultiplier resolves an activity level to its TDEE multiplier.
func ActivityMultiplier(level int) (float64, error) {
	mult, ok := activityMultipliers[level]
	if !ok {
		return 0, models.ErrInvalidProfileInput
	}
	return mult, nil
}

// AgeInYears computes whole years from birth date to asOf, decrementing
// when the birthday has not yet occurred that year.
func AgeInYears(birthDate, asOf time.Time) int {
	age := asOf.Year() - birthDate.Year()
	if asOf.Before(birthDate.AddDate(age, 0, 0)) {
		age--
	}
	return age
}

// BasalRate computes the Mifflin-St Jeor basal metabolic rate:
// 10*weightKg + 6.25*heightCm - 5*age + sexOffset. The male category gets
// +5; female and the third category both get -161 (the conservative
// default for callers who declare neither).
func BasalRate(profile *models.MetabolicProfile, asOf time.Time) (float64, error) {
	if profile.WeightLbs <= 0 || profile.HeightInches <= 0 {
		return 0, models.ErrInvalidProfileInput
	}

	weightKg := profile.WeightLbs / lbsPerKg
	heightCm := profile.HeightInches * cmPerInch
	age := AgeInYears(profile.BirthDate, asOf)

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if profile.Sex == models.SexMale {
		bmr += sexOffsetM
	} else {
		bmr += sexOffsetF
	}
	return bmr, nil
}

// FormulaExpenditure computes the formula-based total daily expenditure:
// basal rate times the multiplier for the profile's declared activity
// level. Pure; fails only on malformed input.
func FormulaExpenditure(profile *models.MetabolicProfile, asOf time.Time) (*models.BudgetEstimate, error) {
	bmr, err := BasalRate(profile, asOf)
	if err != nil {
		return nil, err
	}
	mult, err := ActivityMultiplier(profile.ActivityLevel)
	if err != nil {
		return nil, err
	}
	return &models.BudgetEstimate{
		BasalRate:          bmr,
		ActivityLevel:      profile.ActivityLevel,
		FormulaExpenditure: bmr * mult,
	}, nil
}
