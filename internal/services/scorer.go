package services

import (
	"math"
	"time"

	"caloria/internal/models"
	"caloria/internal/utils"
)

// Adherence scores are quantized into a fixed small set of tiers on
// purpose: a handful of legible levels reads better to end users than a
// continuous function. The tier values below are part of the product
// contract.
const (
	balanceHigh = 100
	balanceMid  = 65
	balanceLow  = 30

	consistencyHigh = 85
	consistencyMid  = 55
	consistencyLow  = 25

	driftHigh = 80
	driftMid  = 50
	driftLow  = 20

	neutralScore = 50
)

// Minimum observed days before consistency is meaningful.
const minConsistencyDays = 3

// BalanceScore compares today's implied daily allowance (remaining weekly
// budget spread over the days left) against the baseline daily average.
func BalanceScore(remainingBudget, daysLeft, baselineAverage int) int {
	if daysLeft <= 0 || baselineAverage <= 0 {
		return balanceLow
	}
	implied := float64(remainingBudget) / float64(daysLeft)
	ratio := implied / float64(baselineAverage)
	switch {
	case ratio >= 1.0:
		return balanceHigh
	case ratio >= 0.7:
		return balanceMid
	default:
		return balanceLow
	}
}

// ConsistencyScore tiers the population coefficient of variation of daily
// consumed calories. Fewer than 3 observed days returns the neutral
// default instead of a noisy estimate.
func ConsistencyScore(consumed []int) int {
	if len(consumed) < minConsistencyDays {
		return neutralScore
	}

	var sum float64
	for _, c := range consumed {
		sum += float64(c)
	}
	mean := sum / float64(len(consumed))
	if mean == 0 {
		return neutralScore
	}

	var sqDiff float64
	for _, c := range consumed {
		d := float64(c) - mean
		sqDiff += d * d
	}
	cv := math.Sqrt(sqDiff/float64(len(consumed))) / mean * 100

	switch {
	case cv < 15:
		return consistencyHigh
	case cv < 30:
		return consistencyMid
	default:
		return consistencyLow
	}
}

// DriftScore tiers the average per-day overspend on elapsed exception days
// versus their planned amounts. Under-spending a reservation clamps to
// zero before averaging. With no elapsed reservations the score is the
// neutral default.
func DriftScore(overspends []int) int {
	if len(overspends) == 0 {
		return neutralScore
	}

	var total int
	for _, over := range overspends {
		if over > 0 {
			total += over
		}
	}
	avg := float64(total) / float64(len(overspends))

	switch {
	case avg < 200:
		return driftHigh
	case avg < 500:
		return driftMid
	default:
		return driftLow
	}
}

// ComputeScores assembles the three adherence scores for a calculation
// date from one consistent read of the period's observations and
// reservations.
func ComputeScores(period *models.WeeklyPeriod, observations []models.DailyObservation, reservations []models.Reservation, calcDate time.Time, remainingBudget int) models.AdherenceScores {
	calcDate = utils.CivilDate(calcDate)

	consumedByDate := make(map[string]int, len(observations))
	var consumed []int
	for _, obs := range observations {
		if obs.LogDate.After(calcDate) {
			continue
		}
		consumedByDate[utils.FormatCivilDate(obs.LogDate)] = obs.ConsumedCalories
		if obs.ConsumedCalories > 0 {
			consumed = append(consumed, obs.ConsumedCalories)
		}
	}

	var overspends []int
	for _, res := range reservations {
		if !res.ReservedDate.Before(calcDate) {
			continue // not yet elapsed
		}
		over := consumedByDate[utils.FormatCivilDate(res.ReservedDate)] - res.PlannedCalories
		if over < 0 {
			over = 0
		}
		overspends = append(overspends, over)
	}

	daysLeft := utils.DaysBetween(calcDate, period.EndDate) + 1
	return models.AdherenceScores{
		Balance:     BalanceScore(remainingBudget, daysLeft, period.BaselineDailyAverage),
		Consistency: ConsistencyScore(consumed),
		Drift:       DriftScore(overspends),
	}
}
