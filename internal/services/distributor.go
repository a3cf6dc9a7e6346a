package services

import (
	"errors"
	"math"
	"time"

	"caloria/internal/models"
	"caloria/internal/repository"
	"caloria/internal/utils"

	"gorm.io/gorm"
)

// DefaultComfortFloor is the minimum pleasant daily allowance after overage
// redistribution, in kcal. Distinct from the medical safety floor used at
// budget synthesis.
const DefaultComfortFloor = 1200

// OverageDistributor lets a user pre-reserve calories for a future
// exception day and spreads realized overspend across the remaining
// ordinary days of the current period.
type OverageDistributor struct {
	periodRepo   repository.WeeklyPeriodRepository
	obsRepo      repository.DailyObservationRepository
	resRepo      repository.ReservationRepository
	comfortFloor int
}

func NewOverageDistributor(
	periodRepo repository.WeeklyPeriodRepository,
	obsRepo repository.DailyObservationRepository,
	resRepo repository.ReservationRepository,
	comfortFloor int,
) *OverageDistributor {
	if comfortFloor <= 0 {
		comfortFloor = DefaultComfortFloor
	}
	return &OverageDistributor{
		periodRepo:   periodRepo,
		obsRepo:      obsRepo,
		resRepo:      resRepo,
		comfortFloor: comfortFloor,
	}
}

// Reserve upserts a planned exception day for (user, date). Past dates are
// rejected; a conflicting reservation on the same date is overwritten.
func (d *OverageDistributor) Reserve(userID uint, date time.Time, plannedCalories int, note string, today time.Time) (*models.Reservation, error) {
	date = utils.CivilDate(date)
	if date.Before(utils.CivilDate(today)) {
		return nil, models.ErrReservationInPast
	}

	reservation := &models.Reservation{
		UserID:          userID,
		ReservedDate:    date,
		PlannedCalories: plannedCalories,
		Note:            note,
	}
	if err := d.resRepo.Upsert(reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// DeleteReservation removes the reservation for (user, date).
func (d *OverageDistributor) DeleteReservation(userID uint, date time.Time) error {
	return d.resRepo.DeleteByUserIDAndDate(userID, utils.CivilDate(date))
}

// AdjustedBudget loads the current period's observations and reservations
// and computes the distribution result for the given date. Reads are a
// single snapshot per call; second-level staleness across callers is fine
// for a daily-cadence system.
func (d *OverageDistributor) AdjustedBudget(userID uint, date time.Time) (*models.AdjustedBudget, error) {
	date = utils.CivilDate(date)

	period, err := d.periodRepo.FindActiveByUserID(userID)
	if err != nil {
		return nil, err
	}
	if !period.Contains(date) {
		return nil, gorm.ErrRecordNotFound
	}

	observations, err := d.obsRepo.FindByUserIDAndDateRange(userID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	reservations, err := d.resRepo.FindByUserIDAndDateRange(userID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	return ComputeAdjustedBudget(period, observations, reservations, date, d.comfortFloor), nil
}

// RecalculateAndDistribute is the daily trigger. It only redistributes
// when the previous day holds a non-zero consumption record; a day with no
// new information keeps the base allowance untouched.
func (d *OverageDistributor) RecalculateAndDistribute(userID uint, asOf time.Time) (*models.AdjustedBudget, error) {
	asOf = utils.CivilDate(asOf)

	yesterday, err := d.obsRepo.FindByUserIDAndDate(userID, asOf.AddDate(0, 0, -1))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil || yesterday.ConsumedCalories == 0 {
		period, err := d.periodRepo.FindActiveByUserID(userID)
		if err != nil {
			return nil, err
		}
		if !period.Contains(asOf) {
			return nil, gorm.ErrRecordNotFound
		}
		reservations, err := d.resRepo.FindByUserIDAndDateRange(userID, period.StartDate, period.EndDate)
		if err != nil {
			return nil, err
		}
		return undistributedBudget(period, reservations, asOf), nil
	}

	return d.AdjustedBudget(userID, asOf)
}

// ComputeAdjustedBudget spreads the cumulative overage of elapsed ordinary
// days evenly across the remaining ordinary days of the period.
//
// Per elapsed non-reserved day the overage is max(0, consumed - base
// allowance): under-eating never banks credit. Reserved exception days are
// exempt on both sides: their overspend is drift-scored, not
// redistributed, and their allowance is always exactly the preset amount.
// No ordinary day's adjusted allowance falls below the comfort floor.
func ComputeAdjustedBudget(period *models.WeeklyPeriod, observations []models.DailyObservation, reservations []models.Reservation, date time.Time, comfortFloor int) *models.AdjustedBudget {
	date = utils.CivilDate(date)

	reservedByDate := make(map[string]models.Reservation, len(reservations))
	for _, res := range reservations {
		reservedByDate[utils.FormatCivilDate(res.ReservedDate)] = res
	}
	consumedByDate := make(map[string]int, len(observations))
	for _, obs := range observations {
		consumedByDate[utils.FormatCivilDate(obs.LogDate)] = obs.ConsumedCalories
	}

	base := period.DailyBudget

	cumulativeOverage := 0
	for d := period.StartDate; d.Before(date); d = d.AddDate(0, 0, 1) {
		key := utils.FormatCivilDate(d)
		if _, reserved := reservedByDate[key]; reserved {
			continue
		}
		if over := consumedByDate[key] - base; over > 0 {
			cumulativeOverage += over
		}
	}

	remainingOrdinary := 0
	for d := date; !d.After(period.EndDate); d = d.AddDate(0, 0, 1) {
		if _, reserved := reservedByDate[utils.FormatCivilDate(d)]; !reserved {
			remainingOrdinary++
		}
	}

	result := &models.AdjustedBudget{
		Date:                  utils.FormatCivilDate(date),
		BaseBudget:            base,
		AdjustedBudget:        base,
		RemainingOrdinaryDays: remainingOrdinary,
		CumulativeOverage:     cumulativeOverage,
	}

	if res, reserved := reservedByDate[utils.FormatCivilDate(date)]; reserved {
		result.IsReservedDay = true
		result.ReservedCalories = res.PlannedCalories
		result.AdjustedBudget = res.PlannedCalories
		result.Adjustment = res.PlannedCalories - base
		return result
	}

	if cumulativeOverage > 0 && remainingOrdinary > 0 {
		perDay := int(math.Round(float64(cumulativeOverage) / float64(remainingOrdinary)))
		adjusted := base - perDay
		if adjusted < comfortFloor {
			adjusted = comfortFloor
		}
		result.AdjustedBudget = adjusted
		result.Adjustment = adjusted - base
	}

	return result
}

// undistributedBudget is the no-new-information shape: base allowance and
// zero adjustment. The reserved-day state and the remaining ordinary days
// are still real; only the overage spread is skipped, so the cumulative
// overage reported is the zero actually being distributed.
func undistributedBudget(period *models.WeeklyPeriod, reservations []models.Reservation, date time.Time) *models.AdjustedBudget {
	reservedByDate := make(map[string]models.Reservation, len(reservations))
	for _, res := range reservations {
		reservedByDate[utils.FormatCivilDate(res.ReservedDate)] = res
	}

	remainingOrdinary := 0
	for d := date; !d.After(period.EndDate); d = d.AddDate(0, 0, 1) {
		if _, reserved := reservedByDate[utils.FormatCivilDate(d)]; !reserved {
			remainingOrdinary++
		}
	}

	result := &models.AdjustedBudget{
		Date:                  utils.FormatCivilDate(date),
		BaseBudget:            period.DailyBudget,
		AdjustedBudget:        period.DailyBudget,
		RemainingOrdinaryDays: remainingOrdinary,
	}
	if res, reserved := reservedByDate[utils.FormatCivilDate(date)]; reserved {
		result.IsReservedDay = true
		result.ReservedCalories = res.PlannedCalories
		result.AdjustedBudget = res.PlannedCalories
		result.Adjustment = res.PlannedCalories - period.DailyBudget
	}
	return result
}
