package services

import (
	"errors"
	"log"
	"time"

	"caloria/internal/models"
	"caloria/internal/repository"
	"caloria/internal/utils"

	"gorm.io/gorm"
)

// A first steady-state period only starts mid-week when at least this many
// days (today through Sunday) remain; otherwise it waits for next Monday.
const minPartialWeekDays = 3

// WeekStart returns the Monday of the week containing date. Sunday folds
// into the previous week, never acting as a week start.
func WeekStart(date time.Time) time.Time {
	d := utils.CivilDate(date)
	weekday := int(d.Weekday()) // 0=Sun
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDate(0, 0, -(weekday - 1))
}

// WeekEnd returns the Sunday of the week containing date.
func WeekEnd(date time.Time) time.Time {
	return WeekStart(date).AddDate(0, 0, 6)
}

// SmartStartDate picks the start of the first steady-state period at
// baseline completion. With fewer than 3 days left in the current calendar
// week the period is scheduled for next Monday (a fresh full week);
// otherwise it starts immediately and covers only the remainder of the
// current week.
func SmartStartDate(completionDate time.Time) time.Time {
	d := utils.CivilDate(completionDate)
	remaining := utils.DaysBetween(d, WeekEnd(d)) + 1
	if remaining < minPartialWeekDays {
		return WeekStart(d).AddDate(0, 0, 7)
	}
	return d
}

// PeriodManager owns the weekly tracking window lifecycle: baseline
// bootstrap, transition into active tracking, and steady-state rotation.
type PeriodManager struct {
	periodRepo   repository.WeeklyPeriodRepository
	baselineRepo repository.BaselinePeriodRepository
	obsRepo      repository.DailyObservationRepository
	profileRepo  repository.MetabolicProfileRepository
	synthesizer  *BudgetSynthesizer
}

func NewPeriodManager(
	periodRepo repository.WeeklyPeriodRepository,
	baselineRepo repository.BaselinePeriodRepository,
	obsRepo repository.DailyObservationRepository,
	profileRepo repository.MetabolicProfileRepository,
	synthesizer *BudgetSynthesizer,
) *PeriodManager {
	return &PeriodManager{
		periodRepo:   periodRepo,
		baselineRepo: baselineRepo,
		obsRepo:      obsRepo,
		profileRepo:  profileRepo,
		synthesizer:  synthesizer,
	}
}

// StartBaseline opens the one-time 7-day observation window for a user.
// Reuses an already-active window instead of opening a second one.
func (pm *PeriodManager) StartBaseline(userID uint, startDate time.Time) (*models.BaselinePeriod, error) {
	existing, err := pm.baselineRepo.FindActiveByUserID(userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	period := &models.BaselinePeriod{
		UserID:    userID,
		StartDate: utils.CivilDate(startDate),
		Status:    models.BaselineStatusActive,
	}
	if err := pm.baselineRepo.Create(period); err != nil {
		return nil, err
	}
	return period, nil
}

// AbandonBaseline terminates the baseline window for users who opt into a
// declared-only estimate instead of waiting out the measurement week.
func (pm *PeriodManager) AbandonBaseline(userID uint) error {
	period, err := pm.baselineRepo.FindActiveByUserID(userID)
	if err != nil {
		return err
	}
	return pm.baselineRepo.UpdateStatus(period.ID, models.BaselineStatusAbandoned)
}

// CreateOrRotate is the idempotent client entry point. It returns the
// period covering today, rotating a lapsed one or completing the baseline
// flow as needed. Duplicate calls for the same week are no-op successes.
func (pm *PeriodManager) CreateOrRotate(userID uint, today time.Time) (*models.WeeklyPeriod, error) {
	today = utils.CivilDate(today)

	active, err := pm.periodRepo.FindActiveByUserID(userID)
	if err == nil {
		if !active.EndDate.Before(today) {
			return active, nil
		}
		return pm.rotate(active, today)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// No active period. A completed predecessor rolls forward; a user with
	// no history at all must come through the baseline flow.
	latest, err := pm.periodRepo.FindLatestByUserID(userID)
	if err == nil {
		return pm.createSuccessor(latest, WeekStart(today))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return pm.completeBaseline(userID, today)
}

// completeBaseline measures the baseline window, synthesizes the first
// budget, and opens the first tracking period using smart assignment.
func (pm *PeriodManager) completeBaseline(userID uint, today time.Time) (*models.WeeklyPeriod, error) {
	baseline, err := pm.baselineRepo.FindActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrMissingBaselineData
		}
		return nil, err
	}

	profile, err := pm.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidProfileInput
		}
		return nil, err
	}

	observations, err := pm.obsRepo.FindByUserIDAndDateRange(userID, baseline.StartDate, baseline.EndDate())
	if err != nil {
		return nil, err
	}

	measurement, err := AggregateBaseline(profile, baseline, observations, today)
	if err != nil {
		return nil, err
	}
	plan, err := pm.synthesizer.Synthesize(profile, measurement, today)
	if err != nil {
		return nil, err
	}

	start := SmartStartDate(today)
	period := &models.WeeklyPeriod{
		UserID:               userID,
		StartDate:            start,
		EndDate:              WeekEnd(start),
		BaselineDailyAverage: plan.BaselineDailyAverage,
		DailyBudget:          plan.DailyBudget,
		WeeklyBudget:         plan.WeeklyBudget,
		Status:               models.PeriodStatusActive,
		PeriodType:           models.PeriodTypeBaseline,
	}
	if err := pm.insertActive(period); err != nil {
		return nil, err
	}
	if err := pm.baselineRepo.UpdateStatus(baseline.ID, models.BaselineStatusCompleted); err != nil {
		return nil, err
	}
	return period, nil
}

// rotate closes a lapsed active period and opens its successor for the
// current week. Budgets carry forward unchanged; recomputation only
// happens through an explicit re-baseline.
func (pm *PeriodManager) rotate(lapsed *models.WeeklyPeriod, today time.Time) (*models.WeeklyPeriod, error) {
	if err := pm.periodRepo.MarkCompleted(lapsed.ID); err != nil {
		return nil, err
	}
	return pm.createSuccessor(lapsed, WeekStart(today))
}

func (pm *PeriodManager) createSuccessor(prior *models.WeeklyPeriod, start time.Time) (*models.WeeklyPeriod, error) {
	period := &models.WeeklyPeriod{
		UserID:               prior.UserID,
		StartDate:            start,
		EndDate:              WeekEnd(start),
		BaselineDailyAverage: prior.BaselineDailyAverage,
		DailyBudget:          prior.DailyBudget,
		WeeklyBudget:         prior.WeeklyBudget,
		Status:               models.PeriodStatusActive,
		PeriodType:           models.PeriodTypeStandard,
	}
	if err := pm.insertActive(period); err != nil {
		return nil, err
	}
	return period, nil
}

// insertActive enforces the single-active-period invariant before the
// idempotent insert. A lingering active period or an overlap means
// something upstream broke the invariant: log it and refuse rather than
// silently deactivating the existing period.
func (pm *PeriodManager) insertActive(period *models.WeeklyPeriod) error {
	count, err := pm.periodRepo.CountActiveByUserID(period.UserID)
	if err != nil {
		return err
	}
	if count > 0 {
		// The same-start case is the benign concurrent-create race; the
		// idempotent insert below resolves it. Any other active period,
		// overlapping or not, blocks the insert.
		active, err := pm.periodRepo.FindActiveByUserID(period.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && !active.StartDate.Equal(period.StartDate) {
			log.Printf("period conflict for user %d: period %d (%s-%s) is still active",
				period.UserID, active.ID,
				utils.FormatCivilDate(active.StartDate), utils.FormatCivilDate(active.EndDate))
			return models.ErrPeriodConflict
		}
	}

	overlapping, err := pm.periodRepo.FindOverlapping(period.UserID, period.StartDate, period.EndDate)
	if err != nil {
		return err
	}
	for _, other := range overlapping {
		if other.StartDate.Equal(period.StartDate) {
			continue // same week; the idempotent insert handles it
		}
		log.Printf("period conflict for user %d: %s-%s overlaps existing period %d (%s-%s)",
			period.UserID,
			utils.FormatCivilDate(period.StartDate), utils.FormatCivilDate(period.EndDate),
			other.ID,
			utils.FormatCivilDate(other.StartDate), utils.FormatCivilDate(other.EndDate))
		return models.ErrPeriodConflict
	}

	created, err := pm.periodRepo.CreateIdempotent(period)
	if err != nil {
		return err
	}
	if !created {
		existing, err := pm.periodRepo.FindByUserIDAndStartDate(period.UserID, period.StartDate)
		if err != nil {
			return err
		}
		*period = *existing
	}
	return nil
}
