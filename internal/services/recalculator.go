package services

import (
	"log"
	"time"

	"caloria/internal/models"
	"caloria/internal/repository"
	"caloria/internal/utils"

	"gorm.io/gorm"
)

// RecalcReason names the call site that triggered a recalculation. All
// three sites funnel through the same entry point so that ordering and
// idempotency guarantees live in one place.
type RecalcReason string

const (
	ReasonClientRequest    RecalcReason = "client_request"
	ReasonScheduledJob     RecalcReason = "scheduled_job"
	ReasonObservationEvent RecalcReason = "observation_event"
)

// Recalculator folds new observations into the current period's aggregate
// totals and adherence scores, writing exactly one metric snapshot per
// (user, period, date). Repeated invocations with the same date key are
// idempotent overwrites.
type Recalculator struct {
	periodRepo   repository.WeeklyPeriodRepository
	obsRepo      repository.DailyObservationRepository
	resRepo      repository.ReservationRepository
	snapshotRepo repository.WeeklyMetricSnapshotRepository
}

func NewRecalculator(
	periodRepo repository.WeeklyPeriodRepository,
	obsRepo repository.DailyObservationRepository,
	resRepo repository.ReservationRepository,
	snapshotRepo repository.WeeklyMetricSnapshotRepository,
) *Recalculator {
	return &Recalculator{
		periodRepo:   periodRepo,
		obsRepo:      obsRepo,
		resRepo:      resRepo,
		snapshotRepo: snapshotRepo,
	}
}

// LogExerciseBurn upserts the burned-calories field for (user, date),
// creating the observation row with zero consumed calories when absent,
// then recomputes the owning period's totals.
func (r *Recalculator) LogExerciseBurn(userID uint, date time.Time, calories int) (*models.RecalculationResult, error) {
	date = utils.CivilDate(date)
	if err := r.obsRepo.UpsertBurned(userID, date, calories); err != nil {
		return nil, err
	}
	return r.Recalculate(userID, date, ReasonObservationEvent)
}

// LogConsumption upserts the consumed-calories field for (user, date) and
// recomputes the owning period's totals.
func (r *Recalculator) LogConsumption(userID uint, date time.Time, calories int, dayType string) (*models.RecalculationResult, error) {
	date = utils.CivilDate(date)
	if err := r.obsRepo.UpsertConsumed(userID, date, calories, dayType); err != nil {
		return nil, err
	}
	return r.Recalculate(userID, date, ReasonObservationEvent)
}

// Recalculate is the unified entry point invoked from the interactive
// client, the scheduled job, and the observation event consumer. It reads
// one snapshot of the period's data, recomputes totals and scores for the
// date, and upserts the single summary row keyed (user, period, date).
func (r *Recalculator) Recalculate(userID uint, date time.Time, reason RecalcReason) (*models.RecalculationResult, error) {
	date = utils.CivilDate(date)

	period, err := r.periodRepo.FindActiveByUserID(userID)
	if err != nil {
		return nil, err
	}
	if !period.Contains(date) {
		return nil, gorm.ErrRecordNotFound
	}

	observations, err := r.obsRepo.FindByUserIDAndDateRange(userID, period.StartDate, date)
	if err != nil {
		return nil, err
	}
	reservations, err := r.resRepo.FindByUserIDAndDateRange(userID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	var consumedTotal, burnedTotal int
	for _, obs := range observations {
		consumedTotal += obs.ConsumedCalories
		burnedTotal += obs.BurnedCalories
	}
	netTotal := consumedTotal - burnedTotal
	remaining := period.WeeklyBudget - netTotal

	var reservedTotal int
	for _, res := range reservations {
		if !res.ReservedDate.Before(date) {
			reservedTotal += res.PlannedCalories
		}
	}

	scores := ComputeScores(period, observations, reservations, date, remaining)

	snapshot := &models.WeeklyMetricSnapshot{
		UserID:           userID,
		WeeklyPeriodID:   period.ID,
		CalcDate:         date,
		ConsumedTotal:    consumedTotal,
		BurnedTotal:      burnedTotal,
		NetTotal:         netTotal,
		RemainingBudget:  remaining,
		ReservedTotal:    reservedTotal,
		BalanceScore:     scores.Balance,
		ConsistencyScore: scores.Consistency,
		DriftScore:       scores.Drift,
	}
	if err := r.snapshotRepo.Upsert(snapshot); err != nil {
		return nil, err
	}

	log.Printf("recalculated metrics for user %d on %s (reason: %s)",
		userID, utils.FormatCivilDate(date), reason)

	return &models.RecalculationResult{
		PeriodID:        period.ID,
		CalcDate:        utils.FormatCivilDate(date),
		ConsumedTotal:   consumedTotal,
		BurnedTotal:     burnedTotal,
		NetTotal:        netTotal,
		RemainingBudget: remaining,
		ReservedTotal:   reservedTotal,
		Scores:          scores,
	}, nil
}
