package services

import (
	"testing"
	"time"

	"caloria/internal/mocks"
	"caloria/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestRotationWorkerStartStop(t *testing.T) {
	periodRepo := new(mocks.MockWeeklyPeriodRepository)
	worker := NewRotationWorker(periodRepo, nil, nil, nil, 2)

	assert.False(t, worker.Running())

	worker.Start()
	assert.True(t, worker.Running())

	// Second start is a no-op.
	worker.Start()
	assert.True(t, worker.Running())

	worker.Stop()
	assert.False(t, worker.Running())
}

func TestEnqueueLapsedQueuesOnePerUser(t *testing.T) {
	periodRepo := new(mocks.MockWeeklyPeriodRepository)
	worker := NewRotationWorker(periodRepo, nil, nil, nil, 1)

	asOf := time.Date(2023, 6, 14, 0, 0, 0, 0, time.UTC)
	lapsed := []models.WeeklyPeriod{
		{ID: 1, UserID: 10, Status: models.PeriodStatusActive},
		{ID: 2, UserID: 11, Status: models.PeriodStatusActive},
		{ID: 3, UserID: 12, Status: models.PeriodStatusActive},
	}
	periodRepo.On("FindLapsedActive", asOf).Return(lapsed, nil)

	// Workers not started; jobs stay in the queue where we can count them.
	queued, err := worker.EnqueueLapsed(asOf)
	assert.NoError(t, err)
	assert.Equal(t, 3, queued)
	assert.Len(t, worker.jobQueue, 3)

	job := <-worker.jobQueue
	assert.Equal(t, uint(10), job.userID)
	assert.Equal(t, asOf, job.asOf)
}

func TestEnqueueLapsedEmptySweep(t *testing.T) {
	periodRepo := new(mocks.MockWeeklyPeriodRepository)
	worker := NewRotationWorker(periodRepo, nil, nil, nil, 1)

	asOf := time.Date(2023, 6, 14, 0, 0, 0, 0, time.UTC)
	periodRepo.On("FindLapsedActive", asOf).Return([]models.WeeklyPeriod{}, nil)

	queued, err := worker.EnqueueLapsed(asOf)
	assert.NoError(t, err)
	assert.Zero(t, queued)
}

func TestRotationWorkerProcessesQueuedJob(t *testing.T) {
	periodRepo := new(mocks.MockWeeklyPeriodRepository)
	obsRepo := new(mocks.MockDailyObservationRepository)
	resRepo := new(mocks.MockReservationRepository)
	snapshotRepo := new(mocks.MockWeeklyMetricSnapshotRepository)

	manager := NewPeriodManager(periodRepo, new(mocks.MockBaselinePeriodRepository), obsRepo, new(mocks.MockMetabolicProfileRepository), NewBudgetSynthesizer(0))
	recalculator := NewRecalculator(periodRepo, obsRepo, resRepo, snapshotRepo)
	distributor := NewOverageDistributor(periodRepo, obsRepo, resRepo, 0)
	worker := NewRotationWorker(periodRepo, manager, recalculator, distributor, 1)

	asOf := time.Date(2023, 6, 14, 0, 0, 0, 0, time.UTC) // Wednesday
	lapsed := &models.WeeklyPeriod{
		ID:          1,
		UserID:      10,
		StartDate:   time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2023, 6, 11, 0, 0, 0, 0, time.UTC),
		DailyBudget: 2000, WeeklyBudget: 14000,
		Status: models.PeriodStatusActive,
	}
	successorStart := time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)

	periodRepo.On("FindActiveByUserID", uint(10)).Return(lapsed, nil).Once()
	periodRepo.On("MarkCompleted", uint(1)).Return(nil)
	periodRepo.On("CountActiveByUserID", uint(10)).Return(int64(0), nil)
	periodRepo.On("FindOverlapping", uint(10), successorStart, successorStart.AddDate(0, 0, 6)).
		Return([]models.WeeklyPeriod{}, nil)
	periodRepo.On("CreateIdempotent", mock.AnythingOfType("*models.WeeklyPeriod")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.WeeklyPeriod).ID = 2
		}).
		Return(true, nil)

	successor := &models.WeeklyPeriod{
		ID: 2, UserID: 10,
		StartDate: successorStart, EndDate: successorStart.AddDate(0, 0, 6),
		DailyBudget: 2000, WeeklyBudget: 14000,
		Status: models.PeriodStatusActive, PeriodType: models.PeriodTypeStandard,
	}
	periodRepo.On("FindActiveByUserID", uint(10)).Return(successor, nil)
	obsRepo.On("FindByUserIDAndDateRange", uint(10), successorStart, asOf).
		Return([]models.DailyObservation{}, nil)
	resRepo.On("FindByUserIDAndDateRange", uint(10), successorStart, successor.EndDate).
		Return([]models.Reservation{}, nil)
	snapshotRepo.On("Upsert", mock.AnythingOfType("*models.WeeklyMetricSnapshot")).Return(nil)
	obsRepo.On("FindByUserIDAndDate", uint(10), asOf.AddDate(0, 0, -1)).
		Return(nil, gorm.ErrRecordNotFound)

	worker.process(0, rotationJob{userID: 10, asOf: asOf})

	periodRepo.AssertCalled(t, "MarkCompleted", uint(1))
	snapshotRepo.AssertCalled(t, "Upsert", mock.AnythingOfType("*models.WeeklyMetricSnapshot"))
	// The daily distribution pass runs right after the snapshot.
	obsRepo.AssertCalled(t, "FindByUserIDAndDate", uint(10), asOf.AddDate(0, 0, -1))
}
