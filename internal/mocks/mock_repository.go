package mocks

import (
	"time"

	"caloria/internal/models"

	"github.com/stretchr/testify/mock"
)

// Shared MockMetabolicProfileRepository
type MockMetabolicProfileRepository struct {
	mock.Mock
}

func (m *MockMetabolicProfileRepository) Upsert(profile *models.MetabolicProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockMetabolicProfileRepository) FindByUserID(userID uint) (*models.MetabolicProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MetabolicProfile), args.Error(1)
}

func (m *MockMetabolicProfileRepository) Update(profile *models.MetabolicProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockMetabolicProfileRepository) DeleteByUserID(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// Shared MockDailyObservationRepository
type MockDailyObservationRepository struct {
	mock.Mock
}

func (m *MockDailyObservationRepository) UpsertConsumed(userID uint, date time.Time, calories int, dayType string) error {
	args := m.Called(userID, date, calories, dayType)
	return args.Error(0)
}

func (m *MockDailyObservationRepository) UpsertBurned(userID uint, date time.Time, calories int) error {
	args := m.Called(userID, date, calories)
	return args.Error(0)
}

func (m *MockDailyObservationRepository) FindByUserIDAndDate(userID uint, date time.Time) (*models.DailyObservation, error) {
	args := m.Called(userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyObservation), args.Error(1)
}

func (m *MockDailyObservationRepository) FindByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]models.DailyObservation, error) {
	args := m.Called(userID, startDate, endDate)
	return args.Get(0).([]models.DailyObservation), args.Error(1)
}

// Shared MockBaselinePeriodRepository
type MockBaselinePeriodRepository struct {
	mock.Mock
}

func (m *MockBaselinePeriodRepository) Create(period *models.BaselinePeriod) error {
	args := m.Called(period)
	return args.Error(0)
}

func (m *MockBaselinePeriodRepository) FindActiveByUserID(userID uint) (*models.BaselinePeriod, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BaselinePeriod), args.Error(1)
}

func (m *MockBaselinePeriodRepository) FindByUserID(userID uint) ([]models.BaselinePeriod, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.BaselinePeriod), args.Error(1)
}

func (m *MockBaselinePeriodRepository) UpdateStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

// Shared MockWeeklyPeriodRepository
type MockWeeklyPeriodRepository struct {
	mock.Mock
}

func (m *MockWeeklyPeriodRepository) CreateIdempotent(period *models.WeeklyPeriod) (bool, error) {
	args := m.Called(period)
	return args.Bool(0), args.Error(1)
}

func (m *MockWeeklyPeriodRepository) FindByID(id uint) (*models.WeeklyPeriod, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyPeriod), args.Error(1)
}

func (m *MockWeeklyPeriodRepository) FindActiveByUserID(userID uint) (*models.WeeklyPeriod, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyPeriod), args.Error(1)
}

func (m *MockWeeklyPeriodRepository) FindByUserIDAndStartDate(userID uint, startDate time.Time) (*models.WeeklyPeriod, error) {
	args := m.Called(userID, startDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyPeriod), args.Error(1)
}

func (m *MockWeeklyPeriodRepository) FindLatestByUserID(userID uint) (*models.WeeklyPeriod, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyPeriod), args.Error(1)
}

func (m *MockWeeklyPeriodRepository) CountActiveByUserID(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWeeklyPeriodRepository) MarkCompleted(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockWeeklyPeriodRepository) FindLapsedActive(asOf time.Time) ([]models.WeeklyPeriod, error) {
	args := m.Called(asOf)
	return args.Get(0).([]models.WeeklyPeriod), args.Error(1)
}

func (m *MockWeeklyPeriodRepository) FindOverlapping(userID uint, startDate, endDate time.Time) ([]models.WeeklyPeriod, error) {
	args := m.Called(userID, startDate, endDate)
	return args.Get(0).([]models.WeeklyPeriod), args.Error(1)
}

// Shared MockReservationRepository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Upsert(reservation *models.Reservation) error {
	args := m.Called(reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) FindByUserIDAndDate(userID uint, date time.Time) (*models.Reservation, error) {
	args := m.Called(userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]models.Reservation, error) {
	args := m.Called(userID, startDate, endDate)
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) DeleteByUserIDAndDate(userID uint, date time.Time) error {
	args := m.Called(userID, date)
	return args.Error(0)
}

// Shared MockWeeklyMetricSnapshotRepository
type MockWeeklyMetricSnapshotRepository struct {
	mock.Mock
}

func (m *MockWeeklyMetricSnapshotRepository) Upsert(snapshot *models.WeeklyMetricSnapshot) error {
	args := m.Called(snapshot)
	return args.Error(0)
}

func (m *MockWeeklyMetricSnapshotRepository) FindByKey(userID, periodID uint, calcDate time.Time) (*models.WeeklyMetricSnapshot, error) {
	args := m.Called(userID, periodID, calcDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyMetricSnapshot), args.Error(1)
}

func (m *MockWeeklyMetricSnapshotRepository) FindByPeriod(userID, periodID uint) ([]models.WeeklyMetricSnapshot, error) {
	args := m.Called(userID, periodID)
	return args.Get(0).([]models.WeeklyMetricSnapshot), args.Error(1)
}
