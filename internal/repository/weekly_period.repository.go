package repository

import (
	"time"

	"caloria/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeeklyPeriodRepository interface {
	CreateIdempotent(period *models.WeeklyPeriod) (created bool, err error)
	FindByID(id uint) (*models.WeeklyPeriod, error)
	FindActiveByUserID(userID uint) (*models.WeeklyPeriod, error)
	FindByUserIDAndStartDate(userID uint, startDate time.Time) (*models.WeeklyPeriod, error)
	FindLatestByUserID(userID uint) (*models.WeeklyPeriod, error)
	CountActiveByUserID(userID uint) (int64, error)
	MarkCompleted(id uint) error
	FindLapsedActive(asOf time.Time) ([]models.WeeklyPeriod, error)
	FindOverlapping(userID uint, startDate, endDate time.Time) ([]models.WeeklyPeriod, error)
}

type weeklyPeriodRepository struct {
	db *gorm.DB
}

func NewWeeklyPeriodRepository(db *gorm.DB) WeeklyPeriodRepository {
	return &weeklyPeriodRepository{db}
}

// CreateIdempotent inserts the period unless one already exists for
// (user_id, start_date). A duplicate create is a no-op success; created
// reports whether a new row was written.
func (r *weeklyPeriodRepository) CreateIdempotent(period *models.WeeklyPeriod) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "start_date"}},
		DoNothing: true,
	}).Create(period)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *weeklyPeriodRepository) FindByID(id uint) (*models.WeeklyPeriod, error) {
	var period models.WeeklyPeriod
	err := r.db.First(&period, id).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *weeklyPeriodRepository) FindActiveByUserID(userID uint) (*models.WeeklyPeriod, error) {
	var period models.WeeklyPeriod
	err := r.db.Where("user_id = ? AND status = ?", userID, models.PeriodStatusActive).
		Order("start_date DESC").
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *weeklyPeriodRepository) FindByUserIDAndStartDate(userID uint, startDate time.Time) (*models.WeeklyPeriod, error) {
	var period models.WeeklyPeriod
	err := r.db.Where("user_id = ? AND start_date = ?", userID, startDate).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *weeklyPeriodRepository) FindLatestByUserID(userID uint) (*models.WeeklyPeriod, error) {
	var period models.WeeklyPeriod
	err := r.db.Where("user_id = ?", userID).
		Order("start_date DESC").
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *weeklyPeriodRepository) CountActiveByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.WeeklyPeriod{}).
		Where("user_id = ? AND status = ?", userID, models.PeriodStatusActive).
		Count(&count).Error
	return count, err
}

func (r *weeklyPeriodRepository) MarkCompleted(id uint) error {
	return r.db.Model(&models.WeeklyPeriod{}).Where("id = ?", id).
		Update("status", models.PeriodStatusCompleted).Error
}

// FindLapsedActive returns every active period whose end date is strictly
// before asOf, across all users. Drives the daily rotation job.
func (r *weeklyPeriodRepository) FindLapsedActive(asOf time.Time) ([]models.WeeklyPeriod, error) {
	var periods []models.WeeklyPeriod
	err := r.db.Where("status = ? AND end_date < ?", models.PeriodStatusActive, asOf).
		Order("user_id ASC").
		Find(&periods).Error
	return periods, err
}

func (r *weeklyPeriodRepository) FindOverlapping(userID uint, startDate, endDate time.Time) ([]models.WeeklyPeriod, error) {
	var periods []models.WeeklyPeriod
	err := r.db.Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, endDate, startDate).
		Find(&periods).Error
	return periods, err
}
