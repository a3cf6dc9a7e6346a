package repository

import (
	"time"

	"caloria/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyObservationRepository interface {
	UpsertConsumed(userID uint, date time.Time, calories int, dayType string) error
	UpsertBurned(userID uint, date time.Time, calories int) error
	FindByUserIDAndDate(userID uint, date time.Time) (*models.DailyObservation, error)
	FindByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]models.DailyObservation, error)
}

type dailyObservationRepository struct {
	db *gorm.DB
}

func NewDailyObservationRepository(db *gorm.DB) DailyObservationRepository {
	return &dailyObservationRepository{db}
}

// UpsertConsumed writes the consumed-calories value for (user, date). The
// (user_id, log_date) unique key makes concurrent writers converge on one
// row; last writer wins.
func (r *dailyObservationRepository) UpsertConsumed(userID uint, date time.Time, calories int, dayType string) error {
	obs := models.DailyObservation{
		UserID:           userID,
		LogDate:          date,
		ConsumedCalories: calories,
		DayType:          dayType,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"consumed_calories", "day_type", "updated_at"}),
	}).Create(&obs).Error
}

// UpsertBurned writes the burned-calories value for (user, date), creating
// the row with zero consumed calories when no food has been logged yet.
func (r *dailyObservationRepository) UpsertBurned(userID uint, date time.Time, calories int) error {
	obs := models.DailyObservation{
		UserID:         userID,
		LogDate:        date,
		BurnedCalories: calories,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"burned_calories", "updated_at"}),
	}).Create(&obs).Error
}

func (r *dailyObservationRepository) FindByUserIDAndDate(userID uint, date time.Time) (*models.DailyObservation, error) {
	var obs models.DailyObservation
	err := r.db.Where("user_id = ? AND log_date = ?", userID, date).First(&obs).Error
	if err != nil {
		return nil, err
	}
	return &obs, nil
}

func (r *dailyObservationRepository) FindByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]models.DailyObservation, error) {
	var observations []models.DailyObservation
	err := r.db.Where("user_id = ? AND log_date BETWEEN ? AND ?", userID, startDate, endDate).
		Order("log_date ASC").
		Find(&observations).Error
	return observations, err
}
