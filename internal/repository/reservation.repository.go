package repository

import (
	"time"

	"caloria/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository interface {
	Upsert(reservation *models.Reservation) error
	FindByUserIDAndDate(userID uint, date time.Time) (*models.Reservation, error)
	FindByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]models.Reservation, error)
	DeleteByUserIDAndDate(userID uint, date time.Time) error
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db}
}

// Upsert writes the reservation for (user, date); a conflicting reservation
// on the same date is overwritten, never duplicated.
func (r *reservationRepository) Upsert(reservation *models.Reservation) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "reserved_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"planned_calories", "note", "updated_at"}),
	}).Create(reservation).Error
}

func (r *reservationRepository) FindByUserIDAndDate(userID uint, date time.Time) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.Where("user_id = ? AND reserved_date = ?", userID, date).First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindByUserIDAndDateRange(userID uint, startDate, endDate time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.Where("user_id = ? AND reserved_date BETWEEN ? AND ?", userID, startDate, endDate).
		Order("reserved_date ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) DeleteByUserIDAndDate(userID uint, date time.Time) error {
	return r.db.Where("user_id = ? AND reserved_date = ?", userID, date).
		Delete(&models.Reservation{}).Error
}
