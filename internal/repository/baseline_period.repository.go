package repository

import (
	"caloria/internal/models"

	"gorm.io/gorm"
)

type BaselinePeriodRepository interface {
	Create(period *models.BaselinePeriod) error
	FindActiveByUserID(userID uint) (*models.BaselinePeriod, error)
	FindByUserID(userID uint) ([]models.BaselinePeriod, error)
	UpdateStatus(id uint, status string) error
}

type baselinePeriodRepository struct {
	db *gorm.DB
}

func NewBaselinePeriodRepository(db *gorm.DB) BaselinePeriodRepository {
	return &baselinePeriodRepository{db}
}

func (r *baselinePeriodRepository) Create(period *models.BaselinePeriod) error {
	return r.db.Create(period).Error
}

func (r *baselinePeriodRepository) FindActiveByUserID(userID uint) (*models.BaselinePeriod, error) {
	var period models.BaselinePeriod
	err := r.db.Where("user_id = ? AND status = ?", userID, models.BaselineStatusActive).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *baselinePeriodRepository) FindByUserID(userID uint) ([]models.BaselinePeriod, error) {
	var periods []models.BaselinePeriod
	err := r.db.Where("user_id = ?", userID).Order("start_date DESC").Find(&periods).Error
	return periods, err
}

func (r *baselinePeriodRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.BaselinePeriod{}).Where("id = ?", id).
		Update("status", status).Error
}
