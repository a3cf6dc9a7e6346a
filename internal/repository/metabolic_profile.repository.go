package repository

import (
	"caloria/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MetabolicProfileRepository interface {
	Upsert(profile *models.MetabolicProfile) error
	FindByUserID(userID uint) (*models.MetabolicProfile, error)
	Update(profile *models.MetabolicProfile) error
	DeleteByUserID(userID uint) error
}

type metabolicProfileRepository struct {
	db *gorm.DB
}

func NewMetabolicProfileRepository(db *gorm.DB) MetabolicProfileRepository {
	return &metabolicProfileRepository{db}
}

func (r *metabolicProfileRepository) Upsert(profile *models.MetabolicProfile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sex", "weight_lbs", "height_inches", "birth_date",
			"activity_level", "goal", "target_weight_lbs", "updated_at",
		}),
	}).Create(profile).Error
}

func (r *metabolicProfileRepository) FindByUserID(userID uint) (*models.MetabolicProfile, error) {
	var profile models.MetabolicProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *metabolicProfileRepository) Update(profile *models.MetabolicProfile) error {
	return r.db.Save(profile).Error
}

func (r *metabolicProfileRepository) DeleteByUserID(userID uint) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.MetabolicProfile{}).Error
}
