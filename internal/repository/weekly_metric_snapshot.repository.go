package repository

import (
	"time"

	"caloria/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeeklyMetricSnapshotRepository interface {
	Upsert(snapshot *models.WeeklyMetricSnapshot) error
	FindByKey(userID, periodID uint, calcDate time.Time) (*models.WeeklyMetricSnapshot, error)
	FindByPeriod(userID, periodID uint) ([]models.WeeklyMetricSnapshot, error)
}

type weeklyMetricSnapshotRepository struct {
	db *gorm.DB
}

func NewWeeklyMetricSnapshotRepository(db *gorm.DB) WeeklyMetricSnapshotRepository {
	return &weeklyMetricSnapshotRepository{db}
}

// Upsert overwrites the snapshot for (user, period, calc date). The strict
// composite key replaces any pick-latest-by-recency read: recalculation for
// the same day always lands on the same row.
func (r *weeklyMetricSnapshotRepository) Upsert(snapshot *models.WeeklyMetricSnapshot) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "weekly_period_id"}, {Name: "calc_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"consumed_total", "burned_total", "net_total", "remaining_budget",
			"reserved_total", "balance_score", "consistency_score", "drift_score",
			"updated_at",
		}),
	}).Create(snapshot).Error
}

func (r *weeklyMetricSnapshotRepository) FindByKey(userID, periodID uint, calcDate time.Time) (*models.WeeklyMetricSnapshot, error) {
	var snapshot models.WeeklyMetricSnapshot
	err := r.db.Where("user_id = ? AND weekly_period_id = ? AND calc_date = ?", userID, periodID, calcDate).
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *weeklyMetricSnapshotRepository) FindByPeriod(userID, periodID uint) ([]models.WeeklyMetricSnapshot, error) {
	var snapshots []models.WeeklyMetricSnapshot
	err := r.db.Where("user_id = ? AND weekly_period_id = ?", userID, periodID).
		Order("calc_date ASC").
		Find(&snapshots).Error
	return snapshots, err
}
