package models

import (
	"time"
)

// WeeklyMetricSnapshot is one row per (user, weekly period, calculation
// date). Recalculating for the same date overwrites the existing row via
// the composite unique key; there is no "latest row" read path anywhere.
type WeeklyMetricSnapshot struct {
	ID               uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt        time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt        time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	UserID           uint      `gorm:"uniqueIndex:idx_user_period_calc_date" json:"user_id" example:"1"`
	WeeklyPeriodID   uint      `gorm:"uniqueIndex:idx_user_period_calc_date" json:"weekly_period_id" example:"1"`
	CalcDate         time.Time `gorm:"type:date;uniqueIndex:idx_user_period_calc_date" json:"calc_date" example:"2023-01-04T00:00:00Z"`
	ConsumedTotal    int       `json:"consumed_total" example:"5600"`
	BurnedTotal      int       `json:"burned_total" example:"900"`
	NetTotal         int       `json:"net_total" example:"4700"`
	RemainingBudget  int       `json:"remaining_budget" example:"8950"`
	ReservedTotal    int       `json:"reserved_total" example:"2500"`
	BalanceScore     int       `json:"balance_score" example:"100"`
	ConsistencyScore int       `json:"consistency_score" example:"85"`
	DriftScore       int       `json:"drift_score" example:"50"`
}

func (s *WeeklyMetricSnapshot) TableName() string {
	return "weekly_metric_snapshots"
}
