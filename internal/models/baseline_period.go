package models

import (
	"time"
)

const (
	BaselineStatusActive    = "active"
	BaselineStatusCompleted = "completed"
	BaselineStatusAbandoned = "abandoned"
)

// BaselinePeriod is the one-time 7-day observation window used to measure
// real intake and exercise before any budget exists. It becomes terminal
// once at least 5 days of non-zero observations exist inside the window,
// or when the user abandons it for a declared-only estimate.
type BaselinePeriod struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	UserID    uint      `gorm:"index" json:"user_id" example:"1"`
	StartDate time.Time `gorm:"type:date" json:"start_date" example:"2023-01-02T00:00:00Z"`
	Status    string    `json:"status" example:"active"`
}

func (b *BaselinePeriod) TableName() string {
	return "baseline_periods"
}

// EndDate is the last calendar day inside the 7-day window.
func (b *BaselinePeriod) EndDate() time.Time {
	return b.StartDate.AddDate(0, 0, 6)
}
