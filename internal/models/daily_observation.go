package models

import (
	"time"
)

// Day type tags a user can attach to a logged day. Purely descriptive; the
// engine keys exception handling off reservations, not off these tags.
const (
	DayTypeNormal          = "normal"
	DayTypeSpecialOccasion = "special_occasion"
	DayTypeOffDay          = "off_day"
)

// DailyObservation is one row per (user, calendar date). Rows are upserted
// as food and exercise events arrive; the engine never deletes them.
type DailyObservation struct {
	ID               uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt        time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt        time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	UserID           uint      `gorm:"uniqueIndex:idx_user_log_date" json:"user_id" example:"1"`
	LogDate          time.Time `gorm:"type:date;uniqueIndex:idx_user_log_date" json:"log_date" example:"2023-01-01T00:00:00Z"`
	ConsumedCalories int       `json:"consumed_calories" example:"1850"`
	BurnedCalories   int       `json:"burned_calories" example:"300"`
	DayType          string    `json:"day_type" example:"normal"`
}

func (o *DailyObservation) TableName() string {
	return "daily_observations"
}
