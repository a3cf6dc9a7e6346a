package models

import (
	"time"
)

// Reservation is a user-declared future exception day with a pre-committed
// calorie allowance. Reserved days are exempt from overage redistribution;
// once the date elapses the row remains as historical record for drift
// scoring.
type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt       time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt       time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	UserID          uint      `gorm:"uniqueIndex:idx_user_reserved_date" json:"user_id" example:"1"`
	ReservedDate    time.Time `gorm:"type:date;uniqueIndex:idx_user_reserved_date" json:"reserved_date" example:"2023-01-07T00:00:00Z"`
	PlannedCalories int       `json:"planned_calories" example:"2500"`
	Note            string    `gorm:"type:text" json:"note" example:"birthday dinner"`
}

func (r *Reservation) TableName() string {
	return "reservations"
}
