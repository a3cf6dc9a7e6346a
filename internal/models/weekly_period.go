package models

import (
	"time"
)

const (
	PeriodStatusActive    = "active"
	PeriodStatusCompleted = "completed"
)

const (
	PeriodTypeBaseline = "baseline"
	PeriodTypeStandard = "standard"
)

// WeeklyPeriod is a Monday-Sunday tracking window. At most one period per
// user may hold status "active" at any time, and periods for the same user
// never overlap. Creation is idempotent on (user_id, start_date).
type WeeklyPeriod struct {
	ID                   uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt            time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt            time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	UserID               uint      `gorm:"uniqueIndex:idx_user_week_start" json:"user_id" example:"1"`
	StartDate            time.Time `gorm:"type:date;uniqueIndex:idx_user_week_start" json:"start_date" example:"2023-01-02T00:00:00Z"`
	EndDate              time.Time `gorm:"type:date" json:"end_date" example:"2023-01-08T00:00:00Z"`
	BaselineDailyAverage int       `json:"baseline_daily_average" example:"2100"`
	DailyBudget          int       `json:"daily_budget" example:"1950"`
	WeeklyBudget         int       `json:"weekly_budget" example:"13650"`
	Status               string    `gorm:"index" json:"status" example:"active"`
	PeriodType           string    `json:"period_type" example:"standard"`
}

func (p *WeeklyPeriod) TableName() string {
	return "weekly_periods"
}

// Contains reports whether the given calendar date falls inside the period.
func (p *WeeklyPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// DayCount is the number of calendar days the period spans. A full week is
// 7; the first period after baseline completion may be shorter.
func (p *WeeklyPeriod) DayCount() int {
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}
