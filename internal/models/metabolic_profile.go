package models

import (
	"time"

	"gorm.io/gorm"
)

// Sex categories accepted on a profile. SexOther is mapped to the female
// Mifflin-St Jeor offset (-161) as the conservative default; callers that
// need a different mapping must compute their own basal rate.
const (
	SexMale   = "male"
	SexFemale = "female"
	SexOther  = "other"
)

const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

type MetabolicProfile struct {
	ID              uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt       time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt       time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	UserID          uint           `gorm:"uniqueIndex" json:"user_id" example:"1"`
	Sex             string         `json:"sex" example:"female"`
	WeightLbs       float64        `json:"weight_lbs" example:"165"`
	HeightInches    float64        `json:"height_inches" example:"66"`
	BirthDate       time.Time      `gorm:"type:date" json:"birth_date" example:"1990-04-12T00:00:00Z"`
	ActivityLevel   int            `gorm:"check:activity_level BETWEEN 1 AND 5" json:"activity_level" example:"2"`
	Goal            string         `json:"goal" example:"lose"`
	TargetWeightLbs float64        `json:"target_weight_lbs" example:"145"`
}

func (p *MetabolicProfile) TableName() string {
	return "metabolic_profiles"
}
