package utils

import (
	"fmt"
	"log"
	mathrand "math/rand"
	"time"

	"caloria/internal/models"

	"gorm.io/gorm"
)

const DefaultNumUsers = 100

// SeedDemoData creates numUsers demo users, each with a metabolic profile,
// a completed baseline week of observations, and an active weekly period.
// Intended for local development and load testing only.
func SeedDemoData(db *gorm.DB, numUsers int, startUserID uint) error {
	today := CivilDate(time.Now())
	baselineStart := today.AddDate(0, 0, -10)

	for i := 0; i < numUsers; i++ {
		userID := startUserID + uint(i)

		profile := models.MetabolicProfile{
			UserID:          userID,
			Sex:             pickSex(i),
			WeightLbs:       140 + float64(mathrand.Intn(80)),
			HeightInches:    60 + float64(mathrand.Intn(16)),
			BirthDate:       time.Date(1970+mathrand.Intn(35), time.Month(1+mathrand.Intn(12)), 1+mathrand.Intn(28), 0, 0, 0, 0, time.UTC),
			ActivityLevel:   1 + mathrand.Intn(5),
			Goal:            models.GoalLose,
			TargetWeightLbs: 130 + float64(mathrand.Intn(40)),
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile for user %d: %w", userID, err)
		}

		baseline := models.BaselinePeriod{
			UserID:    userID,
			StartDate: baselineStart,
			Status:    models.BaselineStatusCompleted,
		}
		if err := db.Create(&baseline).Error; err != nil {
			return fmt.Errorf("failed to seed baseline for user %d: %w", userID, err)
		}

		for day := 0; day < 7; day++ {
			obs := models.DailyObservation{
				UserID:           userID,
				LogDate:          baselineStart.AddDate(0, 0, day),
				ConsumedCalories: 1700 + mathrand.Intn(700),
				BurnedCalories:   mathrand.Intn(400),
				DayType:          models.DayTypeNormal,
			}
			if err := db.Create(&obs).Error; err != nil {
				return fmt.Errorf("failed to seed observations for user %d: %w", userID, err)
			}
		}

		weekStart := today
		for weekStart.Weekday() != time.Monday {
			weekStart = weekStart.AddDate(0, 0, -1)
		}
		daily := 1800 + mathrand.Intn(500)
		period := models.WeeklyPeriod{
			UserID:               userID,
			StartDate:            weekStart,
			EndDate:              weekStart.AddDate(0, 0, 6),
			BaselineDailyAverage: 1900 + mathrand.Intn(400),
			DailyBudget:          daily,
			WeeklyBudget:         daily * 7,
			Status:               models.PeriodStatusActive,
			PeriodType:           models.PeriodTypeStandard,
		}
		if err := db.Create(&period).Error; err != nil {
			return fmt.Errorf("failed to seed period for user %d: %w", userID, err)
		}

		if (i+1)%50 == 0 {
			log.Printf("Seeded %d/%d users", i+1, numUsers)
		}
	}

	log.Printf("Seeded %d demo users starting at ID %d", numUsers, startUserID)
	return nil
}

// ClearDemoData removes all engine rows for the given user ID range.
func ClearDemoData(db *gorm.DB, startUserID, endUserID uint) error {
	for _, model := range []interface{}{
		&models.WeeklyMetricSnapshot{},
		&models.Reservation{},
		&models.WeeklyPeriod{},
		&models.BaselinePeriod{},
		&models.DailyObservation{},
		&models.MetabolicProfile{},
	} {
		if err := db.Unscoped().Where("user_id BETWEEN ? AND ?", startUserID, endUserID).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear demo data: %w", err)
		}
	}
	log.Printf("Cleared demo data for users %d-%d", startUserID, endUserID)
	return nil
}

func pickSex(i int) string {
	switch i % 3 {
	case 0:
		return models.SexFemale
	case 1:
		return models.SexMale
	default:
		return models.SexOther
	}
}
