package database

import (
	"caloria/internal/models"
	"log"
)

func MigrateDatabase() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&models.MetabolicProfile{},
		&models.DailyObservation{},
		&models.BaselinePeriod{},
		&models.WeeklyPeriod{},
		&models.Reservation{},
		&models.WeeklyMetricSnapshot{},
	)

	if err != nil {
		log.Printf("Error during migration: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
