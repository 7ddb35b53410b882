package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"chatquestbot/internal/models"
)

// Migrate creates or updates the schema for all entities. The composite
// indexes backing the hot queries (answer review filtering, weekly point
// summation, daily activity upserts, current-task lookup) come from the
// model tags.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.DailyTask{},
		&models.Answer{},
		&models.PointEntry{},
		&models.ChatActivity{},
		&models.Warning{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}
