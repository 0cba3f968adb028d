package config

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bellapacxx/tambola-backend/models"
)

// SetupDatabase connects to Postgres and runs migrations. Returns nil
// when no DATABASE_URL is configured: the server then runs fully
// in-memory and simply records no game history.
func SetupDatabase(cfg Config) *gorm.DB {
	if cfg.DatabaseURL == "" {
		log.Println("[INFO] DATABASE_URL not set, game history disabled")
		return nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to DB: %v", err)
	}

	if err := db.AutoMigrate(&models.GameRecord{}); err != nil {
		log.Fatalf("[FATAL] Migration failed: %v", err)
	}

	log.Println("Database connected and migrated")
	return db
}
