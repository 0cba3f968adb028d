package main

import (
	"log"

	"github.com/bellapacxx/tambola-backend/config"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("[FATAL] DATABASE_URL is required to run migrations")
	}

	db := config.SetupDatabase(cfg) // connects + migrates
	_ = db
	log.Println("Database migration completed successfully")
}
