package main

import (
	"log"
	"time"

	"github.com/avelina-r/foodgram/backend/config"
	"github.com/avelina-r/foodgram/backend/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.WaitForDatabase(cfg, 60*time.Second); err != nil {
		log.Fatalf("Database not reachable: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}
