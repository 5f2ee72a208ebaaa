package main

import (
	"context"
	"log"

	"github.com/dwelli/backend/internal/repositories"
	"github.com/dwelli/backend/internal/seed"
	"github.com/dwelli/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	if err := repositories.AutoMigrate(db.Postgres); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	log.Println("Start seeding...")
	if err := seed.Run(context.Background(), db.Postgres); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding finished.")
}
