package main

import (
	"log"

	"github.com/HalimKing/Point-of-Sale-System--sub001/config"
	"github.com/HalimKing/Point-of-Sale-System--sub001/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(database.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.SeedData(database.DB); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
}
