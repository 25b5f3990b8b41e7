package main

import (
	"flag"
	"log"
	"os"

	"github.com/HalimKing/Point-of-Sale-System--sub001/config"
	"github.com/HalimKing/Point-of-Sale-System--sub001/database"
	"github.com/HalimKing/Point-of-Sale-System--sub001/web"
)

func main() {
	// Command line flags
	var (
		migrate = flag.Bool("migrate", false, "Run database migration on startup")
		seed    = flag.Bool("seed", false, "Seed database with sample data")
		help    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Check database connection
	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatalf("Database connection check failed: %v", err)
	}

	// Run migration if requested
	if *migrate {
		log.Println("Running database migration...")
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("Migration completed successfully")
	}

	// Seed database if requested
	if *seed {
		log.Println("Seeding database with sample data...")
		if err := database.SeedData(database.DB); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Start web server
	server := web.NewServer(cfg, database.DB)
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func showHelp() {
	log.SetFlags(0)
	log.Println("Usage:", os.Args[0], "[flags]")
	log.Println()
	log.Println("Flags:")
	flag.PrintDefaults()
}
