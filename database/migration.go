package database

import (
	"fmt"
	"log"

	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates all tables in dependency order
func AutoMigrate(db *gorm.DB) error {
	for _, model := range models.AllModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	log.Printf("Migrated %d tables", len(models.AllModels()))
	return nil
}
