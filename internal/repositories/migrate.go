package repositories

import (
	"github.com/dwelli/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the relational schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.SavedListing{},
		&models.Document{},
	)
}
