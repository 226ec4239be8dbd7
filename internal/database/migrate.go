package database

import (
	"gorm.io/gorm"

	"github.com/menucraft/backend/internal/models"
)

// Migrate brings the schema up to date. Both supported drivers go through
// gorm auto-migration; the table set is small enough that versioned SQL
// migrations would be overhead without benefit.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Menu{},
		&models.MenuSection{},
		&models.MenuItem{},
		&models.MenuSpacer{},
	)
}
