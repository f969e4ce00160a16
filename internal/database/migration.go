package database

import (
	"fmt"

	"github.com/zempo1/bookKeeper/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
// Identifier allocation lives here: primary keys are assigned by SQLite,
// never by calling code.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Record{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
