package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/streamgate-io/streamgate/internal/infrastructure/persistence/models"
)

// Migrate brings the schema up to date for all persistence models,
// including the unique indexes the allocator and session upserts rely on.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.PlaylistModel{},
		&models.DeviceSessionModel{},
		&models.AccessEventModel{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
