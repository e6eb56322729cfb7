package db

import (
	"support-portal/internal/session"

	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&session.Item{},
	)
}
