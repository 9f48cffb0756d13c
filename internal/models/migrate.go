package models

import (
	"gorm.io/gorm"
)

// Migrate creates the schema on first startup if absent. There is no
// separate migration mechanism; AutoMigrate covers the two tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Event{},
	)
}
