package database

import (
	"parkpass/internal/catalog"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.TicketPrice{},
	)
}
