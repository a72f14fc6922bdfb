package migrations

import (
	"gorm.io/gorm"

	"servonix/internal/infrastructure/persistence/models"
)

func MigrateMessageTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.MessageModel{},
	)
}
