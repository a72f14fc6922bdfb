package migration

import (
	"servonix/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.MessageModel{},
	}
}
