package migration

import (
	"helpdesk/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.UserBaseModel{},
		&models.SessionModel{},
		&models.BaseModel{},
		&models.TicketModel{},
		&models.EntryModel{},
		&models.SettingsModel{},
	}
}
