package models

type SettingsModel struct {
	ID                uint   `gorm:"primaryKey"`
	UserID            uint   `gorm:"uniqueIndex;not null"`
	TicketUpdates     bool   `gorm:"not null;default:true"`
	EmailEnabled      bool   `gorm:"not null;default:true"`
	TelegramEnabled   bool   `gorm:"not null;default:false"`
	TelegramChatID    *int64 `gorm:"uniqueIndex"`
	TelegramUsername  string `gorm:"size:64"`
	TelegramLinkedAt  *int64
	PasswordChangedAt *int64
	Version           int   `gorm:"not null;default:1"`
	CreatedAt         int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt         int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (SettingsModel) TableName() string {
	return "user_settings"
}
