package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/setting"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
)

type SettingsRepository struct {
	db     *gorm.DB
	mapper mappers.SettingsMapper
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		mapper: mappers.NewSettingsMapper(),
	}
}

func (r *SettingsRepository) Save(ctx context.Context, s *setting.Settings) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if err := s.SetID(model.ID); err != nil {
		return err
	}
	return nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *setting.Settings) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") so clearing the telegram columns back to NULL sticks.
	result := tx.
		Model(&models.SettingsModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update settings: %w", result.Error)
	}
	return nil
}

func (r *SettingsRepository) GetByUserID(ctx context.Context, userID uint) (*setting.Settings, error) {
	var model models.SettingsModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, setting.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *SettingsRepository) GetByTelegramChatID(ctx context.Context, chatID int64) (*setting.Settings, error) {
	var model models.SettingsModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("telegram_chat_id = ?", chatID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, setting.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *SettingsRepository) ResolveTelegramRecipient(ctx context.Context, userID uint) (*setting.TelegramRecipient, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var row models.SettingsModel
	if err := tx.
		Where("user_id = ? AND telegram_enabled = ? AND telegram_chat_id IS NOT NULL", userID, true).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve telegram recipient: %w", err)
	}
	if row.TelegramChatID == nil {
		return nil, nil
	}
	return &setting.TelegramRecipient{UserID: row.UserID, ChatID: *row.TelegramChatID}, nil
}

func (r *SettingsRepository) ResolveAllTelegramRecipients(ctx context.Context) ([]setting.TelegramRecipient, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var rows []models.SettingsModel
	if err := tx.
		Where("telegram_enabled = ? AND telegram_chat_id IS NOT NULL", true).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve telegram recipients: %w", err)
	}

	recipients := make([]setting.TelegramRecipient, 0, len(rows))
	for _, row := range rows {
		if row.TelegramChatID == nil {
			continue
		}
		recipients = append(recipients, setting.TelegramRecipient{
			UserID: row.UserID,
			ChatID: *row.TelegramChatID,
		})
	}

	return recipients, nil
}

func (r *SettingsRepository) ResolveAllEmailRecipients(ctx context.Context) ([]setting.EmailRecipient, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var recipients []setting.EmailRecipient
	if err := tx.
		Model(&models.SettingsModel{}).
		Select("user_settings.user_id AS user_id, users.email AS email").
		Joins("JOIN users ON users.id = user_settings.user_id").
		Where("user_settings.email_enabled = ? AND users.active = ?", true, true).
		Scan(&recipients).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve email recipients: %w", err)
	}
	return recipients, nil
}
