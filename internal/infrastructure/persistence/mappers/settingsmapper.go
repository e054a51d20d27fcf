package mappers

import (
	"helpdesk/internal/domain/setting"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
)

type SettingsMapper interface {
	ToModel(s *setting.Settings) *models.SettingsModel
	ToDomain(model *models.SettingsModel) (*setting.Settings, error)
}

type SettingsMapperImpl struct{}

func NewSettingsMapper() SettingsMapper {
	return &SettingsMapperImpl{}
}

func (m *SettingsMapperImpl) ToModel(s *setting.Settings) *models.SettingsModel {
	model := &models.SettingsModel{
		ID:                s.ID(),
		UserID:            s.UserID(),
		TicketUpdates:     s.TicketUpdates(),
		EmailEnabled:      s.EmailEnabled(),
		TelegramEnabled:   s.TelegramEnabled(),
		PasswordChangedAt: optionalMilli(s.PasswordChangedAt()),
		Version:           s.Version(),
		CreatedAt:         s.CreatedAt().UnixMilli(),
		UpdatedAt:         s.UpdatedAt().UnixMilli(),
	}

	if link := s.TelegramLink(); link != nil {
		chatID := link.ChatID
		linkedAt := link.LinkedAt.UnixMilli()
		model.TelegramChatID = &chatID
		model.TelegramUsername = link.Username
		model.TelegramLinkedAt = &linkedAt
	}

	return model
}

func (m *SettingsMapperImpl) ToDomain(model *models.SettingsModel) (*setting.Settings, error) {
	var link *setting.TelegramLink
	if model.TelegramChatID != nil {
		link = &setting.TelegramLink{
			ChatID:   *model.TelegramChatID,
			Username: model.TelegramUsername,
		}
		if model.TelegramLinkedAt != nil {
			link.LinkedAt = biztime.FromUnixMilli(*model.TelegramLinkedAt)
		}
	}

	return setting.ReconstructSettings(
		model.ID,
		model.UserID,
		model.TicketUpdates,
		model.EmailEnabled,
		model.TelegramEnabled,
		link,
		optionalTime(model.PasswordChangedAt),
		model.Version,
		biztime.FromUnixMilli(model.CreatedAt),
		biztime.FromUnixMilli(model.UpdatedAt),
	)
}
