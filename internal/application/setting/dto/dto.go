package dto

import (
	"time"

	"helpdesk/internal/domain/setting"
)

type TelegramLinkDTO struct {
	ChatID   int64     `json:"chat_id"`
	Username string    `json:"username"`
	LinkedAt time.Time `json:"linked_at"`
}

type SettingsDTO struct {
	TicketUpdates     bool             `json:"ticket_updates"`
	EmailEnabled      bool             `json:"email_enabled"`
	TelegramEnabled   bool             `json:"telegram_enabled"`
	TelegramLink      *TelegramLinkDTO `json:"telegram_link,omitempty"`
	PasswordChangedAt *time.Time       `json:"password_changed_at,omitempty"`
}

func ToSettingsDTO(s *setting.Settings) *SettingsDTO {
	d := &SettingsDTO{
		TicketUpdates:     s.TicketUpdates(),
		EmailEnabled:      s.EmailEnabled(),
		TelegramEnabled:   s.TelegramEnabled(),
		PasswordChangedAt: s.PasswordChangedAt(),
	}
	if link := s.TelegramLink(); link != nil {
		d.TelegramLink = &TelegramLinkDTO{
			ChatID:   link.ChatID,
			Username: link.Username,
			LinkedAt: link.LinkedAt,
		}
	}
	return d
}
