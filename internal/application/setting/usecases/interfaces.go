package usecases

import (
	"context"

	"helpdesk/internal/application/setting/dto"
)

type GetSettingsExecutor interface {
	Execute(ctx context.Context, query GetSettingsQuery) (*dto.SettingsDTO, error)
}

type UpdateNotificationsExecutor interface {
	Execute(ctx context.Context, cmd UpdateNotificationsCommand) (*dto.SettingsDTO, error)
}

type LinkTelegramExecutor interface {
	Execute(ctx context.Context, cmd LinkTelegramCommand) (*dto.SettingsDTO, error)
}

type UnlinkTelegramExecutor interface {
	Execute(ctx context.Context, cmd UnlinkTelegramCommand) (*dto.SettingsDTO, error)
}

// ChatFinder locates a chat by scanning recent bot updates for a matching
// sender handle. Satisfied by *telegram.BotService.
type ChatFinder interface {
	FindChatByUsername(ctx context.Context, username string) (int64, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
}
