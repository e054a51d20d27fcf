package usecases

import (
	"context"
	stderrors "errors"

	"helpdesk/internal/application/setting/dto"
	"helpdesk/internal/domain/setting"
	"helpdesk/internal/infrastructure/telegram"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/goroutine"
	"helpdesk/internal/shared/logger"
)

type UnlinkTelegramCommand struct {
	UserID uint
}

type UnlinkTelegramUseCase struct {
	settingsRepo setting.SettingsRepository
	bot          ChatFinder
	logger       logger.Interface
}

func NewUnlinkTelegramUseCase(
	settingsRepo setting.SettingsRepository,
	bot ChatFinder,
	logger logger.Interface,
) *UnlinkTelegramUseCase {
	return &UnlinkTelegramUseCase{
		settingsRepo: settingsRepo,
		bot:          bot,
		logger:       logger,
	}
}

func (uc *UnlinkTelegramUseCase) Execute(ctx context.Context, cmd UnlinkTelegramCommand) (*dto.SettingsDTO, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	settings, err := uc.settingsRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewNotFoundError("telegram is not linked")
	}

	link := settings.TelegramLink()

	if err := settings.UnlinkTelegram(); err != nil {
		if stderrors.Is(err, setting.ErrNotLinked) {
			return nil, errors.NewNotFoundError("telegram is not linked")
		}
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.settingsRepo.Update(ctx, settings); err != nil {
		uc.logger.Errorw("failed to persist telegram unlink", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to unlink telegram")
	}

	uc.logger.Infow("telegram unlinked", "user_id", cmd.UserID)

	// Goodbye notice to the now-unlinked chat, best effort.
	if link != nil && uc.bot != nil {
		chatID := link.ChatID
		goroutine.Detach(uc.logger, "telegram-unlink-notice", func() error {
			return uc.bot.SendMessage(context.Background(), chatID, telegram.MsgUnlinkNotice)
		})
	}

	return dto.ToSettingsDTO(settings), nil
}
