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

type LinkTelegramCommand struct {
	UserID   uint
	Username string
}

// LinkTelegramUseCase verifies a telegram handle against recent bot updates
// and binds the resolved chat to the user. The user must have messaged the
// bot first; otherwise there is no update to match against.
type LinkTelegramUseCase struct {
	settingsRepo setting.SettingsRepository
	bot          ChatFinder
	logger       logger.Interface
}

func NewLinkTelegramUseCase(
	settingsRepo setting.SettingsRepository,
	bot ChatFinder,
	logger logger.Interface,
) *LinkTelegramUseCase {
	return &LinkTelegramUseCase{
		settingsRepo: settingsRepo,
		bot:          bot,
		logger:       logger,
	}
}

func (uc *LinkTelegramUseCase) Execute(ctx context.Context, cmd LinkTelegramCommand) (*dto.SettingsDTO, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	if len(cmd.Username) == 0 {
		return nil, errors.NewValidationError("telegram username is required")
	}
	if uc.bot == nil {
		return nil, errors.NewValidationError("telegram integration is not configured")
	}

	settings, err := loadOrCreateSettings(ctx, uc.settingsRepo, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load settings", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to load settings")
	}
	if settings.IsTelegramLinked() {
		return nil, errors.NewConflictError("telegram is already linked")
	}

	chatID, err := uc.bot.FindChatByUsername(ctx, cmd.Username)
	if err != nil {
		uc.logger.Errorw("failed to query bot updates", "error", err)
		return nil, errors.NewInternalError("failed to verify telegram account")
	}
	if chatID == 0 {
		return nil, errors.NewNotFoundError("no message from this username found, message the bot first")
	}

	// One chat cannot back two accounts.
	if _, err := uc.settingsRepo.GetByTelegramChatID(ctx, chatID); err == nil {
		return nil, errors.NewConflictError("this telegram account is linked to another user")
	}

	if err := settings.LinkTelegram(chatID, cmd.Username); err != nil {
		if stderrors.Is(err, setting.ErrAlreadyLinked) {
			return nil, errors.NewConflictError("telegram is already linked")
		}
		return nil, errors.NewValidationError(err.Error())
	}
	settings.SetTelegramEnabled(true)

	if err := uc.settingsRepo.Update(ctx, settings); err != nil {
		uc.logger.Errorw("failed to persist telegram link", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to link telegram")
	}

	uc.logger.Infow("telegram linked", "user_id", cmd.UserID, "chat_id", chatID)

	// Confirmation message is best effort.
	goroutine.Detach(uc.logger, "telegram-link-confirm", func() error {
		return uc.bot.SendMessage(context.Background(), chatID, telegram.MsgLinkSuccess)
	})

	return dto.ToSettingsDTO(settings), nil
}
