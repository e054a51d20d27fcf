package usecases

import (
	"context"

	"helpdesk/internal/application/setting/dto"
	"helpdesk/internal/domain/setting"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type UpdateNotificationsCommand struct {
	UserID          uint
	TicketUpdates   *bool
	EmailEnabled    *bool
	TelegramEnabled *bool
}

type UpdateNotificationsUseCase struct {
	settingsRepo setting.SettingsRepository
	logger       logger.Interface
}

func NewUpdateNotificationsUseCase(settingsRepo setting.SettingsRepository, logger logger.Interface) *UpdateNotificationsUseCase {
	return &UpdateNotificationsUseCase{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

func (uc *UpdateNotificationsUseCase) Execute(ctx context.Context, cmd UpdateNotificationsCommand) (*dto.SettingsDTO, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	settings, err := loadOrCreateSettings(ctx, uc.settingsRepo, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load settings", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to load settings")
	}

	// Turning telegram on without a linked chat is allowed; delivery stays
	// off until the user links (IsTelegramDeliverable gates sends).
	if cmd.TicketUpdates != nil {
		settings.SetTicketUpdates(*cmd.TicketUpdates)
	}
	if cmd.EmailEnabled != nil {
		settings.SetEmailEnabled(*cmd.EmailEnabled)
	}
	if cmd.TelegramEnabled != nil {
		settings.SetTelegramEnabled(*cmd.TelegramEnabled)
	}

	if err := uc.settingsRepo.Update(ctx, settings); err != nil {
		uc.logger.Errorw("failed to update settings", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to update settings")
	}

	return dto.ToSettingsDTO(settings), nil
}
