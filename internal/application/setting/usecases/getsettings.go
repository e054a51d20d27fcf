package usecases

import (
	"context"

	"helpdesk/internal/application/setting/dto"
	"helpdesk/internal/domain/setting"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type GetSettingsQuery struct {
	UserID uint
}

// GetSettingsUseCase reads the user's settings, lazily creating the default
// row on first access.
type GetSettingsUseCase struct {
	settingsRepo setting.SettingsRepository
	logger       logger.Interface
}

func NewGetSettingsUseCase(settingsRepo setting.SettingsRepository, logger logger.Interface) *GetSettingsUseCase {
	return &GetSettingsUseCase{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

func (uc *GetSettingsUseCase) Execute(ctx context.Context, query GetSettingsQuery) (*dto.SettingsDTO, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	settings, err := loadOrCreateSettings(ctx, uc.settingsRepo, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load settings", "user_id", query.UserID, "error", err)
		return nil, errors.NewInternalError("failed to load settings")
	}

	return dto.ToSettingsDTO(settings), nil
}

// loadOrCreateSettings backs every settings operation: a user who has never
// touched their settings gets the defaults persisted on first read.
func loadOrCreateSettings(ctx context.Context, repo setting.SettingsRepository, userID uint) (*setting.Settings, error) {
	settings, err := repo.GetByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}

	created, err := setting.NewSettings(userID)
	if err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}
