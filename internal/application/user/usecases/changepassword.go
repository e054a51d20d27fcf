package usecases

import (
	"context"

	"helpdesk/internal/domain/setting"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ChangePasswordCommand struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordUseCase struct {
	userRepo     user.UserRepository
	settingsRepo setting.SettingsRepository
	hasher       PasswordHasher
	logger       logger.Interface
}

func NewChangePasswordUseCase(
	userRepo user.UserRepository,
	settingsRepo setting.SettingsRepository,
	hasher PasswordHasher,
	logger logger.Interface,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		hasher:       hasher,
		logger:       logger,
	}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if cmd.UserID == 0 {
		return errors.NewValidationError("user ID is required")
	}
	if len(cmd.NewPassword) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}
	if len(cmd.NewPassword) > 72 {
		return errors.NewValidationError("password exceeds maximum length of 72 characters")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return errors.NewNotFoundError("user not found")
	}

	if err := uc.hasher.Verify(cmd.CurrentPassword, u.PasswordHash()); err != nil {
		return errors.NewUnauthorizedError("current password is incorrect")
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return errors.NewInternalError("failed to change password")
	}

	if err := u.ChangePasswordHash(hash); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update password", "user_id", u.ID(), "error", err)
		return errors.NewInternalError("failed to change password")
	}

	// Stamp password_changed_at on settings; bookkeeping only, never fails
	// the change itself.
	uc.recordPasswordChange(ctx, u.ID())

	uc.logger.Infow("password changed", "user_id", u.ID())
	return nil
}

func (uc *ChangePasswordUseCase) recordPasswordChange(ctx context.Context, userID uint) {
	settings, err := uc.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		created, newErr := setting.NewSettings(userID)
		if newErr != nil {
			uc.logger.Warnw("failed to create settings", "user_id", userID, "error", newErr)
			return
		}
		created.RecordPasswordChange()
		if saveErr := uc.settingsRepo.Save(ctx, created); saveErr != nil {
			uc.logger.Warnw("failed to save settings", "user_id", userID, "error", saveErr)
		}
		return
	}

	settings.RecordPasswordChange()
	if err := uc.settingsRepo.Update(ctx, settings); err != nil {
		uc.logger.Warnw("failed to stamp password change", "user_id", userID, "error", err)
	}
}
