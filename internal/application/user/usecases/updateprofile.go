package usecases

import (
	"context"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type UpdateProfileCommand struct {
	UserID uint
	Name   *string
}

type UpdateProfileUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.UserRepository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if cmd.Name != nil {
		if err := u.UpdateName(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update profile", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update profile")
	}

	return dto.ToUserDTO(u), nil
}
