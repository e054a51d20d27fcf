package usecases

import (
	"context"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/domain/base"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type AssignBasesCommand struct {
	TargetUserID uint
	BaseIDs      []uint
	ActorRole    authorization.UserRole
}

// AssignBasesUseCase replaces a user's base memberships with the given set.
type AssignBasesUseCase struct {
	userRepo user.UserRepository
	baseRepo base.BaseRepository
	logger   logger.Interface
}

func NewAssignBasesUseCase(
	userRepo user.UserRepository,
	baseRepo base.BaseRepository,
	logger logger.Interface,
) *AssignBasesUseCase {
	return &AssignBasesUseCase{
		userRepo: userRepo,
		baseRepo: baseRepo,
		logger:   logger,
	}
}

func (uc *AssignBasesUseCase) Execute(ctx context.Context, cmd AssignBasesCommand) (*dto.UserDTO, error) {
	if !cmd.ActorRole.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can assign bases")
	}
	if cmd.TargetUserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	// Every base must exist before touching memberships.
	for _, baseID := range cmd.BaseIDs {
		if _, err := uc.baseRepo.GetByID(ctx, baseID); err != nil {
			return nil, errors.NewNotFoundError("base not found")
		}
	}

	target, err := uc.userRepo.GetByID(ctx, cmd.TargetUserID)
	if err != nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	for _, baseID := range target.BaseIDs() {
		target.RemoveFromBase(baseID)
	}
	for _, baseID := range cmd.BaseIDs {
		if err := target.AssignToBase(baseID); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.userRepo.Update(ctx, target); err != nil {
		uc.logger.Errorw("failed to assign bases", "user_id", target.ID(), "error", err)
		return nil, errors.NewInternalError("failed to assign bases")
	}

	return dto.ToUserDTO(target), nil
}
