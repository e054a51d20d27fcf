package usecases

import (
	"context"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type AssignRoleCommand struct {
	TargetUserID uint
	Role         string
	ActorID      uint
	ActorRole    authorization.UserRole
}

type AssignRoleUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewAssignRoleUseCase(userRepo user.UserRepository, logger logger.Interface) *AssignRoleUseCase {
	return &AssignRoleUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *AssignRoleUseCase) Execute(ctx context.Context, cmd AssignRoleCommand) (*dto.UserDTO, error) {
	if !cmd.ActorRole.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can change roles")
	}
	if cmd.TargetUserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	// Admins cannot demote themselves; another admin has to do it.
	if cmd.TargetUserID == cmd.ActorID {
		return nil, errors.NewValidationError("cannot change own role")
	}

	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role")
	}

	target, err := uc.userRepo.GetByID(ctx, cmd.TargetUserID)
	if err != nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if err := target.ChangeRole(role); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, target); err != nil {
		uc.logger.Errorw("failed to change role", "user_id", target.ID(), "error", err)
		return nil, errors.NewInternalError("failed to change role")
	}

	uc.logger.Infow("role changed",
		"user_id", target.ID(),
		"role", role.String(),
		"actor_id", cmd.ActorID)

	return dto.ToUserDTO(target), nil
}
