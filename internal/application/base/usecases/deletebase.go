package usecases

import (
	"context"

	"helpdesk/internal/domain/base"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type DeleteBaseCommand struct {
	BaseID   uint
	UserRole authorization.UserRole
}

// DeleteBaseUseCase removes an empty base. Bases with members must be
// drained first; deactivation is the way to retire a base that still has
// history attached.
type DeleteBaseUseCase struct {
	baseRepo base.BaseRepository
	logger   logger.Interface
}

func NewDeleteBaseUseCase(baseRepo base.BaseRepository, logger logger.Interface) *DeleteBaseUseCase {
	return &DeleteBaseUseCase{
		baseRepo: baseRepo,
		logger:   logger,
	}
}

func (uc *DeleteBaseUseCase) Execute(ctx context.Context, cmd DeleteBaseCommand) error {
	if !cmd.UserRole.IsAdmin() {
		return errors.NewForbiddenError("only admins can manage bases")
	}
	if cmd.BaseID == 0 {
		return errors.NewValidationError("base ID is required")
	}

	if _, err := uc.baseRepo.GetByID(ctx, cmd.BaseID); err != nil {
		return errors.NewNotFoundError("base not found")
	}

	members, err := uc.baseRepo.CountMembers(ctx, cmd.BaseID)
	if err != nil {
		uc.logger.Errorw("failed to count base members", "base_id", cmd.BaseID, "error", err)
		return errors.NewInternalError("failed to delete base")
	}
	if members > 0 {
		return errors.NewConflictError("base still has members, reassign them first")
	}

	if err := uc.baseRepo.Delete(ctx, cmd.BaseID); err != nil {
		uc.logger.Errorw("failed to delete base", "base_id", cmd.BaseID, "error", err)
		return errors.NewInternalError("failed to delete base")
	}

	uc.logger.Infow("base deleted", "base_id", cmd.BaseID)
	return nil
}
