package usecases

import (
	"context"

	"helpdesk/internal/application/base/dto"
	"helpdesk/internal/domain/base"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type UpdateBaseCommand struct {
	BaseID      uint
	Name        *string
	Description *string
	Active      *bool
	UserRole    authorization.UserRole
}

type UpdateBaseUseCase struct {
	baseRepo base.BaseRepository
	logger   logger.Interface
}

func NewUpdateBaseUseCase(baseRepo base.BaseRepository, logger logger.Interface) *UpdateBaseUseCase {
	return &UpdateBaseUseCase{
		baseRepo: baseRepo,
		logger:   logger,
	}
}

func (uc *UpdateBaseUseCase) Execute(ctx context.Context, cmd UpdateBaseCommand) (*dto.BaseDTO, error) {
	if !cmd.UserRole.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can manage bases")
	}
	if cmd.BaseID == 0 {
		return nil, errors.NewValidationError("base ID is required")
	}

	b, err := uc.baseRepo.GetByID(ctx, cmd.BaseID)
	if err != nil {
		return nil, errors.NewNotFoundError("base not found")
	}

	if cmd.Name != nil || cmd.Description != nil {
		name := b.Name()
		if cmd.Name != nil {
			name = *cmd.Name
		}
		description := b.Description()
		if cmd.Description != nil {
			description = *cmd.Description
		}
		if err := b.UpdateDetails(name, description); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if cmd.Active != nil {
		if *cmd.Active {
			b.Activate()
		} else {
			b.Deactivate()
		}
	}

	if err := uc.baseRepo.Update(ctx, b); err != nil {
		uc.logger.Errorw("failed to update base", "base_id", cmd.BaseID, "error", err)
		return nil, errors.NewInternalError("failed to update base")
	}

	return dto.ToBaseDTO(b), nil
}
