package usecases

import (
	"context"

	"helpdesk/internal/application/base/dto"
	"helpdesk/internal/domain/base"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type CreateBaseCommand struct {
	Name        string
	Code        string
	Description string
	UserRole    authorization.UserRole
}

type CreateBaseUseCase struct {
	baseRepo base.BaseRepository
	logger   logger.Interface
}

func NewCreateBaseUseCase(baseRepo base.BaseRepository, logger logger.Interface) *CreateBaseUseCase {
	return &CreateBaseUseCase{
		baseRepo: baseRepo,
		logger:   logger,
	}
}

func (uc *CreateBaseUseCase) Execute(ctx context.Context, cmd CreateBaseCommand) (*dto.BaseDTO, error) {
	if !cmd.UserRole.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can manage bases")
	}

	// Codes are unique; they appear in ticket exports and imports.
	if _, err := uc.baseRepo.GetByCode(ctx, cmd.Code); err == nil {
		return nil, errors.NewConflictError("base code is already in use")
	}

	newBase, err := base.NewBase(cmd.Name, cmd.Code, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.baseRepo.Save(ctx, newBase); err != nil {
		uc.logger.Errorw("failed to save base", "code", cmd.Code, "error", err)
		return nil, errors.NewInternalError("failed to create base")
	}

	uc.logger.Infow("base created", "base_id", newBase.ID(), "code", newBase.Code())

	return dto.ToBaseDTO(newBase), nil
}
