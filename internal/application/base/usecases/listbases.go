package usecases

import (
	"context"

	"helpdesk/internal/application/base/dto"
	"helpdesk/internal/domain/base"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ListBasesQuery struct {
	ActiveOnly bool
}

type ListBasesResult struct {
	Bases []*dto.BaseDTO `json:"bases"`
	Total int            `json:"total"`
}

// ListBasesUseCase returns all bases. Any authenticated user may call it:
// the ticket form needs base names even for non-admins.
type ListBasesUseCase struct {
	baseRepo base.BaseRepository
	logger   logger.Interface
}

func NewListBasesUseCase(baseRepo base.BaseRepository, logger logger.Interface) *ListBasesUseCase {
	return &ListBasesUseCase{
		baseRepo: baseRepo,
		logger:   logger,
	}
}

func (uc *ListBasesUseCase) Execute(ctx context.Context, query ListBasesQuery) (*ListBasesResult, error) {
	bases, err := uc.baseRepo.List(ctx, query.ActiveOnly)
	if err != nil {
		uc.logger.Errorw("failed to list bases", "error", err)
		return nil, errors.NewInternalError("failed to list bases")
	}

	return &ListBasesResult{
		Bases: dto.ToBaseDTOs(bases),
		Total: len(bases),
	}, nil
}
