package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type GetTicketStatsQuery struct {
	UserRole authorization.UserRole
}

type GetTicketStatsResult struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByPriority map[string]int64 `json:"by_priority"`
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query GetTicketStatsQuery) (*GetTicketStatsResult, error) {
	if !query.UserRole.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can view reports")
	}

	byStatus, err := uc.ticketRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by status", "error", err)
		return nil, errors.NewInternalError("failed to compute ticket stats")
	}

	byPriority, err := uc.ticketRepo.CountByPriority(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by priority", "error", err)
		return nil, errors.NewInternalError("failed to compute ticket stats")
	}

	result := &GetTicketStatsResult{
		ByStatus:   make(map[string]int64, len(byStatus)),
		ByPriority: make(map[string]int64, len(byPriority)),
	}

	for status, count := range byStatus {
		result.ByStatus[status.String()] = count
		result.Total += count
	}
	for priority, count := range byPriority {
		result.ByPriority[priority.String()] = count
	}

	return result, nil
}
