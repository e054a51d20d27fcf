package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ChangePriorityCommand struct {
	TicketID uint
	Priority string
	UserID   uint
	UserRole authorization.UserRole
}

type ChangePriorityResult struct {
	TicketID    uint
	OldPriority string
	NewPriority string
}

type ChangePriorityUseCase struct {
	ticketRepo ticket.TicketRepository
	notifier   TicketNotifier
	logger     logger.Interface
}

func NewChangePriorityUseCase(
	ticketRepo ticket.TicketRepository,
	notifier TicketNotifier,
	logger logger.Interface,
) *ChangePriorityUseCase {
	return &ChangePriorityUseCase{
		ticketRepo: ticketRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *ChangePriorityUseCase) Execute(ctx context.Context, cmd ChangePriorityCommand) (*ChangePriorityResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError("invalid priority")
	}

	if !cmd.UserRole.CanManageTickets() {
		return nil, errors.NewForbiddenError("only staff can change priority")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	oldPriority := t.Priority()
	if err := t.ChangePriority(priority); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to change ticket priority", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.notifier.NotifyTicketEvent("ticket_updated", t.ID(), "")

	return &ChangePriorityResult{
		TicketID:    t.ID(),
		OldPriority: oldPriority.String(),
		NewPriority: t.Priority().String(),
	}, nil
}
