package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type UpdateTicketCommand struct {
	TicketID    uint
	Title       *string
	Description *string
	UserID      uint
	UserRole    authorization.UserRole
}

type UpdateTicketResult struct {
	TicketID  uint
	UpdatedAt time.Time
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	notifier   TicketNotifier
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	notifier TicketNotifier,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.Title == nil && cmd.Description == nil {
		return nil, errors.NewValidationError("nothing to update")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	// Only the creator or staff may edit details.
	if !authorization.CanAccessResourceByOwnerID(cmd.UserID, cmd.UserRole, t.CreatorID()) {
		return nil, errors.NewForbiddenError("no access to this ticket")
	}

	title := t.Title()
	if cmd.Title != nil {
		title = *cmd.Title
	}
	description := t.Description()
	if cmd.Description != nil {
		description = *cmd.Description
	}

	if err := t.UpdateDetails(title, description); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.notifier.NotifyTicketEvent("ticket_updated", t.ID(), "")

	return &UpdateTicketResult{
		TicketID:  t.ID(),
		UpdatedAt: t.UpdatedAt(),
	}, nil
}
