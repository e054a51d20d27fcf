package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type AddCommentCommand struct {
	TicketID uint
	AuthorID uint
	Content  string
	UserRole authorization.UserRole
}

type AddCommentResult struct {
	EntryID   uint
	TicketID  uint
	CreatedAt time.Time
}

type AddCommentUseCase struct {
	ticketRepo ticket.TicketRepository
	entryRepo  ticket.EntryRepository
	notifier   TicketNotifier
	logger     logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	entryRepo ticket.EntryRepository,
	notifier TicketNotifier,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo: ticketRepo,
		entryRepo:  entryRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.AuthorID == 0 {
		return nil, errors.NewValidationError("author ID is required")
	}
	if len(cmd.Content) == 0 {
		return nil, errors.NewValidationError("content is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if !t.CanBeViewedBy(cmd.AuthorID, cmd.UserRole) {
		return nil, errors.NewForbiddenError("no access to this ticket")
	}

	entry, err := ticket.NewComment(t.ID(), cmd.AuthorID, cmd.Content)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.entryRepo.Save(ctx, entry); err != nil {
		uc.logger.Errorw("failed to save comment", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.notifier.NotifyTicketEvent("ticket_commented", t.ID(), cmd.Content)

	return &AddCommentResult{
		EntryID:   entry.ID(),
		TicketID:  t.ID(),
		CreatedAt: entry.CreatedAt(),
	}, nil
}
