package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID uint
	Status   string
	Note     string
	UserID   uint
	UserRole authorization.UserRole
}

type ChangeStatusResult struct {
	TicketID  uint
	OldStatus string
	NewStatus string
}

type ChangeStatusUseCase struct {
	ticketRepo ticket.TicketRepository
	entryRepo  ticket.EntryRepository
	txManager  TransactionManager
	notifier   TicketNotifier
	logger     logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	entryRepo ticket.EntryRepository,
	txManager TransactionManager,
	notifier TicketNotifier,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo: ticketRepo,
		entryRepo:  entryRepo,
		txManager:  txManager,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	newStatus, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError("invalid status")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	// Creators may resolve/close their own tickets; everything else is staff.
	if !cmd.UserRole.CanManageTickets() {
		if t.CreatorID() != cmd.UserID {
			return nil, errors.NewForbiddenError("no access to this ticket")
		}
		if !newStatus.IsResolved() && !newStatus.IsClosed() {
			return nil, errors.NewForbiddenError("only staff can set this status")
		}
	}

	oldStatus := t.Status()
	if err := t.ChangeStatus(newStatus); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}

	// No transition happened (same status) - skip the write and the entry.
	if oldStatus == t.Status() {
		return &ChangeStatusResult{
			TicketID:  t.ID(),
			OldStatus: oldStatus.String(),
			NewStatus: oldStatus.String(),
		}, nil
	}

	entry, err := ticket.NewSystemEntry(
		t.ID(), cmd.UserID, vo.EntryStatusChange,
		oldStatus.String(), t.Status().String(), cmd.Note,
	)
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return uc.entryRepo.Save(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to change ticket status", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket status changed",
		"ticket_id", t.ID(),
		"from", oldStatus.String(),
		"to", t.Status().String())

	uc.notifier.NotifyTicketEvent("ticket_updated", t.ID(), cmd.Note)

	return &ChangeStatusResult{
		TicketID:  t.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: t.Status().String(),
	}, nil
}
