package usecases

import (
	"context"
	"strconv"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type AssignTicketCommand struct {
	TicketID   uint
	AssigneeID uint
	UserID     uint
	UserRole   authorization.UserRole
}

type AssignTicketResult struct {
	TicketID   uint
	AssigneeID uint
	Status     string
}

type AssignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.UserRepository
	entryRepo  ticket.EntryRepository
	txManager  TransactionManager
	notifier   TicketNotifier
	logger     logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	entryRepo ticket.EntryRepository,
	txManager TransactionManager,
	notifier TicketNotifier,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		entryRepo:  entryRepo,
		txManager:  txManager,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.AssigneeID == 0 {
		return nil, errors.NewValidationError("assignee ID is required")
	}
	if !cmd.UserRole.CanManageTickets() {
		return nil, errors.NewForbiddenError("only staff can assign tickets")
	}

	assignee, err := uc.userRepo.GetByID(ctx, cmd.AssigneeID)
	if err != nil {
		return nil, errors.NewNotFoundError("assignee not found")
	}
	// Tickets can only be assigned to staff.
	if !assignee.Role().CanManageTickets() {
		return nil, errors.NewValidationError("assignee must be a staff member")
	}
	if !assignee.IsActive() {
		return nil, errors.NewValidationError("assignee is deactivated")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	var oldAssignee string
	if t.AssigneeID() != nil {
		oldAssignee = strconv.FormatUint(uint64(*t.AssigneeID()), 10)
	}

	if err := t.AssignTo(cmd.AssigneeID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := ticket.NewSystemEntry(
		t.ID(), cmd.UserID, vo.EntryAssignment,
		oldAssignee, strconv.FormatUint(uint64(cmd.AssigneeID), 10), "",
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
		uc.logger.Errorw("failed to assign ticket", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket assigned",
		"ticket_id", t.ID(),
		"assignee_id", cmd.AssigneeID)

	uc.notifier.NotifyTicketEvent("ticket_assigned", t.ID(), "")

	return &AssignTicketResult{
		TicketID:   t.ID(),
		AssigneeID: cmd.AssigneeID,
		Status:     t.Status().String(),
	}, nil
}
