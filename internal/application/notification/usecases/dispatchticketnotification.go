package usecases

import (
	"context"
	"fmt"
	"sync"

	"helpdesk/internal/domain/base"
	"helpdesk/internal/domain/setting"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type DispatchTicketNotificationCommand struct {
	Type     string
	TicketID uint
	Message  string
	// ChatIDs overrides recipient resolution. Empty means "all deliverable
	// telegram users".
	ChatIDs []int64
}

type DispatchTicketNotificationResult struct {
	Success bool `json:"success"`
	Sent    int  `json:"sent"`
	Failed  int  `json:"failed"`
	Total   int  `json:"total"`
}

// DispatchTicketNotificationUseCase fans a ticket event out to all deliverable
// recipients. Each send is isolated: a failed chat is counted, never
// propagated, and there are no retries. Only the ticket lookup is fatal.
type DispatchTicketNotificationUseCase struct {
	ticketRepo     ticket.TicketRepository
	userRepo       user.UserRepository
	baseRepo       base.BaseRepository
	settingsRepo   setting.SettingsRepository
	telegramSender TelegramSender
	emailSender    EmailSender
	frontendURL    string
	logger         logger.Interface
}

func NewDispatchTicketNotificationUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	baseRepo base.BaseRepository,
	settingsRepo setting.SettingsRepository,
	telegramSender TelegramSender,
	emailSender EmailSender,
	frontendURL string,
	logger logger.Interface,
) *DispatchTicketNotificationUseCase {
	return &DispatchTicketNotificationUseCase{
		ticketRepo:     ticketRepo,
		userRepo:       userRepo,
		baseRepo:       baseRepo,
		settingsRepo:   settingsRepo,
		telegramSender: telegramSender,
		emailSender:    emailSender,
		frontendURL:    frontendURL,
		logger:         logger,
	}
}

func (uc *DispatchTicketNotificationUseCase) Execute(ctx context.Context, cmd DispatchTicketNotificationCommand) (*DispatchTicketNotificationResult, error) {
	if !isValidEventType(cmd.Type) {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown notification type: %s", cmd.Type))
	}
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	// The ticket is the notification subject; without it there is nothing to
	// render and the whole request fails.
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket for notification", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	summary := uc.buildSummary(ctx, t)

	chatIDs := cmd.ChatIDs
	if len(chatIDs) == 0 {
		recipients, err := uc.settingsRepo.ResolveAllTelegramRecipients(ctx)
		if err != nil {
			uc.logger.Errorw("failed to resolve telegram recipients", "error", err)
			return nil, errors.NewInternalError("failed to resolve recipients")
		}
		for _, r := range recipients {
			chatIDs = append(chatIDs, r.ChatID)
		}
	}

	// The email channel rides along on every dispatch; its counts only show
	// up in logs, the HTTP contract stays telegram-scoped.
	uc.dispatchEmail(ctx, cmd.Type, summary, cmd.Message)

	if len(chatIDs) == 0 {
		uc.logger.Infow("no telegram recipients for notification", "type", cmd.Type, "ticket_id", cmd.TicketID)
		return &DispatchTicketNotificationResult{Success: true}, nil
	}
	if uc.telegramSender == nil {
		uc.logger.Warnw("telegram sender not configured, skipping fan-out",
			"type", cmd.Type, "ticket_id", cmd.TicketID, "recipients", len(chatIDs))
		return &DispatchTicketNotificationResult{Success: true}, nil
	}

	text := renderTelegram(cmd.Type, summary, cmd.Message)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		sent   int
		failed int
	)

	for _, chatID := range chatIDs {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()

			if err := uc.telegramSender.SendMessage(ctx, chatID, text); err != nil {
				uc.logger.Warnw("telegram send failed",
					"chat_id", chatID,
					"ticket_id", cmd.TicketID,
					"error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			mu.Lock()
			sent++
			mu.Unlock()
		}(chatID)
	}

	wg.Wait()

	uc.logger.Infow("notification dispatched",
		"type", cmd.Type,
		"ticket_id", cmd.TicketID,
		"sent", sent,
		"failed", failed,
		"total", len(chatIDs))

	return &DispatchTicketNotificationResult{
		Success: true,
		Sent:    sent,
		Failed:  failed,
		Total:   len(chatIDs),
	}, nil
}

// buildSummary assembles display fields. Everything but the ticket itself is
// best effort: a missing user or base degrades the header, not the dispatch.
func (uc *DispatchTicketNotificationUseCase) buildSummary(ctx context.Context, t *ticket.Ticket) ticketSummary {
	s := ticketSummary{
		Number:   t.Number(),
		Title:    t.Title(),
		Status:   t.Status().String(),
		Priority: t.Priority().String(),
		Link:     fmt.Sprintf("%s/tickets/%d", uc.frontendURL, t.ID()),
	}

	if creator, err := uc.userRepo.GetByID(ctx, t.CreatorID()); err == nil {
		s.CreatorName = creator.Name()
	} else {
		uc.logger.Warnw("failed to load ticket creator", "user_id", t.CreatorID(), "error", err)
	}

	if t.AssigneeID() != nil {
		if assignee, err := uc.userRepo.GetByID(ctx, *t.AssigneeID()); err == nil {
			s.AssigneeName = assignee.Name()
		} else {
			uc.logger.Warnw("failed to load ticket assignee", "user_id", *t.AssigneeID(), "error", err)
		}
	}

	if b, err := uc.baseRepo.GetByID(ctx, t.BaseID()); err == nil {
		s.BaseName = b.Name()
	}

	return s
}

// dispatchEmail fans the same notification out to email-enabled users with
// identical isolation semantics. A nil sender disables the channel.
func (uc *DispatchTicketNotificationUseCase) dispatchEmail(ctx context.Context, eventType string, summary ticketSummary, message string) {
	if uc.emailSender == nil {
		return
	}

	recipients, err := uc.settingsRepo.ResolveAllEmailRecipients(ctx)
	if err != nil {
		uc.logger.Warnw("failed to resolve email recipients", "error", err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	subject, body := renderEmail(eventType, summary, message)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		sent   int
		failed int
	)

	for _, r := range recipients {
		wg.Add(1)
		go func(r setting.EmailRecipient) {
			defer wg.Done()

			if err := uc.emailSender.SendTicketNotification(r.Email, subject, body); err != nil {
				uc.logger.Warnw("email send failed", "user_id", r.UserID, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			mu.Lock()
			sent++
			mu.Unlock()
		}(r)
	}

	wg.Wait()

	uc.logger.Infow("email notifications dispatched",
		"type", eventType,
		"sent", sent,
		"failed", failed,
		"total", len(recipients))
}
