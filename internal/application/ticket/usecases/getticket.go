package usecases

import (
	"context"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

type GetTicketQuery struct {
	TicketID uint
	UserID   uint
	UserRole authorization.UserRole
	// RenderHTML asks for sanitized HTML of the markdown description and
	// comment bodies alongside the raw text.
	RenderHTML bool
}

type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	markdown   markdown.Service
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	markdownSvc markdown.Service,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		markdown:   markdownSvc,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Warnw("ticket not found", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if !t.CanBeViewedBy(query.UserID, query.UserRole) {
		return nil, errors.NewForbiddenError("no access to this ticket")
	}

	result := dto.ToTicketDTO(t)

	if query.RenderHTML {
		html, err := uc.markdown.ToHTMLSanitized(t.Description())
		if err != nil {
			uc.logger.Errorw("failed to render ticket description", "ticket_id", t.ID(), "error", err)
		} else {
			result.DescriptionHTML = html
		}

		for i := range result.Entries {
			if result.Entries[i].Content == "" {
				continue
			}
			html, err := uc.markdown.ToHTMLSanitized(result.Entries[i].Content)
			if err != nil {
				uc.logger.Errorw("failed to render entry content", "entry_id", result.Entries[i].ID, "error", err)
				continue
			}
			result.Entries[i].ContentHTML = html
		}
	}

	return result, nil
}
