package repository

import (
	"context"
	"fmt"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/id"
)

const numberGenAttempts = 3

// TicketNumberGenerator issues unique human-facing ticket numbers.
// Collisions on the crypto-random part are vanishingly rare; the retry loop
// covers them anyway since the number carries a unique index.
type TicketNumberGenerator struct {
	ticketRepo ticket.TicketRepository
}

func NewTicketNumberGenerator(ticketRepo ticket.TicketRepository) *TicketNumberGenerator {
	return &TicketNumberGenerator{ticketRepo: ticketRepo}
}

func (g *TicketNumberGenerator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < numberGenAttempts; i++ {
		number, err := id.NewTicketNumber()
		if err != nil {
			return "", fmt.Errorf("failed to generate ticket number: %w", err)
		}

		if _, err := g.ticketRepo.GetByNumber(ctx, number); err != nil {
			return number, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique ticket number after %d attempts", numberGenAttempts)
}
