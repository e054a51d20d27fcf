package usecases

import (
	"fmt"
	"testing"
	"time"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/user"
	uservo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/authorization"
)

func newTestUser(t *testing.T, id uint, role authorization.UserRole, baseIDs ...uint) *user.User {
	t.Helper()

	email, err := uservo.NewEmail(fmt.Sprintf("user%d@example.com", id))
	if err != nil {
		t.Fatalf("failed to create email: %v", err)
	}

	now := time.Now().UTC()
	u, err := user.ReconstructUser(
		id, email, "Test User", "$2a$10$hash", role,
		baseIDs, true, 1, now, now, nil,
	)
	if err != nil {
		t.Fatalf("failed to reconstruct user: %v", err)
	}
	return u
}

func newTestTicket(t *testing.T, id uint, creatorID uint, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()

	now := time.Now().UTC()
	tk, err := ticket.ReconstructTicket(
		id, "TKT-2026-000001", "Printer offline", "The ward printer does not respond.",
		vo.PriorityMedium, status, 1, creatorID, nil, nil, 1, now, now, nil, nil,
	)
	if err != nil {
		t.Fatalf("failed to reconstruct ticket: %v", err)
	}
	return tk
}
