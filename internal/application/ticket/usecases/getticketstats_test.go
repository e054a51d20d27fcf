package usecases

import (
	"context"
	"testing"

	"helpdesk/internal/application/ticket/testutil"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
)

func TestGetTicketStats_AdminOnly(t *testing.T) {
	uc := NewGetTicketStatsUseCase(testutil.NewMockTicketRepository(), testutil.NewMockLogger())

	for _, role := range []authorization.UserRole{authorization.RoleHIS, authorization.RoleUser, authorization.RoleViewer} {
		if _, err := uc.Execute(context.Background(), GetTicketStatsQuery{UserRole: role}); err == nil {
			t.Errorf("Execute() with role %s expected forbidden error, got nil", role)
		}
	}
}

func TestGetTicketStats_Counts(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	ticketRepo.AddTicket(newTestTicket(t, 1, 1, vo.StatusOpen))
	ticketRepo.AddTicket(newTestTicket(t, 2, 1, vo.StatusOpen))
	ticketRepo.AddTicket(newTestTicket(t, 3, 1, vo.StatusResolved))

	uc := NewGetTicketStatsUseCase(ticketRepo, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), GetTicketStatsQuery{UserRole: authorization.RoleAdmin})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Total != 3 {
		t.Errorf("result.Total = %d, want 3", result.Total)
	}
	if result.ByStatus["open"] != 2 {
		t.Errorf("ByStatus[open] = %d, want 2", result.ByStatus["open"])
	}
	if result.ByStatus["resolved"] != 1 {
		t.Errorf("ByStatus[resolved] = %d, want 1", result.ByStatus["resolved"])
	}
	if result.ByPriority["medium"] != 3 {
		t.Errorf("ByPriority[medium] = %d, want 3", result.ByPriority["medium"])
	}
}
