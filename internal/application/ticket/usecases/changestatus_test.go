package usecases

import (
	"context"
	"strings"
	"testing"

	"helpdesk/internal/application/ticket/testutil"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
)

func TestChangeStatus_StaffTransitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    vo.TicketStatus
		to      string
		wantErr bool
	}{
		{name: "open to in_progress", from: vo.StatusOpen, to: "in_progress"},
		{name: "in_progress to resolved", from: vo.StatusInProgress, to: "resolved"},
		{name: "resolved to closed", from: vo.StatusResolved, to: "closed"},
		{name: "resolved reopened", from: vo.StatusResolved, to: "in_progress"},
		{name: "closed reopened", from: vo.StatusClosed, to: "in_progress"},
		{name: "open to closed", from: vo.StatusOpen, to: "closed"},
		{name: "closed to resolved rejected", from: vo.StatusClosed, to: "resolved", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticketRepo := testutil.NewMockTicketRepository()
			entryRepo := testutil.NewMockEntryRepository()
			notifier := testutil.NewMockTicketNotifier()

			ticketRepo.AddTicket(newTestTicket(t, 10, 1, tc.from))

			uc := NewChangeStatusUseCase(
				ticketRepo, entryRepo,
				testutil.NewMockTransactionManager(),
				notifier,
				testutil.NewMockLogger(),
			)

			cmd := ChangeStatusCommand{
				TicketID: 10,
				Status:   tc.to,
				UserID:   5,
				UserRole: authorization.RoleAdmin,
			}

			result, err := uc.Execute(context.Background(), cmd)
			if tc.wantErr {
				if err == nil {
					t.Fatal("Execute() expected transition error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() unexpected error = %v", err)
			}
			if result.NewStatus != tc.to {
				t.Errorf("result.NewStatus = %v, want %v", result.NewStatus, tc.to)
			}

			entries, _ := entryRepo.GetByTicketID(context.Background(), 10)
			if len(entries) != 1 {
				t.Fatalf("entry count = %d, want 1", len(entries))
			}
			if entries[0].Type() != vo.EntryStatusChange {
				t.Errorf("entry type = %v, want status_change", entries[0].Type())
			}
			if entries[0].OldValue() != tc.from.String() || entries[0].NewValue() != tc.to {
				t.Errorf("entry values = %v -> %v, want %v -> %v",
					entries[0].OldValue(), entries[0].NewValue(), tc.from, tc.to)
			}

			if calls := notifier.GetCalls(); len(calls) != 1 || calls[0].EventType != "ticket_updated" {
				t.Errorf("notifier calls = %v, want one ticket_updated", calls)
			}
		})
	}
}

func TestChangeStatus_SameStatusNoop(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	entryRepo := testutil.NewMockEntryRepository()
	notifier := testutil.NewMockTicketNotifier()

	tk := newTestTicket(t, 10, 1, vo.StatusOpen)
	ticketRepo.AddTicket(tk)
	versionBefore := tk.Version()

	uc := NewChangeStatusUseCase(
		ticketRepo, entryRepo,
		testutil.NewMockTransactionManager(),
		notifier,
		testutil.NewMockLogger(),
	)

	result, err := uc.Execute(context.Background(), ChangeStatusCommand{
		TicketID: 10, Status: "open", UserID: 5, UserRole: authorization.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.OldStatus != result.NewStatus {
		t.Errorf("noop should keep status, got %v -> %v", result.OldStatus, result.NewStatus)
	}
	if tk.Version() != versionBefore {
		t.Errorf("version = %d, want unchanged %d", tk.Version(), versionBefore)
	}

	entries, _ := entryRepo.GetByTicketID(context.Background(), 10)
	if len(entries) != 0 {
		t.Errorf("entry count = %d, want 0 for noop", len(entries))
	}
	if len(notifier.GetCalls()) != 0 {
		t.Error("notifier should not be called for noop")
	}
}

func TestChangeStatus_ReopenClearsTimestamps(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	entryRepo := testutil.NewMockEntryRepository()

	tk := newTestTicket(t, 10, 1, vo.StatusInProgress)
	ticketRepo.AddTicket(tk)

	uc := NewChangeStatusUseCase(
		ticketRepo, entryRepo,
		testutil.NewMockTransactionManager(),
		testutil.NewMockTicketNotifier(),
		testutil.NewMockLogger(),
	)

	ctx := context.Background()
	admin := ChangeStatusCommand{TicketID: 10, UserID: 5, UserRole: authorization.RoleAdmin}

	admin.Status = "resolved"
	if _, err := uc.Execute(ctx, admin); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if tk.ResolvedAt() == nil {
		t.Fatal("resolvedAt not set after resolve")
	}

	admin.Status = "in_progress"
	if _, err := uc.Execute(ctx, admin); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if tk.ResolvedAt() != nil {
		t.Error("resolvedAt should be cleared on reopen")
	}
	if tk.ClosedAt() != nil {
		t.Error("closedAt should be nil after reopen")
	}
}

func TestChangeStatus_CreatorPermissions(t *testing.T) {
	testCases := []struct {
		name    string
		userID  uint
		status  string
		wantErr string
	}{
		{name: "creator resolves own ticket", userID: 1, status: "resolved"},
		{name: "creator closes own ticket", userID: 1, status: "closed"},
		{name: "creator cannot set in_progress", userID: 1, status: "in_progress", wantErr: "only staff"},
		{name: "stranger has no access", userID: 9, status: "resolved", wantErr: "no access"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticketRepo := testutil.NewMockTicketRepository()
			ticketRepo.AddTicket(newTestTicket(t, 10, 1, vo.StatusOpen))

			uc := NewChangeStatusUseCase(
				ticketRepo,
				testutil.NewMockEntryRepository(),
				testutil.NewMockTransactionManager(),
				testutil.NewMockTicketNotifier(),
				testutil.NewMockLogger(),
			)

			_, err := uc.Execute(context.Background(), ChangeStatusCommand{
				TicketID: 10, Status: tc.status, UserID: tc.userID, UserRole: authorization.RoleUser,
			})
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Execute() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Execute() expected error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Execute() error = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestChangeStatus_TicketNotFound(t *testing.T) {
	uc := NewChangeStatusUseCase(
		testutil.NewMockTicketRepository(),
		testutil.NewMockEntryRepository(),
		testutil.NewMockTransactionManager(),
		testutil.NewMockTicketNotifier(),
		testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{
		TicketID: 99, Status: "closed", UserID: 5, UserRole: authorization.RoleAdmin,
	})
	if err == nil {
		t.Fatal("Execute() expected not found error, got nil")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Execute() error = %v, want not found", err)
	}
}
