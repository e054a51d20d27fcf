package usecases

import (
	"context"
	"strings"
	"testing"

	"helpdesk/internal/application/ticket/testutil"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
)

func TestAssignTicket_Success(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	entryRepo := testutil.NewMockEntryRepository()
	notifier := testutil.NewMockTicketNotifier()

	userRepo.AddUser(newTestUser(t, 7, authorization.RoleHIS))
	tk := newTestTicket(t, 10, 1, vo.StatusOpen)
	ticketRepo.AddTicket(tk)

	uc := NewAssignTicketUseCase(
		ticketRepo, userRepo, entryRepo,
		testutil.NewMockTransactionManager(),
		notifier,
		testutil.NewMockLogger(),
	)

	result, err := uc.Execute(context.Background(), AssignTicketCommand{
		TicketID: 10, AssigneeID: 7, UserID: 5, UserRole: authorization.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.AssigneeID != 7 {
		t.Errorf("result.AssigneeID = %v, want 7", result.AssigneeID)
	}

	// Assigning an open ticket moves it to in_progress.
	if result.Status != "in_progress" {
		t.Errorf("result.Status = %v, want in_progress", result.Status)
	}
	if tk.AssigneeID() == nil || *tk.AssigneeID() != 7 {
		t.Error("ticket assignee not updated")
	}

	entries, _ := entryRepo.GetByTicketID(context.Background(), 10)
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}
	if entries[0].Type() != vo.EntryAssignment {
		t.Errorf("entry type = %v, want assignment", entries[0].Type())
	}
	if entries[0].OldValue() != "" || entries[0].NewValue() != "7" {
		t.Errorf("entry values = %q -> %q, want \"\" -> \"7\"", entries[0].OldValue(), entries[0].NewValue())
	}

	calls := notifier.GetCalls()
	if len(calls) != 1 || calls[0].EventType != "ticket_assigned" {
		t.Errorf("notifier calls = %v, want one ticket_assigned", calls)
	}
}

func TestAssignTicket_ReassignmentRecordsOldAssignee(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	entryRepo := testutil.NewMockEntryRepository()

	userRepo.AddUser(newTestUser(t, 7, authorization.RoleHIS))
	userRepo.AddUser(newTestUser(t, 8, authorization.RoleHIS))
	tk := newTestTicket(t, 10, 1, vo.StatusOpen)
	ticketRepo.AddTicket(tk)

	uc := NewAssignTicketUseCase(
		ticketRepo, userRepo, entryRepo,
		testutil.NewMockTransactionManager(),
		testutil.NewMockTicketNotifier(),
		testutil.NewMockLogger(),
	)

	ctx := context.Background()
	if _, err := uc.Execute(ctx, AssignTicketCommand{
		TicketID: 10, AssigneeID: 7, UserID: 5, UserRole: authorization.RoleAdmin,
	}); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := uc.Execute(ctx, AssignTicketCommand{
		TicketID: 10, AssigneeID: 8, UserID: 5, UserRole: authorization.RoleAdmin,
	}); err != nil {
		t.Fatalf("reassign: %v", err)
	}

	entries, _ := entryRepo.GetByTicketID(ctx, 10)
	if len(entries) != 2 {
		t.Fatalf("entry count = %d, want 2", len(entries))
	}
	if entries[1].OldValue() != "7" || entries[1].NewValue() != "8" {
		t.Errorf("reassignment entry = %q -> %q, want 7 -> 8", entries[1].OldValue(), entries[1].NewValue())
	}
}

func TestAssignTicket_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		setup   func(*testutil.MockTicketRepository, *testutil.MockUserRepository)
		command AssignTicketCommand
		wantErr string
	}{
		{
			name:  "non-staff caller",
			setup: func(tr *testutil.MockTicketRepository, ur *testutil.MockUserRepository) {},
			command: AssignTicketCommand{
				TicketID: 10, AssigneeID: 7, UserID: 1, UserRole: authorization.RoleUser,
			},
			wantErr: "only staff",
		},
		{
			name: "assignee not staff",
			setup: func(tr *testutil.MockTicketRepository, ur *testutil.MockUserRepository) {
				ur.AddUser(newTestUser(t, 7, authorization.RoleUser))
				tr.AddTicket(newTestTicket(t, 10, 1, vo.StatusOpen))
			},
			command: AssignTicketCommand{
				TicketID: 10, AssigneeID: 7, UserID: 5, UserRole: authorization.RoleAdmin,
			},
			wantErr: "must be a staff member",
		},
		{
			name:  "assignee not found",
			setup: func(tr *testutil.MockTicketRepository, ur *testutil.MockUserRepository) {},
			command: AssignTicketCommand{
				TicketID: 10, AssigneeID: 99, UserID: 5, UserRole: authorization.RoleAdmin,
			},
			wantErr: "assignee not found",
		},
		{
			name: "ticket not found",
			setup: func(tr *testutil.MockTicketRepository, ur *testutil.MockUserRepository) {
				ur.AddUser(newTestUser(t, 7, authorization.RoleHIS))
			},
			command: AssignTicketCommand{
				TicketID: 99, AssigneeID: 7, UserID: 5, UserRole: authorization.RoleAdmin,
			},
			wantErr: "ticket not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticketRepo := testutil.NewMockTicketRepository()
			userRepo := testutil.NewMockUserRepository()
			tc.setup(ticketRepo, userRepo)

			uc := NewAssignTicketUseCase(
				ticketRepo, userRepo,
				testutil.NewMockEntryRepository(),
				testutil.NewMockTransactionManager(),
				testutil.NewMockTicketNotifier(),
				testutil.NewMockLogger(),
			)

			result, err := uc.Execute(context.Background(), tc.command)
			if err == nil {
				t.Fatalf("Execute() expected error containing %q, got nil", tc.wantErr)
			}
			if result != nil {
				t.Errorf("Execute() expected nil result on error, got %v", result)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Execute() error = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestAssignTicket_DeactivatedAssignee(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()

	assignee := newTestUser(t, 7, authorization.RoleHIS)
	assignee.Deactivate()
	userRepo.AddUser(assignee)
	ticketRepo.AddTicket(newTestTicket(t, 10, 1, vo.StatusOpen))

	uc := NewAssignTicketUseCase(
		ticketRepo, userRepo,
		testutil.NewMockEntryRepository(),
		testutil.NewMockTransactionManager(),
		testutil.NewMockTicketNotifier(),
		testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), AssignTicketCommand{
		TicketID: 10, AssigneeID: 7, UserID: 5, UserRole: authorization.RoleAdmin,
	})
	if err == nil {
		t.Fatal("Execute() expected error for deactivated assignee, got nil")
	}
	if !strings.Contains(err.Error(), "deactivated") {
		t.Errorf("Execute() error = %v, want deactivated error", err)
	}
}
