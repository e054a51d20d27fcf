package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"helpdesk/internal/application/ticket/testutil"
	"helpdesk/internal/shared/authorization"
)

func TestCreateTicket_Success(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	numberGen := testutil.NewMockNumberGenerator()
	notifier := testutil.NewMockTicketNotifier()
	logger := testutil.NewMockLogger()

	userRepo.AddUser(newTestUser(t, 1, authorization.RoleUser, 1))

	uc := NewCreateTicketUseCase(ticketRepo, userRepo, numberGen, notifier, logger)

	cmd := CreateTicketCommand{
		Title:       "Printer offline",
		Description: "The ward printer does not respond.",
		Priority:    "high",
		BaseID:      1,
		CreatorID:   1,
		Attachments: []string{"https://files.example.com/printer.jpg"},
	}

	result, err := uc.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.TicketID == 0 {
		t.Error("result.TicketID = 0, want non-zero")
	}
	if result.Number == "" {
		t.Error("result.Number is empty")
	}
	if result.Status != "open" {
		t.Errorf("result.Status = %v, want open", result.Status)
	}

	saved, err := ticketRepo.GetByID(context.Background(), result.TicketID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(saved.Attachments()) != 1 {
		t.Errorf("attachment count = %d, want 1", len(saved.Attachments()))
	}

	calls := notifier.GetCalls()
	if len(calls) != 1 {
		t.Fatalf("notifier calls = %d, want 1", len(calls))
	}
	if calls[0].EventType != "ticket_created" {
		t.Errorf("notifier event = %v, want ticket_created", calls[0].EventType)
	}
	if calls[0].TicketID != result.TicketID {
		t.Errorf("notifier ticket ID = %v, want %v", calls[0].TicketID, result.TicketID)
	}
}

func TestCreateTicket_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		command CreateTicketCommand
		wantErr string
	}{
		{
			name: "missing title",
			command: CreateTicketCommand{
				Description: "desc", Priority: "low", BaseID: 1, CreatorID: 1,
			},
			wantErr: "title is required",
		},
		{
			name: "title too long",
			command: CreateTicketCommand{
				Title: strings.Repeat("a", 201), Description: "desc",
				Priority: "low", BaseID: 1, CreatorID: 1,
			},
			wantErr: "title exceeds maximum length",
		},
		{
			name: "missing description",
			command: CreateTicketCommand{
				Title: "title", Priority: "low", BaseID: 1, CreatorID: 1,
			},
			wantErr: "description is required",
		},
		{
			name: "description too long",
			command: CreateTicketCommand{
				Title: "title", Description: strings.Repeat("a", 5001),
				Priority: "low", BaseID: 1, CreatorID: 1,
			},
			wantErr: "description exceeds maximum length",
		},
		{
			name: "missing base",
			command: CreateTicketCommand{
				Title: "title", Description: "desc", Priority: "low", CreatorID: 1,
			},
			wantErr: "base ID is required",
		},
		{
			name: "invalid priority",
			command: CreateTicketCommand{
				Title: "title", Description: "desc", Priority: "urgent",
				BaseID: 1, CreatorID: 1,
			},
			wantErr: "invalid priority",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticketRepo := testutil.NewMockTicketRepository()
			userRepo := testutil.NewMockUserRepository()
			userRepo.AddUser(newTestUser(t, 1, authorization.RoleUser, 1))

			uc := NewCreateTicketUseCase(
				ticketRepo, userRepo,
				testutil.NewMockNumberGenerator(),
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

func TestCreateTicket_ViewerRejected(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	userRepo.AddUser(newTestUser(t, 2, authorization.RoleViewer, 1))

	uc := NewCreateTicketUseCase(
		ticketRepo, userRepo,
		testutil.NewMockNumberGenerator(),
		testutil.NewMockTicketNotifier(),
		testutil.NewMockLogger(),
	)

	cmd := CreateTicketCommand{
		Title: "title", Description: "desc", Priority: "low",
		BaseID: 1, CreatorID: 2,
	}

	_, err := uc.Execute(context.Background(), cmd)
	if err == nil {
		t.Fatal("Execute() expected error for viewer, got nil")
	}
	if !strings.Contains(err.Error(), "cannot create tickets") {
		t.Errorf("Execute() error = %v, want role error", err)
	}
}

func TestCreateTicket_BaseMembership(t *testing.T) {
	testCases := []struct {
		name    string
		role    authorization.UserRole
		baseIDs []uint
		baseID  uint
		wantErr bool
	}{
		{name: "member of base", role: authorization.RoleUser, baseIDs: []uint{1}, baseID: 1},
		{name: "not a member", role: authorization.RoleUser, baseIDs: []uint{2}, baseID: 1, wantErr: true},
		{name: "staff bypasses membership", role: authorization.RoleHIS, baseIDs: nil, baseID: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ticketRepo := testutil.NewMockTicketRepository()
			userRepo := testutil.NewMockUserRepository()
			userRepo.AddUser(newTestUser(t, 1, tc.role, tc.baseIDs...))

			uc := NewCreateTicketUseCase(
				ticketRepo, userRepo,
				testutil.NewMockNumberGenerator(),
				testutil.NewMockTicketNotifier(),
				testutil.NewMockLogger(),
			)

			cmd := CreateTicketCommand{
				Title: "title", Description: "desc", Priority: "low",
				BaseID: tc.baseID, CreatorID: 1,
			}

			_, err := uc.Execute(context.Background(), cmd)
			if tc.wantErr && err == nil {
				t.Fatal("Execute() expected membership error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("Execute() unexpected error = %v", err)
			}
		})
	}
}

func TestCreateTicket_NumberGeneratorFailure(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	userRepo.AddUser(newTestUser(t, 1, authorization.RoleUser, 1))

	numberGen := testutil.NewMockNumberGenerator()
	numberGen.SetGenerateError(errors.New("sequence unavailable"))
	notifier := testutil.NewMockTicketNotifier()

	uc := NewCreateTicketUseCase(ticketRepo, userRepo, numberGen, notifier, testutil.NewMockLogger())

	cmd := CreateTicketCommand{
		Title: "title", Description: "desc", Priority: "low",
		BaseID: 1, CreatorID: 1,
	}

	_, err := uc.Execute(context.Background(), cmd)
	if err == nil {
		t.Fatal("Execute() expected error, got nil")
	}
	if len(notifier.GetCalls()) != 0 {
		t.Error("notifier should not be called when creation fails")
	}
}
