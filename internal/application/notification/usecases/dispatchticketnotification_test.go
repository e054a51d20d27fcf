package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tickettestutil "helpdesk/internal/application/ticket/testutil"
	"helpdesk/internal/domain/base"
	"helpdesk/internal/domain/setting"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/user"
	uservo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/authorization"
)

// mockSettingsRepo serves canned recipient sets.
type mockSettingsRepo struct {
	telegramRecipients []setting.TelegramRecipient
	emailRecipients    []setting.EmailRecipient
	resolveError       error
}

func (m *mockSettingsRepo) Save(ctx context.Context, s *setting.Settings) error   { return nil }
func (m *mockSettingsRepo) Update(ctx context.Context, s *setting.Settings) error { return nil }

func (m *mockSettingsRepo) GetByUserID(ctx context.Context, userID uint) (*setting.Settings, error) {
	return nil, fmt.Errorf("settings not found")
}

func (m *mockSettingsRepo) GetByTelegramChatID(ctx context.Context, chatID int64) (*setting.Settings, error) {
	return nil, fmt.Errorf("settings not found")
}

func (m *mockSettingsRepo) ResolveTelegramRecipient(ctx context.Context, userID uint) (*setting.TelegramRecipient, error) {
	for _, r := range m.telegramRecipients {
		if r.UserID == userID {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *mockSettingsRepo) ResolveAllTelegramRecipients(ctx context.Context) ([]setting.TelegramRecipient, error) {
	if m.resolveError != nil {
		return nil, m.resolveError
	}
	return m.telegramRecipients, nil
}

func (m *mockSettingsRepo) ResolveAllEmailRecipients(ctx context.Context) ([]setting.EmailRecipient, error) {
	return m.emailRecipients, nil
}

// mockBaseRepo serves a single named base.
type mockBaseRepo struct {
	base *base.Base
}

func (m *mockBaseRepo) Save(ctx context.Context, b *base.Base) error   { return nil }
func (m *mockBaseRepo) Update(ctx context.Context, b *base.Base) error { return nil }
func (m *mockBaseRepo) Delete(ctx context.Context, baseID uint) error  { return nil }

func (m *mockBaseRepo) GetByID(ctx context.Context, baseID uint) (*base.Base, error) {
	if m.base == nil {
		return nil, fmt.Errorf("base not found")
	}
	return m.base, nil
}

func (m *mockBaseRepo) GetByCode(ctx context.Context, code string) (*base.Base, error) {
	return nil, fmt.Errorf("base not found")
}

func (m *mockBaseRepo) List(ctx context.Context, activeOnly bool) ([]*base.Base, error) {
	return nil, nil
}

func (m *mockBaseRepo) CountMembers(ctx context.Context, baseID uint) (int64, error) {
	return 0, nil
}

// mockTelegramSender records sends and fails selected chats.
type mockTelegramSender struct {
	mu        sync.Mutex
	sent      []int64
	texts     []string
	failChats map[int64]bool
}

func newMockTelegramSender() *mockTelegramSender {
	return &mockTelegramSender{failChats: make(map[int64]bool)}
}

func (m *mockTelegramSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failChats[chatID] {
		return errors.New("chat unreachable")
	}
	m.sent = append(m.sent, chatID)
	m.texts = append(m.texts, text)
	return nil
}

func (m *mockTelegramSender) sentChats() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int64, len(m.sent))
	copy(out, m.sent)
	return out
}

// mockEmailSender records sends and optionally fails everything.
type mockEmailSender struct {
	mu       sync.Mutex
	sent     []string
	subjects []string
	failAll  bool
}

func (m *mockEmailSender) SendTicketNotification(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failAll {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, to)
	m.subjects = append(m.subjects, subject)
	return nil
}

func (m *mockEmailSender) sentAddresses() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sent))
	copy(out, m.sent)
	return out
}

func newDispatchFixture(t *testing.T) (*tickettestutil.MockTicketRepository, *tickettestutil.MockUserRepository, *mockBaseRepo) {
	t.Helper()

	ticketRepo := tickettestutil.NewMockTicketRepository()
	userRepo := tickettestutil.NewMockUserRepository()

	now := time.Now().UTC()
	email, _ := uservo.NewEmail("creator@example.com")
	creator, err := user.ReconstructUser(1, email, "Alice Creator", "$2a$10$hash",
		authorization.RoleUser, []uint{1}, true, 1, now, now, nil)
	if err != nil {
		t.Fatalf("reconstruct creator: %v", err)
	}
	userRepo.AddUser(creator)

	tk, err := ticket.ReconstructTicket(
		10, "TKT-2026-000010", "Printer offline", "The ward printer does not respond.",
		vo.PriorityHigh, vo.StatusOpen, 1, 1, nil, nil, 1, now, now, nil, nil,
	)
	if err != nil {
		t.Fatalf("reconstruct ticket: %v", err)
	}
	ticketRepo.AddTicket(tk)

	b, err := base.ReconstructBase(1, "North Ward", "NW", "", true, 1, now, now)
	if err != nil {
		t.Fatalf("reconstruct base: %v", err)
	}

	return ticketRepo, userRepo, &mockBaseRepo{base: b}
}

func TestDispatchTicketNotification_FanOutCounts(t *testing.T) {
	ticketRepo, userRepo, baseRepo := newDispatchFixture(t)

	settingsRepo := &mockSettingsRepo{
		telegramRecipients: []setting.TelegramRecipient{
			{UserID: 1, ChatID: 100},
			{UserID: 2, ChatID: 200},
			{UserID: 3, ChatID: 300},
		},
	}
	sender := newMockTelegramSender()
	sender.failChats[200] = true

	uc := NewDispatchTicketNotificationUseCase(
		ticketRepo, userRepo, baseRepo, settingsRepo,
		sender, nil, "https://helpdesk.example.com",
		tickettestutil.NewMockLogger(),
	)

	result, err := uc.Execute(context.Background(), DispatchTicketNotificationCommand{
		Type: EventTicketCreated, TicketID: 10,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	// A failed chat is counted, not propagated.
	if !result.Success {
		t.Error("result.Success = false, want true")
	}
	if result.Sent != 2 || result.Failed != 1 || result.Total != 3 {
		t.Errorf("result = sent %d failed %d total %d, want 2/1/3", result.Sent, result.Failed, result.Total)
	}
	if got := sender.sentChats(); len(got) != 2 {
		t.Errorf("sent chats = %v, want 2 successful sends", got)
	}
}

func TestDispatchTicketNotification_EmptyRecipients(t *testing.T) {
	ticketRepo, userRepo, baseRepo := newDispatchFixture(t)

	sender := newMockTelegramSender()
	uc := NewDispatchTicketNotificationUseCase(
		ticketRepo, userRepo, baseRepo, &mockSettingsRepo{},
		sender, nil, "https://helpdesk.example.com",
		tickettestutil.NewMockLogger(),
	)

	result, err := uc.Execute(context.Background(), DispatchTicketNotificationCommand{
		Type: EventTicketUpdated, TicketID: 10,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	// Nobody deliverable is a success with zero sends, not an error.
	if !result.Success {
		t.Error("result.Success = false, want true")
	}
	if result.Sent != 0 || result.Failed != 0 || result.Total != 0 {
		t.Errorf("result = %+v, want all zeros", result)
	}
	if len(sender.sentChats()) != 0 {
		t.Error("no sends expected")
	}
}

func TestDispatchTicketNotification_ExplicitChatIDs(t *testing.T) {
	ticketRepo, userRepo, baseRepo := newDispatchFixture(t)

	// Resolver would fail; explicit chat ids must bypass it entirely.
	settingsRepo := &mockSettingsRepo{resolveError: errors.New("resolver down")}
	sender := newMockTelegramSender()

	uc := NewDispatchTicketNotificationUseCase(
		ticketRepo, userRepo, baseRepo, settingsRepo,
		sender, nil, "https://helpdesk.example.com",
		tickettestutil.NewMockLogger(),
	)

	result, err := uc.Execute(context.Background(), DispatchTicketNotificationCommand{
		Type: EventTicketAssigned, TicketID: 10, ChatIDs: []int64{42, 43},
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Total != 2 || result.Sent != 2 {
		t.Errorf("result = %+v, want 2 sends", result)
	}
}

func TestDispatchTicketNotification_TicketLookupFatal(t *testing.T) {
	_, userRepo, baseRepo := newDispatchFixture(t)

	uc := NewDispatchTicketNotificationUseCase(
		tickettestutil.NewMockTicketRepository(), userRepo, baseRepo,
		&mockSettingsRepo{telegramRecipients: []setting.TelegramRecipient{{UserID: 1, ChatID: 100}}},
		newMockTelegramSender(), nil, "https://helpdesk.example.com",
		tickettestutil.NewMockLogger(),
	)

	result, err := uc.Execute(context.Background(), DispatchTicketNotificationCommand{
		Type: EventTicketCreated, TicketID: 99,
	})
	if err == nil {
		t.Fatal("Execute() expected error for missing ticket, got nil")
	}
	if result != nil {
		t.Errorf("Execute() expected nil result, got %+v", result)
	}
}

func TestDispatchTicketNotification_InvalidType(t *testing.T) {
	ticketRepo, userRepo, baseRepo := newDispatchFixture(t)

	uc := NewDispatchTicketNotificationUseCase(
		ticketRepo, userRepo, baseRepo, &mockSettingsRepo{},
		newMockTelegramSender(), nil, "https://helpdesk.example.com",
		tickettestutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), DispatchTicketNotificationCommand{
		Type: "ticket_exploded", TicketID: 10,
	})
	if err == nil {
		t.Fatal("Execute() expected error for unknown type, got nil")
	}
	if !strings.Contains(err.Error(), "unknown notification type") {
		t.Errorf("Execute() error = %v", err)
	}
}

func TestDispatchTicketNotification_MessageContent(t *testing.T) {
	ticketRepo, userRepo, baseRepo := newDispatchFixture(t)

	settingsRepo := &mockSettingsRepo{
		telegramRecipients: []setting.TelegramRecipient{{UserID: 1, ChatID: 100}},
	}
	sender := newMockTelegramSender()

	uc := NewDispatchTicketNotificationUseCase(
		ticketRepo, userRepo, baseRepo, settingsRepo,
		sender, nil, "https://helpdesk.example.com",
		tickettestutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), DispatchTicketNotificationCommand{
		Type: EventTicketCommented, TicketID: 10, Message: "Swapped the <toner>",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if len(sender.texts) != 1 {
		t.Fatalf("sent texts = %d, want 1", len(sender.texts))
	}
	text := sender.texts[0]

	for _, want := range []string{
		"TKT-2026-000010",
		"Printer offline",
		"Alice Creator",
		"North Ward",
		"https://helpdesk.example.com/tickets/10",
		"Swapped the &lt;toner&gt;", // HTML-escaped free text
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered message missing %q:\n%s", want, text)
		}
	}
}

func TestDispatchTicketNotification_EmailChannelIsolated(t *testing.T) {
	ticketRepo, userRepo, baseRepo := newDispatchFixture(t)

	settingsRepo := &mockSettingsRepo{
		telegramRecipients: []setting.TelegramRecipient{{UserID: 1, ChatID: 100}},
		emailRecipients: []setting.EmailRecipient{
			{UserID: 1, Email: "creator@example.com"},
			{UserID: 2, Email: "staff@example.com"},
		},
	}
	sender := newMockTelegramSender()
	emailSender := &mockEmailSender{failAll: true}

	uc := NewDispatchTicketNotificationUseCase(
		ticketRepo, userRepo, baseRepo, settingsRepo,
		sender, emailSender, "https://helpdesk.example.com",
		tickettestutil.NewMockLogger(),
	)

	result, err := uc.Execute(context.Background(), DispatchTicketNotificationCommand{
		Type: EventTicketCreated, TicketID: 10,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	// Email failures never leak into the telegram-scoped contract.
	if result.Sent != 1 || result.Failed != 0 || result.Total != 1 {
		t.Errorf("result = %+v, want 1/0/1", result)
	}
}

func TestDispatchTicketNotification_EmailDelivery(t *testing.T) {
	ticketRepo, userRepo, baseRepo := newDispatchFixture(t)

	settingsRepo := &mockSettingsRepo{
		emailRecipients: []setting.EmailRecipient{{UserID: 1, Email: "creator@example.com"}},
	}
	emailSender := &mockEmailSender{}

	uc := NewDispatchTicketNotificationUseCase(
		ticketRepo, userRepo, baseRepo, settingsRepo,
		newMockTelegramSender(), emailSender, "https://helpdesk.example.com",
		tickettestutil.NewMockLogger(),
	)

	if _, err := uc.Execute(context.Background(), DispatchTicketNotificationCommand{
		Type: EventTicketCreated, TicketID: 10,
	}); err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if got := emailSender.sentAddresses(); len(got) != 1 || got[0] != "creator@example.com" {
		t.Errorf("email sends = %v, want [creator@example.com]", got)
	}
	if !strings.Contains(emailSender.subjects[0], "TKT-2026-000010") {
		t.Errorf("subject = %q, want ticket number", emailSender.subjects[0])
	}
}
