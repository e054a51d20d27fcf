// Package testutil provides mock implementations for testing the ticket application layer.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/logger"
)

// MockTicketRepository is an in-memory implementation of ticket.TicketRepository.
type MockTicketRepository struct {
	mu              sync.RWMutex
	tickets         map[uint]*ticket.Ticket
	ticketsByNumber map[string]*ticket.Ticket
	nextID          uint

	saveError   error
	getError    error
	updateError error
	listError   error
	countError  error
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{
		tickets:         make(map[uint]*ticket.Ticket),
		ticketsByNumber: make(map[string]*ticket.Ticket),
	}
}

func (m *MockTicketRepository) SetSaveError(err error)   { m.saveError = err }
func (m *MockTicketRepository) SetGetError(err error)    { m.getError = err }
func (m *MockTicketRepository) SetUpdateError(err error) { m.updateError = err }
func (m *MockTicketRepository) SetListError(err error)   { m.listError = err }
func (m *MockTicketRepository) SetCountError(err error)  { m.countError = err }

// AddTicket registers an already-reconstructed ticket.
func (m *MockTicketRepository) AddTicket(t *ticket.Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[t.ID()] = t
	m.ticketsByNumber[t.Number()] = t
	if t.ID() > m.nextID {
		m.nextID = t.ID()
	}
}

func (m *MockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}

	if t.ID() == 0 {
		m.nextID++
		if err := t.SetID(m.nextID); err != nil {
			return err
		}
	}

	m.tickets[t.ID()] = t
	m.ticketsByNumber[t.Number()] = t
	return nil
}

func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}

	if _, exists := m.tickets[t.ID()]; !exists {
		return fmt.Errorf("ticket not found")
	}

	m.tickets[t.ID()] = t
	m.ticketsByNumber[t.Number()] = t
	return nil
}

func (m *MockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, exists := m.tickets[ticketID]
	if !exists {
		return fmt.Errorf("ticket not found")
	}

	delete(m.tickets, ticketID)
	delete(m.ticketsByNumber, t.Number())
	return nil
}

func (m *MockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	t, exists := m.tickets[ticketID]
	if !exists {
		return nil, fmt.Errorf("ticket not found")
	}
	return t, nil
}

func (m *MockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	t, exists := m.ticketsByNumber[number]
	if !exists {
		return nil, fmt.Errorf("ticket not found")
	}
	return t, nil
}

func (m *MockTicketRepository) List(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, 0, m.listError
	}

	var result []*ticket.Ticket
	for _, t := range m.tickets {
		if filters.Status != nil && t.Status() != *filters.Status {
			continue
		}
		if filters.Priority != nil && t.Priority() != *filters.Priority {
			continue
		}
		if filters.BaseID != nil && t.BaseID() != *filters.BaseID {
			continue
		}
		if filters.CreatorID != nil && t.CreatorID() != *filters.CreatorID {
			continue
		}
		if filters.AssigneeID != nil && (t.AssigneeID() == nil || *t.AssigneeID() != *filters.AssigneeID) {
			continue
		}
		if filters.VisibleTo != nil {
			uid := *filters.VisibleTo
			assigned := t.AssigneeID() != nil && *t.AssigneeID() == uid
			if t.CreatorID() != uid && !assigned {
				continue
			}
		}
		result = append(result, t)
	}

	total := int64(len(result))

	if filters.PageSize > 0 {
		start := (filters.Page - 1) * filters.PageSize
		end := start + filters.PageSize
		if start >= len(result) {
			return []*ticket.Ticket{}, total, nil
		}
		if end > len(result) {
			end = len(result)
		}
		result = result[start:end]
	}

	return result, total, nil
}

func (m *MockTicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.countError != nil {
		return nil, m.countError
	}

	counts := make(map[vo.TicketStatus]int64)
	for _, t := range m.tickets {
		counts[t.Status()]++
	}
	return counts, nil
}

func (m *MockTicketRepository) CountByPriority(ctx context.Context) (map[vo.Priority]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.countError != nil {
		return nil, m.countError
	}

	counts := make(map[vo.Priority]int64)
	for _, t := range m.tickets {
		counts[t.Priority()]++
	}
	return counts, nil
}

// MockEntryRepository is an in-memory implementation of ticket.EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[uint][]*ticket.Entry
	nextID  uint

	saveError error
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[uint][]*ticket.Entry),
	}
}

func (m *MockEntryRepository) SetSaveError(err error) { m.saveError = err }

func (m *MockEntryRepository) Save(ctx context.Context, entry *ticket.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}

	if entry.ID() == 0 {
		m.nextID++
		if err := entry.SetID(m.nextID); err != nil {
			return err
		}
	}

	m.entries[entry.TicketID()] = append(m.entries[entry.TicketID()], entry)
	return nil
}

func (m *MockEntryRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[ticketID], nil
}

// MockUserRepository is an in-memory implementation of user.UserRepository.
type MockUserRepository struct {
	mu           sync.RWMutex
	users        map[uint]*user.User
	usersByEmail map[string]*user.User
	nextID       uint

	getError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:        make(map[uint]*user.User),
		usersByEmail: make(map[string]*user.User),
	}
}

func (m *MockUserRepository) SetGetError(err error) { m.getError = err }

// AddUser registers an already-reconstructed user.
func (m *MockUserRepository) AddUser(u *user.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID()] = u
	m.usersByEmail[u.Email().String()] = u
	if u.ID() > m.nextID {
		m.nextID = u.ID()
	}
}

func (m *MockUserRepository) Save(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.ID() == 0 {
		m.nextID++
		if err := u.SetID(m.nextID); err != nil {
			return err
		}
	}

	m.users[u.ID()] = u
	m.usersByEmail[u.Email().String()] = u
	return nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[u.ID()]; !exists {
		return fmt.Errorf("user not found")
	}
	m.users[u.ID()] = u
	m.usersByEmail[u.Email().String()] = u
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.users[userID]
	if !exists {
		return fmt.Errorf("user not found")
	}
	delete(m.users, userID)
	delete(m.usersByEmail, u.Email().String())
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	u, exists := m.users[userID]
	if !exists {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	u, exists := m.usersByEmail[email]
	if !exists {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *MockUserRepository) List(ctx context.Context, filters user.UserFilter) ([]*user.User, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*user.User
	for _, u := range m.users {
		if filters.Role != nil && u.Role() != *filters.Role {
			continue
		}
		if filters.Active != nil && u.IsActive() != *filters.Active {
			continue
		}
		if filters.BaseID != nil && !u.BelongsToBase(*filters.BaseID) {
			continue
		}
		result = append(result, u)
	}
	return result, int64(len(result)), nil
}

func (m *MockUserRepository) ListByRole(ctx context.Context, roles ...authorization.UserRole) ([]*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*user.User
	for _, u := range m.users {
		if !u.IsActive() {
			continue
		}
		for _, role := range roles {
			if u.Role() == role {
				result = append(result, u)
				break
			}
		}
	}
	return result, nil
}

// MockNumberGenerator returns sequential ticket numbers.
type MockNumberGenerator struct {
	mu       sync.Mutex
	sequence int

	generateError error
}

func NewMockNumberGenerator() *MockNumberGenerator {
	return &MockNumberGenerator{}
}

func (m *MockNumberGenerator) SetGenerateError(err error) { m.generateError = err }

func (m *MockNumberGenerator) Generate(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generateError != nil {
		return "", m.generateError
	}

	m.sequence++
	return fmt.Sprintf("TKT-2026-%06d", m.sequence), nil
}

// NotifyCall records one NotifyTicketEvent invocation.
type NotifyCall struct {
	EventType string
	TicketID  uint
	Message   string
}

// MockTicketNotifier records notification calls instead of dispatching them.
type MockTicketNotifier struct {
	mu    sync.RWMutex
	calls []NotifyCall
}

func NewMockTicketNotifier() *MockTicketNotifier {
	return &MockTicketNotifier{}
}

func (m *MockTicketNotifier) NotifyTicketEvent(eventType string, ticketID uint, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, NotifyCall{EventType: eventType, TicketID: ticketID, Message: message})
}

func (m *MockTicketNotifier) GetCalls() []NotifyCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]NotifyCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// MockTransactionManager runs the function directly without a database.
type MockTransactionManager struct {
	beginError error
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) SetBeginError(err error) { m.beginError = err }

func (m *MockTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.beginError != nil {
		return m.beginError
	}
	return fn(ctx)
}

// MockLogger discards all log output.
type MockLogger struct{}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Debug(msg string, args ...any) {}
func (m *MockLogger) Info(msg string, args ...any)  {}
func (m *MockLogger) Warn(msg string, args ...any)  {}
func (m *MockLogger) Error(msg string, args ...any) {}

func (m *MockLogger) With(args ...any) logger.Interface  { return m }
func (m *MockLogger) Named(name string) logger.Interface { return m }

func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *MockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
