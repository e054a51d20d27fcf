package usecases

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	tickettestutil "helpdesk/internal/application/ticket/testutil"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/auth"
)

// mockSessionRepo is an in-memory user.SessionRepository.
type mockSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*user.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*user.Session)}
}

func (m *mockSessionRepo) Save(ctx context.Context, s *user.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return s, nil
}

func (m *mockSessionRepo) GetByRefreshTokenHash(ctx context.Context, hash string) (*user.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.RefreshTokenHash == hash {
			return s, nil
		}
	}
	return nil, fmt.Errorf("session not found")
}

func (m *mockSessionRepo) Update(ctx context.Context, s *user.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return fmt.Errorf("session not found")
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return fmt.Errorf("session not found")
	}
	delete(m.sessions, sessionID)
	return nil
}

func (m *mockSessionRepo) DeleteByUserID(ctx context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.IsExpired() {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *mockSessionRepo) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// fakeHasher avoids bcrypt cost in tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

func testTokenService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key", 15, 7)
}

func registerTestUser(t *testing.T, userRepo *tickettestutil.MockUserRepository, email, password string) uint {
	t.Helper()

	uc := NewRegisterUseCase(userRepo, fakeHasher{}, tickettestutil.NewMockLogger())
	result, err := uc.Execute(context.Background(), RegisterCommand{
		Email: email, Password: password, Name: "Test User",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return result.UserID
}

func TestRegister(t *testing.T) {
	userRepo := tickettestutil.NewMockUserRepository()
	uc := NewRegisterUseCase(userRepo, fakeHasher{}, tickettestutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), RegisterCommand{
		Email: "Alice@Example.com", Password: "correct-horse", Name: "Alice",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Role != "user" {
		t.Errorf("result.Role = %v, want user (new accounts never start elevated)", result.Role)
	}
	if result.Email != "alice@example.com" {
		t.Errorf("result.Email = %v, want lowercased", result.Email)
	}

	// Duplicate email conflicts.
	_, err = uc.Execute(context.Background(), RegisterCommand{
		Email: "alice@example.com", Password: "correct-horse", Name: "Alice Again",
	})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Errorf("duplicate register error = %v, want conflict", err)
	}

	// Short password rejected.
	_, err = uc.Execute(context.Background(), RegisterCommand{
		Email: "bob@example.com", Password: "short", Name: "Bob",
	})
	if err == nil || !strings.Contains(err.Error(), "at least 8 characters") {
		t.Errorf("short password error = %v", err)
	}
}

func TestLogin(t *testing.T) {
	userRepo := tickettestutil.NewMockUserRepository()
	sessionRepo := newMockSessionRepo()
	userID := registerTestUser(t, userRepo, "alice@example.com", "correct-horse")

	uc := NewLoginUseCase(userRepo, sessionRepo, fakeHasher{}, testTokenService(), tickettestutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), LoginCommand{
		Email: "alice@example.com", Password: "correct-horse",
		IPAddress: "10.0.0.1", UserAgent: "go-test",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("expected token pair")
	}
	if result.User.ID != userID {
		t.Errorf("result.User.ID = %v, want %v", result.User.ID, userID)
	}
	if sessionRepo.count() != 1 {
		t.Errorf("session count = %d, want 1", sessionRepo.count())
	}

	session, err := sessionRepo.GetByID(context.Background(), result.SessionID)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if session.RefreshTokenHash == "" || session.RefreshTokenHash == result.RefreshToken {
		t.Error("session must store a hash, not the raw refresh token")
	}

	u, _ := userRepo.GetByID(context.Background(), userID)
	if u.LastLoginAt() == nil {
		t.Error("last login not recorded")
	}
}

func TestLogin_CredentialFailuresAreGeneric(t *testing.T) {
	userRepo := tickettestutil.NewMockUserRepository()
	sessionRepo := newMockSessionRepo()
	registerTestUser(t, userRepo, "alice@example.com", "correct-horse")

	uc := NewLoginUseCase(userRepo, sessionRepo, fakeHasher{}, testTokenService(), tickettestutil.NewMockLogger())

	// Deactivate for the third case.
	deactivated := registerTestUser(t, userRepo, "gone@example.com", "correct-horse")
	u, _ := userRepo.GetByID(context.Background(), deactivated)
	u.Deactivate()
	_ = userRepo.Update(context.Background(), u)

	testCases := []struct {
		name string
		cmd  LoginCommand
	}{
		{name: "unknown email", cmd: LoginCommand{Email: "nobody@example.com", Password: "correct-horse"}},
		{name: "wrong password", cmd: LoginCommand{Email: "alice@example.com", Password: "wrong"}},
		{name: "deactivated account", cmd: LoginCommand{Email: "gone@example.com", Password: "correct-horse"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.cmd)
			if err == nil {
				t.Fatal("Execute() expected error, got nil")
			}
			// Same message for every failure mode.
			if !strings.Contains(err.Error(), "invalid email or password") {
				t.Errorf("Execute() error = %v, want generic credentials error", err)
			}
		})
	}

	if sessionRepo.count() != 0 {
		t.Errorf("session count = %d, want 0 after failed logins", sessionRepo.count())
	}
}

func TestRefreshToken_RotatesPair(t *testing.T) {
	userRepo := tickettestutil.NewMockUserRepository()
	sessionRepo := newMockSessionRepo()
	registerTestUser(t, userRepo, "alice@example.com", "correct-horse")

	tokens := testTokenService()
	login := NewLoginUseCase(userRepo, sessionRepo, fakeHasher{}, tokens, tickettestutil.NewMockLogger())
	refresh := NewRefreshTokenUseCase(userRepo, sessionRepo, tokens, tickettestutil.NewMockLogger())

	loginResult, err := login.Execute(context.Background(), LoginCommand{
		Email: "alice@example.com", Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshResult, err := refresh.Execute(context.Background(), RefreshTokenCommand{
		RefreshToken: loginResult.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshResult.AccessToken == "" {
		t.Error("expected new access token")
	}

	// The old refresh token was rotated out; replaying it kills the session.
	if _, err := refresh.Execute(context.Background(), RefreshTokenCommand{
		RefreshToken: loginResult.RefreshToken,
	}); err == nil {
		t.Fatal("replayed refresh token should be rejected")
	}
	if sessionRepo.count() != 0 {
		t.Errorf("session count = %d, want 0 after token reuse", sessionRepo.count())
	}
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	userRepo := tickettestutil.NewMockUserRepository()
	sessionRepo := newMockSessionRepo()
	registerTestUser(t, userRepo, "alice@example.com", "correct-horse")

	tokens := testTokenService()
	login := NewLoginUseCase(userRepo, sessionRepo, fakeHasher{}, tokens, tickettestutil.NewMockLogger())
	refresh := NewRefreshTokenUseCase(userRepo, sessionRepo, tokens, tickettestutil.NewMockLogger())

	loginResult, err := login.Execute(context.Background(), LoginCommand{
		Email: "alice@example.com", Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := refresh.Execute(context.Background(), RefreshTokenCommand{
		RefreshToken: loginResult.AccessToken,
	}); err == nil {
		t.Fatal("access token must not be accepted as refresh token")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	sessionRepo := newMockSessionRepo()
	uc := NewLogoutUseCase(sessionRepo, tickettestutil.NewMockLogger())

	s, err := user.NewSession(1, "", "", testTokenService().RefreshExpiry())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	_ = sessionRepo.Save(context.Background(), s)

	if err := uc.Execute(context.Background(), LogoutCommand{SessionID: s.ID}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessionRepo.count() != 0 {
		t.Error("session not revoked")
	}

	// Second logout of the same session still succeeds.
	if err := uc.Execute(context.Background(), LogoutCommand{SessionID: s.ID}); err != nil {
		t.Fatalf("repeat logout: %v", err)
	}
}
