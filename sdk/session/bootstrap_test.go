package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthSource struct {
	mu             sync.Mutex
	listeners      []func(Event)
	subscribes     int
	unsubscribes   int
	session        *Session
	sessionErr     error
	sessionFetches int
	profile        *Profile
	profileErr     error
}

func (f *fakeAuthSource) Subscribe(fn func(Event)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribes++
	f.listeners = append(f.listeners, fn)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unsubscribes++
	}
}

func (f *fakeAuthSource) CurrentSession(ctx context.Context) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionFetches++
	return f.session, f.sessionErr
}

func (f *fakeAuthSource) FetchProfile(ctx context.Context, userID uint) (*Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, f.profileErr
}

func (f *fakeAuthSource) emit(ev Event) {
	f.mu.Lock()
	listeners := append([]func(Event){}, f.listeners...)
	f.mu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}

func (f *fakeAuthSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessionFetches
}

func validSession() *Session {
	return &Session{
		UserID:    7,
		Email:     "tech@example.com",
		Name:      "Tech",
		Role:      "user",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func waitFinalized(t *testing.T, b *Bootstrap) {
	t.Helper()
	require.Eventually(t, func() bool { return !b.Loading() }, time.Second, 5*time.Millisecond)
}

func TestStart_ListenerWinsBeforeTimer(t *testing.T) {
	auth := &fakeAuthSource{profile: &Profile{UserID: 7, Email: "tech@example.com"}}
	b := New(auth, WithFallbackTimeout(time.Minute))
	defer b.Close()

	b.Start(context.Background())
	auth.emit(Event{Kind: EventSignIn, Session: validSession()})

	waitFinalized(t, b)
	assert.Equal(t, StateAuthenticated, b.State())
	require.NotNil(t, b.User())
	assert.Equal(t, uint(7), b.User().UserID)

	// The fallback fetch must never run once the listener has won.
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, auth.fetchCount())
}

func TestStart_TimerFallbackFetchesSession(t *testing.T) {
	auth := &fakeAuthSource{session: validSession()}
	b := New(auth, WithFallbackTimeout(10*time.Millisecond))
	defer b.Close()

	b.Start(context.Background())

	waitFinalized(t, b)
	assert.Equal(t, StateAuthenticated, b.State())
	assert.Equal(t, 1, auth.fetchCount())
}

func TestStart_TimerFallbackAbsentSession(t *testing.T) {
	auth := &fakeAuthSource{}
	b := New(auth, WithFallbackTimeout(10*time.Millisecond))
	defer b.Close()

	b.Start(context.Background())

	waitFinalized(t, b)
	assert.Equal(t, StateUnauthenticated, b.State())
	assert.Nil(t, b.User())
}

func TestStart_AuthErrorClearsIdentity(t *testing.T) {
	auth := &fakeAuthSource{sessionErr: errors.New("auth service unavailable")}
	b := New(auth, WithFallbackTimeout(10*time.Millisecond))
	defer b.Close()

	b.Start(context.Background())

	waitFinalized(t, b)
	assert.Equal(t, StateUnauthenticated, b.State())
	assert.Nil(t, b.User())
	assert.Nil(t, b.Profile())
}

func TestSignIn_ExpiredTokenIsUnauthenticated(t *testing.T) {
	auth := &fakeAuthSource{}
	b := New(auth, WithFallbackTimeout(time.Minute))
	defer b.Close()

	b.Start(context.Background())
	expired := validSession()
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	auth.emit(Event{Kind: EventSignIn, Session: expired})

	waitFinalized(t, b)
	assert.Equal(t, StateUnauthenticated, b.State())
}

func TestSignOutAfterFinalize_UpdatesWithoutReloading(t *testing.T) {
	auth := &fakeAuthSource{}
	b := New(auth, WithFallbackTimeout(time.Minute))
	defer b.Close()

	b.Start(context.Background())
	auth.emit(Event{Kind: EventSignIn, Session: validSession()})
	waitFinalized(t, b)
	require.Equal(t, StateAuthenticated, b.State())

	auth.emit(Event{Kind: EventSignOut})

	require.Eventually(t, func() bool { return b.State() == StateUnauthenticated }, time.Second, 5*time.Millisecond)
	assert.Nil(t, b.User())
	assert.False(t, b.Loading())
}

func TestProfileFetch_FailureKeepsUserAuthenticated(t *testing.T) {
	auth := &fakeAuthSource{profileErr: errors.New("profile endpoint down")}
	b := New(auth, WithFallbackTimeout(time.Minute))
	defer b.Close()

	b.Start(context.Background())
	auth.emit(Event{Kind: EventSignIn, Session: validSession()})

	waitFinalized(t, b)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateAuthenticated, b.State())
	assert.Nil(t, b.Profile())
}

func TestProfileFetch_PopulatesProfile(t *testing.T) {
	auth := &fakeAuthSource{profile: &Profile{UserID: 7, Name: "Tech", BaseIDs: []uint{1}}}
	b := New(auth, WithFallbackTimeout(time.Minute))
	defer b.Close()

	b.Start(context.Background())
	auth.emit(Event{Kind: EventSignIn, Session: validSession()})

	waitFinalized(t, b)
	require.Eventually(t, func() bool { return b.Profile() != nil }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []uint{1}, b.Profile().BaseIDs)
}

func TestStart_Reentrant(t *testing.T) {
	auth := &fakeAuthSource{session: validSession()}
	b := New(auth, WithFallbackTimeout(10*time.Millisecond))
	defer b.Close()

	b.Start(context.Background())
	b.Start(context.Background())
	b.Start(context.Background())

	waitFinalized(t, b)
	auth.mu.Lock()
	defer auth.mu.Unlock()
	assert.Equal(t, 1, auth.subscribes)
}

func TestClose_Idempotent(t *testing.T) {
	auth := &fakeAuthSource{}
	b := New(auth, WithFallbackTimeout(time.Minute))

	b.Start(context.Background())
	b.Close()
	b.Close()

	auth.mu.Lock()
	defer auth.mu.Unlock()
	assert.Equal(t, 1, auth.unsubscribes)
}

func TestClose_BeforeStart(t *testing.T) {
	b := New(&fakeAuthSource{})
	b.Close()

	// Start after Close must not register anything.
	b.Start(context.Background())
	assert.Equal(t, StateUninitialized, b.State())
}
