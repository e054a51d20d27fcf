package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// State is the bootstrap lifecycle position.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateAuthenticated
	StateUnauthenticated
)

const (
	defaultFallbackTimeout = 3 * time.Second
	defaultProfileTimeout  = 5 * time.Second
)

// Bootstrap resolves the initial auth state of an embedding application.
// It races the auth-event listener against a fallback timer: whichever
// settles first drives the transition, and Loading flips false exactly
// once. The listener stays subscribed afterwards so later sign-in and
// sign-out events keep the exposed identity current.
type Bootstrap struct {
	auth            AuthSource
	logger          *slog.Logger
	fallbackTimeout time.Duration
	profileTimeout  time.Duration

	mu          sync.Mutex
	state       State
	loading     bool
	user        *Session
	profile     *Profile
	closed      bool
	unsubscribe func()
	timer       *time.Timer
	race        *oneShotRace

	finalize sync.Once
}

// Option configures a Bootstrap.
type Option func(*Bootstrap)

// WithFallbackTimeout sets how long to wait for a listener event before
// falling back to a direct session fetch.
func WithFallbackTimeout(d time.Duration) Option {
	return func(b *Bootstrap) {
		b.fallbackTimeout = d
	}
}

// WithProfileTimeout bounds the background profile fetch.
func WithProfileTimeout(d time.Duration) Option {
	return func(b *Bootstrap) {
		b.profileTimeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bootstrap) {
		b.logger = logger
	}
}

// New creates a Bootstrap around the given auth source. Call Start to
// begin resolution and Close on application exit.
func New(auth AuthSource, opts ...Option) *Bootstrap {
	b := &Bootstrap{
		auth:            auth,
		logger:          slog.Default(),
		fallbackTimeout: defaultFallbackTimeout,
		profileTimeout:  defaultProfileTimeout,
		state:           StateUninitialized,
		loading:         true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start registers the auth-event listener, arms the fallback timer and
// resolves the initial state in the background. The listener goes in
// before any session query so an event firing during setup is not lost.
// A second Start while one is in flight, or after Close, is a no-op.
func (b *Bootstrap) Start(ctx context.Context) {
	b.mu.Lock()
	if b.closed || b.state != StateUninitialized {
		b.mu.Unlock()
		return
	}
	b.state = StateInitializing

	race := newOneShotRace()
	b.race = race
	b.unsubscribe = b.auth.Subscribe(b.onEvent)
	b.timer = time.AfterFunc(b.fallbackTimeout, func() {
		race.offer(raceResult{fallback: true})
	})
	b.mu.Unlock()

	go b.resolve(ctx, race)
}

func (b *Bootstrap) resolve(ctx context.Context, race *oneShotRace) {
	result, ok := race.wait()
	if !ok {
		return
	}

	if result.event != nil {
		b.applyEvent(*result.event)
		return
	}

	// Timer expiry: exactly one direct session fetch decides the state.
	sess, err := b.auth.CurrentSession(ctx)
	if err != nil {
		b.logger.Warn("session fetch failed during bootstrap", "error", err)
		b.setUnauthenticated()
		return
	}
	if sess == nil || sess.Expired() {
		b.setUnauthenticated()
		return
	}
	b.setAuthenticated(sess)
}

// onEvent routes listener events. The first event settles the race and
// is applied by the resolver goroutine; every later one updates identity
// directly without re-entering the loading state.
func (b *Bootstrap) onEvent(ev Event) {
	b.mu.Lock()
	race := b.race
	closed := b.closed
	b.mu.Unlock()

	if closed {
		return
	}
	if race != nil && race.offer(raceResult{event: &ev}) {
		return
	}
	b.applyEvent(ev)
}

func (b *Bootstrap) applyEvent(ev Event) {
	switch ev.Kind {
	case EventSignIn, EventTokenRefresh:
		if ev.Session == nil || ev.Session.Expired() {
			b.setUnauthenticated()
			return
		}
		b.setAuthenticated(ev.Session)
	case EventSignOut:
		b.setUnauthenticated()
	default:
		b.logger.Debug("ignoring unknown auth event", "kind", string(ev.Kind))
		b.finalizeLoading()
	}
}

func (b *Bootstrap) setAuthenticated(sess *Session) {
	b.mu.Lock()
	b.state = StateAuthenticated
	b.user = sess
	needProfile := b.profile == nil || b.profile.UserID != sess.UserID
	b.mu.Unlock()

	b.finalizeLoading()

	// Best effort, never blocks finalization. On failure the user stays
	// authenticated with a nil profile.
	if needProfile {
		go b.fetchProfile(sess.UserID)
	}
}

func (b *Bootstrap) setUnauthenticated() {
	b.mu.Lock()
	b.state = StateUnauthenticated
	b.user = nil
	b.profile = nil
	b.mu.Unlock()

	b.finalizeLoading()
}

// finalizeLoading flips Loading false exactly once.
func (b *Bootstrap) finalizeLoading() {
	b.finalize.Do(func() {
		b.mu.Lock()
		b.loading = false
		b.mu.Unlock()
	})
}

func (b *Bootstrap) fetchProfile(userID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), b.profileTimeout)
	defer cancel()

	profile, err := b.auth.FetchProfile(ctx, userID)
	if err != nil {
		b.logger.Debug("profile fetch failed", "user_id", userID, "error", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	// Identity may have changed while the fetch was in flight.
	if b.state == StateAuthenticated && b.user != nil && b.user.UserID == userID {
		b.profile = profile
	}
}

// Close cancels the pending timer, unregisters the listener and releases
// the resolver goroutine. Idempotent and safe after a partial Start.
func (b *Bootstrap) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	timer := b.timer
	unsubscribe := b.unsubscribe
	race := b.race
	b.timer = nil
	b.unsubscribe = nil
	b.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
	if race != nil {
		race.cancel()
	}
}

// Loading reports whether the initial resolution is still in flight.
func (b *Bootstrap) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// State returns the current lifecycle position.
func (b *Bootstrap) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// User returns the authenticated session, or nil.
func (b *Bootstrap) User() *Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.user
}

// Profile returns the fetched profile, or nil when the fetch failed or
// has not completed.
func (b *Bootstrap) Profile() *Profile {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile
}
