package session

import (
	"context"
	"time"
)

// EventKind classifies auth-state transitions delivered by the listener.
type EventKind string

const (
	EventSignIn       EventKind = "sign_in"
	EventSignOut      EventKind = "sign_out"
	EventTokenRefresh EventKind = "token_refresh"
)

// Session is the authenticated identity carried by auth events and
// session fetches.
type Session struct {
	UserID uint
	Email  string
	Name   string
	Role   string
	// ExpiresAt is the access-token expiry. Zero means unknown and is
	// treated as not expired.
	ExpiresAt time.Time
}

// Expired reports whether the session's access token is past expiry.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Event is a single auth-state transition. Session is nil for sign-out.
type Event struct {
	Kind    EventKind
	Session *Session
}

// Profile is the extended user record fetched after authentication.
type Profile struct {
	UserID  uint
	Email   string
	Name    string
	Role    string
	BaseIDs []uint
}

// AuthSource is the auth layer the bootstrap coordinates against.
type AuthSource interface {
	// Subscribe registers fn for auth-state transitions and returns an
	// unsubscribe function. fn may be called from any goroutine.
	Subscribe(fn func(Event)) (unsubscribe func())

	// CurrentSession returns the active session, or nil when signed out.
	CurrentSession(ctx context.Context) (*Session, error)

	// FetchProfile loads the extended profile for the given user.
	FetchProfile(ctx context.Context, userID uint) (*Profile, error)
}
