package user

import (
	"context"

	"helpdesk/internal/shared/authorization"
)

type UserRepository interface {
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, userID uint) error
	GetByID(ctx context.Context, userID uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filters UserFilter) ([]*User, int64, error)
	// ListByRole returns active users holding any of the given roles. Used to
	// build staff notification recipient sets.
	ListByRole(ctx context.Context, roles ...authorization.UserRole) ([]*User, error)
}

type UserFilter struct {
	Role     *authorization.UserRole
	BaseID   *uint
	Active   *bool
	Search   string
	Page     int
	PageSize int
}

type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, sessionID string) (*Session, error)
	GetByRefreshTokenHash(ctx context.Context, hash string) (*Session, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string) error
	DeleteByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}
