package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/authorization"
)

type RegisterExecutor interface {
	Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type RefreshTokenExecutor interface {
	Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error)
}

type LogoutExecutor interface {
	Execute(ctx context.Context, cmd LogoutCommand) error
}

type GetProfileExecutor interface {
	Execute(ctx context.Context, query GetProfileQuery) (*dto.UserDTO, error)
}

type UpdateProfileExecutor interface {
	Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error)
}

type ChangePasswordExecutor interface {
	Execute(ctx context.Context, cmd ChangePasswordCommand) error
}

type ListUsersExecutor interface {
	Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error)
}

type AssignRoleExecutor interface {
	Execute(ctx context.Context, cmd AssignRoleCommand) (*dto.UserDTO, error)
}

type AssignBasesExecutor interface {
	Execute(ctx context.Context, cmd AssignBasesCommand) (*dto.UserDTO, error)
}

// PasswordHasher abstracts bcrypt so use cases stay testable.
// Satisfied by *auth.BcryptPasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenService issues and verifies the HS256 access/refresh pair.
// Satisfied by *auth.JWTService.
type TokenService interface {
	Generate(userID uint, sessionID string, role authorization.UserRole) (*auth.TokenPair, error)
	Verify(tokenString string) (*auth.Claims, error)
	RefreshExpiry() time.Time
}

// hashToken produces the digest stored alongside a session. Only the hash is
// persisted; the raw refresh token never touches the database.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
