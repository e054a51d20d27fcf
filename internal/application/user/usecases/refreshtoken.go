package usecases

import (
	"context"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RefreshTokenUseCase rotates the token pair: the presented refresh token is
// checked against the stored session hash and replaced, so a leaked old token
// dies on first reuse.
type RefreshTokenUseCase struct {
	userRepo    user.UserRepository
	sessionRepo user.SessionRepository
	tokens      TokenService
	logger      logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.UserRepository,
	sessionRepo user.SessionRepository,
	tokens TokenService,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	if len(cmd.RefreshToken) == 0 {
		return nil, errors.NewValidationError("refresh token is required")
	}

	claims, err := uc.tokens.Verify(cmd.RefreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	session, err := uc.sessionRepo.GetByID(ctx, claims.SessionID)
	if err != nil {
		return nil, errors.NewUnauthorizedError("session not found")
	}
	if session.IsExpired() {
		return nil, errors.NewUnauthorizedError("session expired")
	}
	if session.RefreshTokenHash != hashToken(cmd.RefreshToken) {
		// Replayed or rotated-out token; kill the session.
		if err := uc.sessionRepo.Delete(ctx, session.ID); err != nil {
			uc.logger.Warnw("failed to delete session on token reuse", "session_id", session.ID, "error", err)
		}
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	existing, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, errors.NewUnauthorizedError("user not found")
	}
	if !existing.IsActive() {
		return nil, errors.NewUnauthorizedError("account is deactivated")
	}

	pair, err := uc.tokens.Generate(existing.ID(), session.ID, existing.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", existing.ID(), "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	session.RefreshTokenHash = hashToken(pair.RefreshToken)
	session.UpdateActivity()

	if err := uc.sessionRepo.Update(ctx, session); err != nil {
		uc.logger.Errorw("failed to rotate session", "session_id", session.ID, "error", err)
		return nil, errors.NewInternalError("failed to refresh session")
	}

	return &RefreshTokenResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
