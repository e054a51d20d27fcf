package usecases

import (
	"context"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type LoginCommand struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

type LoginResult struct {
	User         *dto.UserDTO
	SessionID    string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type LoginUseCase struct {
	userRepo    user.UserRepository
	sessionRepo user.SessionRepository
	hasher      PasswordHasher
	tokens      TokenService
	logger      logger.Interface
}

func NewLoginUseCase(
	userRepo user.UserRepository,
	sessionRepo user.SessionRepository,
	hasher PasswordHasher,
	tokens TokenService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if len(cmd.Email) == 0 || len(cmd.Password) == 0 {
		return nil, errors.NewValidationError("email and password are required")
	}

	// One generic error for every credential failure so callers cannot probe
	// which emails exist.
	existing, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}
	if !existing.IsActive() {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}
	if err := uc.hasher.Verify(cmd.Password, existing.PasswordHash()); err != nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	session, err := user.NewSession(existing.ID(), cmd.IPAddress, cmd.UserAgent, uc.tokens.RefreshExpiry())
	if err != nil {
		uc.logger.Errorw("failed to create session", "user_id", existing.ID(), "error", err)
		return nil, errors.NewInternalError("failed to create session")
	}

	pair, err := uc.tokens.Generate(existing.ID(), session.ID, existing.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "user_id", existing.ID(), "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	session.RefreshTokenHash = hashToken(pair.RefreshToken)

	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		uc.logger.Errorw("failed to save session", "user_id", existing.ID(), "error", err)
		return nil, errors.NewInternalError("failed to create session")
	}

	// Last-login bookkeeping must not fail the login.
	existing.RecordLogin()
	if err := uc.userRepo.Update(ctx, existing); err != nil {
		uc.logger.Warnw("failed to record login time", "user_id", existing.ID(), "error", err)
	}

	uc.logger.Infow("user logged in", "user_id", existing.ID(), "session_id", session.ID)

	return &LoginResult{
		User:         dto.ToUserDTO(existing),
		SessionID:    session.ID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
