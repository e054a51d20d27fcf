package usecases

import (
	"context"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type LogoutCommand struct {
	SessionID string
}

type LogoutUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewLogoutUseCase(sessionRepo user.SessionRepository, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute revokes the session. Logging out an already-gone session succeeds.
func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if len(cmd.SessionID) == 0 {
		return errors.NewValidationError("session ID is required")
	}

	if err := uc.sessionRepo.Delete(ctx, cmd.SessionID); err != nil {
		uc.logger.Debugw("logout for missing session", "session_id", cmd.SessionID, "error", err)
	}

	return nil
}
