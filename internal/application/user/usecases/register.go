package usecases

import (
	"context"

	"helpdesk/internal/domain/user"
	vo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type RegisterCommand struct {
	Email    string
	Password string
	Name     string
}

type RegisterResult struct {
	UserID uint
	Email  string
	Role   string
}

// RegisterUseCase creates a first-party credentials account. New accounts
// always start as regular users; role elevation is an admin operation.
type RegisterUseCase struct {
	userRepo user.UserRepository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewRegisterUseCase(
	userRepo user.UserRepository,
	hasher PasswordHasher,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if len(cmd.Password) < 8 {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}
	if len(cmd.Password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return nil, errors.NewValidationError("password exceeds maximum length of 72 characters")
	}
	if len(cmd.Name) == 0 {
		return nil, errors.NewValidationError("name is required")
	}

	if _, err := uc.userRepo.GetByEmail(ctx, email.String()); err == nil {
		return nil, errors.NewConflictError("email is already registered")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to create account")
	}

	newUser, err := user.NewUser(email, cmd.Name, hash, authorization.RoleUser)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Save(ctx, newUser); err != nil {
		uc.logger.Errorw("failed to save user", "error", err)
		return nil, errors.NewInternalError("failed to create account")
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID(), "email", email.String())

	return &RegisterResult{
		UserID: newUser.ID(),
		Email:  newUser.Email().String(),
		Role:   newUser.Role().String(),
	}, nil
}
