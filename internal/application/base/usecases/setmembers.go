package usecases

import (
	"context"

	"helpdesk/internal/domain/base"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type SetBaseMembersCommand struct {
	BaseID   uint
	UserIDs  []uint
	UserRole authorization.UserRole
}

type SetBaseMembersResult struct {
	BaseID  uint   `json:"base_id"`
	UserIDs []uint `json:"user_ids"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
}

// SetBaseMembersUseCase replaces the membership of a base with the given
// user set. Users not in the list lose the membership; users in the list
// gain it. Memberships in other bases are untouched.
type SetBaseMembersUseCase struct {
	baseRepo  base.BaseRepository
	userRepo  user.UserRepository
	txManager TransactionManager
	logger    logger.Interface
}

func NewSetBaseMembersUseCase(
	baseRepo base.BaseRepository,
	userRepo user.UserRepository,
	txManager TransactionManager,
	logger logger.Interface,
) *SetBaseMembersUseCase {
	return &SetBaseMembersUseCase{
		baseRepo:  baseRepo,
		userRepo:  userRepo,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *SetBaseMembersUseCase) Execute(ctx context.Context, cmd SetBaseMembersCommand) (*SetBaseMembersResult, error) {
	if !cmd.UserRole.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can manage bases")
	}
	if cmd.BaseID == 0 {
		return nil, errors.NewValidationError("base ID is required")
	}

	if _, err := uc.baseRepo.GetByID(ctx, cmd.BaseID); err != nil {
		return nil, errors.NewNotFoundError("base not found")
	}

	wanted := make(map[uint]bool, len(cmd.UserIDs))
	for _, userID := range cmd.UserIDs {
		if userID == 0 {
			return nil, errors.NewValidationError("user ID cannot be zero")
		}
		wanted[userID] = true
	}

	// Validate the full target set before touching anything.
	targets := make([]*user.User, 0, len(wanted))
	for userID := range wanted {
		u, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, errors.NewNotFoundError("user not found")
		}
		targets = append(targets, u)
	}

	baseID := cmd.BaseID
	current, _, err := uc.userRepo.List(ctx, user.UserFilter{BaseID: &baseID})
	if err != nil {
		uc.logger.Errorw("failed to list base members", "base_id", cmd.BaseID, "error", err)
		return nil, errors.NewInternalError("failed to update base members")
	}

	var toRemove []*user.User
	for _, member := range current {
		if wanted[member.ID()] {
			delete(wanted, member.ID())
			continue
		}
		toRemove = append(toRemove, member)
	}

	var toAdd []*user.User
	for _, target := range targets {
		if wanted[target.ID()] {
			toAdd = append(toAdd, target)
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, member := range toRemove {
			member.RemoveFromBase(cmd.BaseID)
			if err := uc.userRepo.Update(txCtx, member); err != nil {
				return err
			}
		}
		for _, target := range toAdd {
			if err := target.AssignToBase(cmd.BaseID); err != nil {
				return err
			}
			if err := uc.userRepo.Update(txCtx, target); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update base members", "base_id", cmd.BaseID, "error", err)
		return nil, errors.NewInternalError("failed to update base members")
	}

	uc.logger.Infow("base members updated",
		"base_id", cmd.BaseID,
		"added", len(toAdd),
		"removed", len(toRemove),
	)

	return &SetBaseMembersResult{
		BaseID:  cmd.BaseID,
		UserIDs: cmd.UserIDs,
		Added:   len(toAdd),
		Removed: len(toRemove),
	}, nil
}
