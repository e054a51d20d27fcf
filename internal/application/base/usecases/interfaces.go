package usecases

import (
	"context"

	"helpdesk/internal/application/base/dto"
)

type CreateBaseExecutor interface {
	Execute(ctx context.Context, cmd CreateBaseCommand) (*dto.BaseDTO, error)
}

type ListBasesExecutor interface {
	Execute(ctx context.Context, query ListBasesQuery) (*ListBasesResult, error)
}

type UpdateBaseExecutor interface {
	Execute(ctx context.Context, cmd UpdateBaseCommand) (*dto.BaseDTO, error)
}

type DeleteBaseExecutor interface {
	Execute(ctx context.Context, cmd DeleteBaseCommand) error
}

type SetBaseMembersExecutor interface {
	Execute(ctx context.Context, cmd SetBaseMembersCommand) (*SetBaseMembersResult, error)
}

// TransactionManager runs a function inside a database transaction.
// Satisfied by *db.TransactionManager.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
