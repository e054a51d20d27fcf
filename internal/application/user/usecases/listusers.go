package usecases

import (
	"context"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
)

type ListUsersQuery struct {
	Role     string
	BaseID   uint
	Active   *bool
	Search   string
	Page     int
	PageSize int
	UserRole authorization.UserRole
}

type ListUsersResult struct {
	Users    []*dto.UserDTO `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type ListUsersUseCase struct {
	userRepo user.UserRepository
}

func NewListUsersUseCase(userRepo user.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	if !query.UserRole.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can list users")
	}

	filter := user.UserFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
		Active:   query.Active,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if query.Role != "" {
		role := authorization.UserRole(query.Role)
		if !role.IsValid() {
			return nil, errors.NewValidationError("invalid role filter")
		}
		filter.Role = &role
	}
	if query.BaseID != 0 {
		baseID := query.BaseID
		filter.BaseID = &baseID
	}

	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError("failed to list users")
	}

	return &ListUsersResult{
		Users:    dto.ToUserDTOs(users),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
