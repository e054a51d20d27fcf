package mappers

import (
	"fmt"

	"helpdesk/internal/domain/user"
	vo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/biztime"
)

// UserMapper handles the conversion between User domain entities and persistence models.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	// ToDomain converts a user model to a domain entity. baseIDs carry the
	// memberships loaded from the join table.
	ToDomain(model *models.UserModel, baseIDs []uint) (*user.User, error)
	SessionToModel(s *user.Session) *models.SessionModel
	SessionToDomain(model *models.SessionModel) *user.Session
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Email:        u.Email().String(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Active:       u.IsActive(),
		Version:      u.Version(),
		CreatedAt:    u.CreatedAt().UnixMilli(),
		UpdatedAt:    u.UpdatedAt().UnixMilli(),
		LastLoginAt:  optionalMilli(u.LastLoginAt()),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel, baseIDs []uint) (*user.User, error) {
	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email in user %d: %w", model.ID, err)
	}

	return user.ReconstructUser(
		model.ID,
		email,
		model.Name,
		model.PasswordHash,
		authorization.ParseUserRole(model.Role),
		baseIDs,
		model.Active,
		model.Version,
		biztime.FromUnixMilli(model.CreatedAt),
		biztime.FromUnixMilli(model.UpdatedAt),
		optionalTime(model.LastLoginAt),
	)
}

func (m *UserMapperImpl) SessionToModel(s *user.Session) *models.SessionModel {
	return &models.SessionModel{
		ID:               s.ID,
		UserID:           s.UserID,
		IPAddress:        s.IPAddress,
		UserAgent:        s.UserAgent,
		RefreshTokenHash: s.RefreshTokenHash,
		ExpiresAt:        s.ExpiresAt.UnixMilli(),
		LastActivityAt:   s.LastActivityAt.UnixMilli(),
		CreatedAt:        s.CreatedAt.UnixMilli(),
	}
}

func (m *UserMapperImpl) SessionToDomain(model *models.SessionModel) *user.Session {
	return &user.Session{
		ID:               model.ID,
		UserID:           model.UserID,
		IPAddress:        model.IPAddress,
		UserAgent:        model.UserAgent,
		RefreshTokenHash: model.RefreshTokenHash,
		ExpiresAt:        biztime.FromUnixMilli(model.ExpiresAt),
		LastActivityAt:   biztime.FromUnixMilli(model.LastActivityAt),
		CreatedAt:        biztime.FromUnixMilli(model.CreatedAt),
	}
}
