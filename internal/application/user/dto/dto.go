package dto

import (
	"time"

	"helpdesk/internal/domain/user"
)

type UserDTO struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	BaseIDs     []uint     `json:"base_ids"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func ToUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:          u.ID(),
		Email:       u.Email().String(),
		Name:        u.Name(),
		Role:        u.Role().String(),
		BaseIDs:     u.BaseIDs(),
		Active:      u.IsActive(),
		CreatedAt:   u.CreatedAt(),
		LastLoginAt: u.LastLoginAt(),
	}
}

func ToUserDTOs(users []*user.User) []*UserDTO {
	dtos := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, ToUserDTO(u))
	}
	return dtos
}
