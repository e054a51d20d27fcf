package dto

import (
	"time"

	"helpdesk/internal/domain/base"
)

type BaseDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToBaseDTO(b *base.Base) *BaseDTO {
	return &BaseDTO{
		ID:          b.ID(),
		Name:        b.Name(),
		Code:        b.Code(),
		Description: b.Description(),
		Active:      b.IsActive(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

func ToBaseDTOs(bases []*base.Base) []*BaseDTO {
	dtos := make([]*BaseDTO, len(bases))
	for i, b := range bases {
		dtos[i] = ToBaseDTO(b)
	}
	return dtos
}
