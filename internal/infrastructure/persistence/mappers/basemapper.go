package mappers

import (
	"helpdesk/internal/domain/base"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
)

type BaseMapper interface {
	ToModel(b *base.Base) *models.BaseModel
	ToDomain(model *models.BaseModel) (*base.Base, error)
}

type BaseMapperImpl struct{}

func NewBaseMapper() BaseMapper {
	return &BaseMapperImpl{}
}

func (m *BaseMapperImpl) ToModel(b *base.Base) *models.BaseModel {
	return &models.BaseModel{
		ID:          b.ID(),
		Name:        b.Name(),
		Code:        b.Code(),
		Description: b.Description(),
		Active:      b.IsActive(),
		Version:     b.Version(),
		CreatedAt:   b.CreatedAt().UnixMilli(),
		UpdatedAt:   b.UpdatedAt().UnixMilli(),
	}
}

func (m *BaseMapperImpl) ToDomain(model *models.BaseModel) (*base.Base, error) {
	return base.ReconstructBase(
		model.ID,
		model.Name,
		model.Code,
		model.Description,
		model.Active,
		model.Version,
		biztime.FromUnixMilli(model.CreatedAt),
		biztime.FromUnixMilli(model.UpdatedAt),
	)
}
