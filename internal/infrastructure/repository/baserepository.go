package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/base"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
)

type BaseRepository struct {
	db     *gorm.DB
	mapper mappers.BaseMapper
}

func NewBaseRepository(db *gorm.DB) *BaseRepository {
	return &BaseRepository{
		db:     db,
		mapper: mappers.NewBaseMapper(),
	}
}

func (r *BaseRepository) Save(ctx context.Context, b *base.Base) error {
	model := r.mapper.ToModel(b)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save base: %w", err)
	}

	if err := b.SetID(model.ID); err != nil {
		return err
	}
	return nil
}

func (r *BaseRepository) Update(ctx context.Context, b *base.Base) error {
	model := r.mapper.ToModel(b)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.BaseModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update base: %w", result.Error)
	}
	return nil
}

func (r *BaseRepository) Delete(ctx context.Context, baseID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.BaseModel{}, baseID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete base: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("base not found")
	}
	return nil
}

func (r *BaseRepository) GetByID(ctx context.Context, baseID uint) (*base.Base, error) {
	var model models.BaseModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, baseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("base not found")
		}
		return nil, fmt.Errorf("failed to find base: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *BaseRepository) GetByCode(ctx context.Context, code string) (*base.Base, error) {
	var model models.BaseModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("code = ?", code).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("base not found")
		}
		return nil, fmt.Errorf("failed to find base: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *BaseRepository) List(ctx context.Context, activeOnly bool) ([]*base.Base, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.BaseModel{}).Order("name ASC")

	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var baseModels []models.BaseModel
	if err := query.Find(&baseModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list bases: %w", err)
	}

	bases := make([]*base.Base, len(baseModels))
	for i, model := range baseModels {
		b, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		bases[i] = b
	}

	return bases, nil
}

func (r *BaseRepository) CountMembers(ctx context.Context, baseID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var count int64
	if err := tx.
		Model(&models.UserBaseModel{}).
		Where("base_id = ?", baseID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count base members: %w", err)
	}
	return count, nil
}
