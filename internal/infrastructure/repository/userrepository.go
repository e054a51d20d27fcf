package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/authorization"
	db "helpdesk/internal/shared/db"
)

type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	if err := u.SetID(model.ID); err != nil {
		return err
	}

	return r.syncBaseMemberships(tx, model.ID, u.BaseIDs())
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	return r.syncBaseMemberships(tx, model.ID, u.BaseIDs())
}

func (r *UserRepository) Delete(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).Delete(&models.UserBaseModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete user memberships: %w", err)
	}

	result := tx.Delete(&models.UserModel{}, userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	baseIDs, err := r.loadBaseIDs(tx, model.ID)
	if err != nil {
		return nil, err
	}

	return r.mapper.ToDomain(&model, baseIDs)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	baseIDs, err := r.loadBaseIDs(tx, model.ID)
	if err != nil {
		return nil, err
	}

	return r.mapper.ToDomain(&model, baseIDs)
}

func (r *UserRepository) List(ctx context.Context, filter user.UserFilter) ([]*user.User, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.UserModel{})

	if filter.Role != nil {
		query = query.Where("role = ?", filter.Role.String())
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.BaseID != nil {
		query = query.Where(
			"id IN (?)",
			tx.Model(&models.UserBaseModel{}).Select("user_id").Where("base_id = ?", *filter.BaseID),
		)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query = query.Order("created_at DESC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var userModels []models.UserModel
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*user.User, len(userModels))
	for i, model := range userModels {
		baseIDs, err := r.loadBaseIDs(tx, model.ID)
		if err != nil {
			return nil, 0, err
		}
		u, err := r.mapper.ToDomain(&model, baseIDs)
		if err != nil {
			return nil, 0, err
		}
		users[i] = u
	}

	return users, total, nil
}

func (r *UserRepository) ListByRole(ctx context.Context, roles ...authorization.UserRole) ([]*user.User, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	roleStrings := make([]string, len(roles))
	for i, role := range roles {
		roleStrings[i] = role.String()
	}

	tx := db.GetTxFromContext(ctx, r.db)
	var userModels []models.UserModel
	if err := tx.
		Where("role IN ? AND active = ?", roleStrings, true).
		Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}

	users := make([]*user.User, len(userModels))
	for i, model := range userModels {
		u, err := r.mapper.ToDomain(&model, nil)
		if err != nil {
			return nil, err
		}
		users[i] = u
	}

	return users, nil
}

func (r *UserRepository) loadBaseIDs(tx *gorm.DB, userID uint) ([]uint, error) {
	var baseIDs []uint
	if err := tx.
		Model(&models.UserBaseModel{}).
		Where("user_id = ?", userID).
		Pluck("base_id", &baseIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to load base memberships: %w", err)
	}
	return baseIDs, nil
}

// syncBaseMemberships replaces the join rows with the entity's current set.
func (r *UserRepository) syncBaseMemberships(tx *gorm.DB, userID uint, baseIDs []uint) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.UserBaseModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear base memberships: %w", err)
	}

	if len(baseIDs) == 0 {
		return nil
	}

	rows := make([]models.UserBaseModel, len(baseIDs))
	for i, baseID := range baseIDs {
		rows[i] = models.UserBaseModel{UserID: userID, BaseID: baseID}
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to save base memberships: %w", err)
	}
	return nil
}
