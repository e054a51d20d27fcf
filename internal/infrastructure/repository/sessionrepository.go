package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
	db "helpdesk/internal/shared/db"
)

type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *user.Session) error {
	model := r.mapper.SessionToModel(session)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	var model models.SessionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("id = ?", sessionID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return r.mapper.SessionToDomain(&model), nil
}

func (r *SessionRepository) GetByRefreshTokenHash(ctx context.Context, hash string) (*user.Session, error) {
	var model models.SessionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("refresh_token_hash = ?", hash).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return r.mapper.SessionToDomain(&model), nil
}

func (r *SessionRepository) Update(ctx context.Context, session *user.Session) error {
	model := r.mapper.SessionToModel(session)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.SessionModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update session: %w", result.Error)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id = ?", sessionID).Delete(&models.SessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ?", userID).Delete(&models.SessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Where("expires_at < ?", biztime.NowUTC().UnixMilli()).
		Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
