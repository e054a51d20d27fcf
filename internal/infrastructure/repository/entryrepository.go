package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
)

type EntryRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *EntryRepository) Save(ctx context.Context, entry *ticket.Entry) error {
	model := r.mapper.EntryToModel(entry)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	if err := entry.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *EntryRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Entry, error) {
	var entryModels []models.EntryModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find entries: %w", err)
	}

	entries := make([]*ticket.Entry, len(entryModels))
	for i, model := range entryModels {
		entry, err := r.mapper.EntryToDomain(&model)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}

	return entries, nil
}
