package mappers

import (
	"encoding/json"
	"fmt"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	EntryToModel(e *ticket.Entry) *models.EntryModel
	EntryToDomain(model *models.EntryModel) (*ticket.Entry, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:          t.ID(),
		Number:      t.Number(),
		Title:       t.Title(),
		Description: t.Description(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		BaseID:      t.BaseID(),
		CreatorID:   t.CreatorID(),
		AssigneeID:  t.AssigneeID(),
		Version:     t.Version(),
		CreatedAt:   t.CreatedAt().UnixMilli(),
		UpdatedAt:   t.UpdatedAt().UnixMilli(),
	}

	if attachments := t.Attachments(); len(attachments) > 0 {
		attachmentsJSON, _ := json.Marshal(attachments)
		model.Attachments = attachmentsJSON
	}

	if t.ResolvedAt() != nil {
		resolved := t.ResolvedAt().UnixMilli()
		model.ResolvedAt = &resolved
	}

	if t.ClosedAt() != nil {
		closed := t.ClosedAt().UnixMilli()
		model.ClosedAt = &closed
	}

	return model
}

// ToDomain converts a ticket persistence model to a domain entity. Entries
// must be loaded separately by the repository.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid priority in ticket %d: %w", model.ID, err)
	}
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status in ticket %d: %w", model.ID, err)
	}

	var attachments []string
	if len(model.Attachments) > 0 {
		if err := json.Unmarshal(model.Attachments, &attachments); err != nil {
			return nil, fmt.Errorf("invalid attachments in ticket %d: %w", model.ID, err)
		}
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Number,
		model.Title,
		model.Description,
		priority,
		status,
		model.BaseID,
		model.CreatorID,
		model.AssigneeID,
		attachments,
		model.Version,
		biztime.FromUnixMilli(model.CreatedAt),
		biztime.FromUnixMilli(model.UpdatedAt),
		optionalTime(model.ResolvedAt),
		optionalTime(model.ClosedAt),
	)
}

func (m *TicketMapperImpl) EntryToModel(e *ticket.Entry) *models.EntryModel {
	return &models.EntryModel{
		ID:        e.ID(),
		TicketID:  e.TicketID(),
		AuthorID:  e.AuthorID(),
		EntryType: e.Type().String(),
		OldValue:  e.OldValue(),
		NewValue:  e.NewValue(),
		Content:   e.Content(),
		CreatedAt: e.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) EntryToDomain(model *models.EntryModel) (*ticket.Entry, error) {
	entryType, err := vo.NewEntryType(model.EntryType)
	if err != nil {
		return nil, fmt.Errorf("invalid entry type in entry %d: %w", model.ID, err)
	}

	return ticket.ReconstructEntry(
		model.ID,
		model.TicketID,
		model.AuthorID,
		entryType,
		model.OldValue,
		model.NewValue,
		model.Content,
		biztime.FromUnixMilli(model.CreatedAt),
	)
}
