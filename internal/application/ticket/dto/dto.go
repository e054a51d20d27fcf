package dto

import (
	"time"

	"helpdesk/internal/domain/ticket"
)

type TicketDTO struct {
	ID              uint       `json:"id"`
	Number          string     `json:"number"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"description_html,omitempty"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	BaseID          uint       `json:"base_id"`
	CreatorID       uint       `json:"creator_id"`
	AssigneeID      *uint      `json:"assignee_id"`
	Attachments     []string   `json:"attachments"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	ClosedAt        *time.Time `json:"closed_at"`
	Entries         []EntryDTO `json:"entries"`
}

type EntryDTO struct {
	ID          uint      `json:"id"`
	AuthorID    uint      `json:"author_id"`
	Type        string    `json:"type"`
	OldValue    string    `json:"old_value,omitempty"`
	NewValue    string    `json:"new_value,omitempty"`
	Content     string    `json:"content,omitempty"`
	ContentHTML string    `json:"content_html,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type TicketListItemDTO struct {
	ID         uint      `json:"id"`
	Number     string    `json:"number"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	BaseID     uint      `json:"base_id"`
	CreatorID  uint      `json:"creator_id"`
	AssigneeID *uint     `json:"assignee_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	entryDTOs := make([]EntryDTO, 0, len(t.Entries()))
	for _, e := range t.Entries() {
		entryDTOs = append(entryDTOs, ToEntryDTO(e))
	}

	return &TicketDTO{
		ID:          t.ID(),
		Number:      t.Number(),
		Title:       t.Title(),
		Description: t.Description(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		BaseID:      t.BaseID(),
		CreatorID:   t.CreatorID(),
		AssigneeID:  t.AssigneeID(),
		Attachments: t.Attachments(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		ResolvedAt:  t.ResolvedAt(),
		ClosedAt:    t.ClosedAt(),
		Entries:     entryDTOs,
	}
}

func ToEntryDTO(e *ticket.Entry) EntryDTO {
	return EntryDTO{
		ID:        e.ID(),
		AuthorID:  e.AuthorID(),
		Type:      e.Type().String(),
		OldValue:  e.OldValue(),
		NewValue:  e.NewValue(),
		Content:   e.Content(),
		CreatedAt: e.CreatedAt(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		ID:         t.ID(),
		Number:     t.Number(),
		Title:      t.Title(),
		Status:     t.Status().String(),
		Priority:   t.Priority().String(),
		BaseID:     t.BaseID(),
		CreatorID:  t.CreatorID(),
		AssigneeID: t.AssigneeID(),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
}
