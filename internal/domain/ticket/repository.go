package ticket

import (
	"context"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByNumber(ctx context.Context, number string) (*Ticket, error)
	List(ctx context.Context, filters TicketFilter) ([]*Ticket, int64, error)
	CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error)
	CountByPriority(ctx context.Context) (map[vo.Priority]int64, error)
}

type TicketFilter struct {
	Status     *vo.TicketStatus
	Priority   *vo.Priority
	BaseID     *uint
	CreatorID  *uint
	AssigneeID *uint
	// VisibleTo restricts results to tickets the given user created or is
	// assigned to. Staff queries leave it nil.
	VisibleTo *uint
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type EntryRepository interface {
	Save(ctx context.Context, entry *Entry) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Entry, error)
}

type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}
