package ticket

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/biztime"
)

type Ticket struct {
	id          uint
	number      string
	title       string
	description string
	priority    vo.Priority
	status      vo.TicketStatus
	baseID      uint
	creatorID   uint
	assigneeID  *uint
	attachments []string
	version     int
	createdAt   time.Time
	updatedAt   time.Time
	resolvedAt  *time.Time
	closedAt    *time.Time
	entries     []*Entry
}

func NewTicket(
	title string,
	description string,
	priority vo.Priority,
	baseID uint,
	creatorID uint,
) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if baseID == 0 {
		return nil, fmt.Errorf("base ID is required")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		title:       title,
		description: description,
		priority:    priority,
		status:      vo.StatusOpen,
		baseID:      baseID,
		creatorID:   creatorID,
		attachments: []string{},
		version:     1,
		createdAt:   now,
		updatedAt:   now,
		entries:     []*Entry{},
	}, nil
}

func ReconstructTicket(
	id uint,
	number string,
	title string,
	description string,
	priority vo.Priority,
	status vo.TicketStatus,
	baseID uint,
	creatorID uint,
	assigneeID *uint,
	attachments []string,
	version int,
	createdAt, updatedAt time.Time,
	resolvedAt, closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	if attachments == nil {
		attachments = []string{}
	}

	return &Ticket{
		id:          id,
		number:      number,
		title:       title,
		description: description,
		priority:    priority,
		status:      status,
		baseID:      baseID,
		creatorID:   creatorID,
		assigneeID:  assigneeID,
		attachments: attachments,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		resolvedAt:  resolvedAt,
		closedAt:    closedAt,
		entries:     []*Entry{},
	}, nil
}

func (t *Ticket) ID() uint                  { return t.id }
func (t *Ticket) Number() string            { return t.number }
func (t *Ticket) Title() string             { return t.title }
func (t *Ticket) Description() string       { return t.description }
func (t *Ticket) Priority() vo.Priority     { return t.priority }
func (t *Ticket) Status() vo.TicketStatus   { return t.status }
func (t *Ticket) BaseID() uint              { return t.baseID }
func (t *Ticket) CreatorID() uint           { return t.creatorID }
func (t *Ticket) AssigneeID() *uint         { return t.assigneeID }
func (t *Ticket) Version() int              { return t.version }
func (t *Ticket) CreatedAt() time.Time      { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time      { return t.updatedAt }
func (t *Ticket) ResolvedAt() *time.Time    { return t.resolvedAt }
func (t *Ticket) ClosedAt() *time.Time      { return t.closedAt }

func (t *Ticket) Attachments() []string {
	attachmentsCopy := make([]string, len(t.attachments))
	copy(attachmentsCopy, t.attachments)
	return attachmentsCopy
}

func (t *Ticket) Entries() []*Entry {
	entriesCopy := make([]*Entry, len(t.entries))
	copy(entriesCopy, t.entries)
	return entriesCopy
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// AssignTo sets the assignee. The caller is responsible for checking that the
// assignee's role is manage-capable; the entity only rejects the zero ID.
func (t *Ticket) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}

	t.assigneeID = &assigneeID
	t.updatedAt = biztime.NowUTC()
	t.version++

	if t.status.IsOpen() {
		t.status = vo.StatusInProgress
	}

	return nil
}

func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	if t.status == newStatus {
		return nil
	}

	if !t.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, newStatus)
	}

	t.status = newStatus
	now := biztime.NowUTC()
	t.updatedAt = now
	t.version++

	if newStatus.IsResolved() && t.resolvedAt == nil {
		t.resolvedAt = &now
	}

	if newStatus.IsClosed() && t.closedAt == nil {
		t.closedAt = &now
	}

	// Reopening clears terminal timestamps.
	if newStatus.IsInProgress() || newStatus.IsOpen() {
		t.resolvedAt = nil
		t.closedAt = nil
	}

	return nil
}

func (t *Ticket) ChangePriority(newPriority vo.Priority) error {
	if !newPriority.IsValid() {
		return fmt.Errorf("invalid priority: %s", newPriority)
	}

	if t.priority == newPriority {
		return nil
	}

	t.priority = newPriority
	t.updatedAt = biztime.NowUTC()
	t.version++

	return nil
}

func (t *Ticket) UpdateDetails(title, description string) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return fmt.Errorf("description exceeds maximum length of 5000 characters")
	}

	t.title = title
	t.description = description
	t.updatedAt = biztime.NowUTC()
	t.version++

	return nil
}

func (t *Ticket) AddAttachment(url string) error {
	if len(url) == 0 {
		return fmt.Errorf("attachment URL cannot be empty")
	}

	t.attachments = append(t.attachments, url)
	t.updatedAt = biztime.NowUTC()

	return nil
}

func (t *Ticket) AddEntry(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}

	if entry.TicketID() != t.id {
		return fmt.Errorf("entry ticket ID mismatch")
	}

	t.entries = append(t.entries, entry)
	t.updatedAt = biztime.NowUTC()

	return nil
}

// CanBeViewedBy implements ticket visibility: staff see everything, other
// roles only what they created or are assigned to.
func (t *Ticket) CanBeViewedBy(userID uint, role authorization.UserRole) bool {
	if role.CanManageTickets() {
		return true
	}

	if t.creatorID == userID {
		return true
	}

	if t.assigneeID != nil && *t.assigneeID == userID {
		return true
	}

	return false
}

func (t *Ticket) Validate() error {
	if len(t.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(t.description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if t.baseID == 0 {
		return fmt.Errorf("base ID is required")
	}
	if t.creatorID == 0 {
		return fmt.Errorf("creator ID is required")
	}
	return nil
}
