package ticket

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/biztime"
)

// Entry is an append-only ticket timeline record: a user comment or a
// system-written status_change/assignment entry with an old/new value pair.
type Entry struct {
	id        uint
	ticketID  uint
	authorID  uint
	entryType vo.EntryType
	oldValue  string
	newValue  string
	content   string
	createdAt time.Time
}

func NewComment(
	ticketID uint,
	authorID uint,
	content string,
) (*Entry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("content cannot be empty")
	}
	if len(content) > 5000 {
		return nil, fmt.Errorf("content exceeds maximum length of 5000 characters")
	}

	return &Entry{
		ticketID:  ticketID,
		authorID:  authorID,
		entryType: vo.EntryComment,
		content:   content,
		createdAt: biztime.NowUTC(),
	}, nil
}

// NewSystemEntry creates a status_change or assignment entry. oldValue may be
// empty (first assignment); content carries an optional free-text note.
func NewSystemEntry(
	ticketID uint,
	authorID uint,
	entryType vo.EntryType,
	oldValue, newValue string,
	content string,
) (*Entry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if !entryType.IsSystem() {
		return nil, fmt.Errorf("entry type %s is not a system entry", entryType)
	}
	if len(newValue) == 0 {
		return nil, fmt.Errorf("new value is required")
	}

	return &Entry{
		ticketID:  ticketID,
		authorID:  authorID,
		entryType: entryType,
		oldValue:  oldValue,
		newValue:  newValue,
		content:   content,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructEntry(
	id uint,
	ticketID uint,
	authorID uint,
	entryType vo.EntryType,
	oldValue, newValue string,
	content string,
	createdAt time.Time,
) (*Entry, error) {
	if id == 0 {
		return nil, fmt.Errorf("entry ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if !entryType.IsValid() {
		return nil, fmt.Errorf("invalid entry type")
	}

	return &Entry{
		id:        id,
		ticketID:  ticketID,
		authorID:  authorID,
		entryType: entryType,
		oldValue:  oldValue,
		newValue:  newValue,
		content:   content,
		createdAt: createdAt,
	}, nil
}

func (e *Entry) ID() uint                { return e.id }
func (e *Entry) TicketID() uint          { return e.ticketID }
func (e *Entry) AuthorID() uint          { return e.authorID }
func (e *Entry) Type() vo.EntryType      { return e.entryType }
func (e *Entry) OldValue() string        { return e.oldValue }
func (e *Entry) NewValue() string        { return e.newValue }
func (e *Entry) Content() string         { return e.content }
func (e *Entry) CreatedAt() time.Time    { return e.createdAt }

func (e *Entry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("entry ID cannot be zero")
	}
	e.id = id
	return nil
}
