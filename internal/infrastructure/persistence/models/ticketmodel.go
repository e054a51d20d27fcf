package models

import "gorm.io/datatypes"

type TicketModel struct {
	ID          uint           `gorm:"primaryKey"`
	Number      string         `gorm:"uniqueIndex;size:50;not null"`
	Title       string         `gorm:"size:200;not null"`
	Description string         `gorm:"type:text;not null"`
	Priority    string         `gorm:"size:20;not null;index"`
	Status      string         `gorm:"size:20;not null;index"`
	BaseID      uint           `gorm:"not null;index"`
	CreatorID   uint           `gorm:"not null;index"`
	AssigneeID  *uint          `gorm:"index"`
	Attachments datatypes.JSON
	Version     int    `gorm:"not null;default:1"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`
	ResolvedAt  *int64
	ClosedAt    *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type EntryModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	EntryType string `gorm:"size:20;not null;index"`
	OldValue  string `gorm:"size:200"`
	NewValue  string `gorm:"size:200"`
	Content   string `gorm:"type:text"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (EntryModel) TableName() string {
	return "ticket_entries"
}
