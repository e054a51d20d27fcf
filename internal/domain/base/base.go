package base

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
)

// Base is an organizational site (campus, office, facility) tickets are
// scoped to. Users hold memberships in one or more bases.
type Base struct {
	id          uint
	name        string
	code        string
	description string
	active      bool
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

func NewBase(name, code, description string) (*Base, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("code is required")
	}
	if len(code) > 20 {
		return nil, fmt.Errorf("code exceeds maximum length of 20 characters")
	}

	now := biztime.NowUTC()
	return &Base{
		name:        name,
		code:        code,
		description: description,
		active:      true,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructBase(
	id uint,
	name, code, description string,
	active bool,
	version int,
	createdAt, updatedAt time.Time,
) (*Base, error) {
	if id == 0 {
		return nil, fmt.Errorf("base ID cannot be zero")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("code is required")
	}

	return &Base{
		id:          id,
		name:        name,
		code:        code,
		description: description,
		active:      active,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (b *Base) ID() uint             { return b.id }
func (b *Base) Name() string         { return b.name }
func (b *Base) Code() string         { return b.code }
func (b *Base) Description() string  { return b.description }
func (b *Base) IsActive() bool       { return b.active }
func (b *Base) Version() int         { return b.version }
func (b *Base) CreatedAt() time.Time { return b.createdAt }
func (b *Base) UpdatedAt() time.Time { return b.updatedAt }

func (b *Base) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("base ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("base ID cannot be zero")
	}
	b.id = id
	return nil
}

func (b *Base) UpdateDetails(name, description string) error {
	if len(name) == 0 {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	b.name = name
	b.description = description
	b.touch()
	return nil
}

func (b *Base) Deactivate() {
	if !b.active {
		return
	}
	b.active = false
	b.touch()
}

func (b *Base) Activate() {
	if b.active {
		return
	}
	b.active = true
	b.touch()
}

func (b *Base) touch() {
	b.updatedAt = biztime.NowUTC()
	b.version++
}
