package setting

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
)

// TelegramLink binds a user to a Telegram chat. The link is full-or-empty:
// either chat ID, username and linked time are all present, or the user is
// unlinked and none of them are.
type TelegramLink struct {
	ChatID   int64
	Username string
	LinkedAt time.Time
}

// Settings holds per-user notification preferences and the optional telegram
// link. A missing row means defaults; use cases lazily create one on first
// read.
type Settings struct {
	id                uint
	userID            uint
	ticketUpdates     bool
	emailEnabled      bool
	telegramEnabled   bool
	telegramLink      *TelegramLink
	passwordChangedAt *time.Time
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewSettings creates default settings for a user: ticket updates and email
// on, telegram off, unlinked.
func NewSettings(userID uint) (*Settings, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	now := biztime.NowUTC()
	return &Settings{
		userID:        userID,
		ticketUpdates: true,
		emailEnabled:  true,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructSettings(
	id uint,
	userID uint,
	ticketUpdates bool,
	emailEnabled bool,
	telegramEnabled bool,
	telegramLink *TelegramLink,
	passwordChangedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Settings, error) {
	if id == 0 {
		return nil, fmt.Errorf("settings ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if telegramLink != nil && telegramLink.ChatID == 0 {
		return nil, fmt.Errorf("telegram link requires a chat ID")
	}

	return &Settings{
		id:                id,
		userID:            userID,
		ticketUpdates:     ticketUpdates,
		emailEnabled:      emailEnabled,
		telegramEnabled:   telegramEnabled,
		telegramLink:      telegramLink,
		passwordChangedAt: passwordChangedAt,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (s *Settings) ID() uint                      { return s.id }
func (s *Settings) UserID() uint                  { return s.userID }
func (s *Settings) TicketUpdates() bool           { return s.ticketUpdates }
func (s *Settings) EmailEnabled() bool            { return s.emailEnabled }
func (s *Settings) TelegramEnabled() bool         { return s.telegramEnabled }
func (s *Settings) PasswordChangedAt() *time.Time { return s.passwordChangedAt }
func (s *Settings) Version() int                  { return s.version }
func (s *Settings) CreatedAt() time.Time          { return s.createdAt }
func (s *Settings) UpdatedAt() time.Time          { return s.updatedAt }

func (s *Settings) TelegramLink() *TelegramLink {
	if s.telegramLink == nil {
		return nil
	}
	linkCopy := *s.telegramLink
	return &linkCopy
}

func (s *Settings) IsTelegramLinked() bool {
	return s.telegramLink != nil
}

// IsTelegramDeliverable reports whether telegram messages can actually be
// sent: the toggle is on and a chat is linked.
func (s *Settings) IsTelegramDeliverable() bool {
	return s.telegramEnabled && s.telegramLink != nil
}

func (s *Settings) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("settings ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("settings ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *Settings) SetTicketUpdates(enabled bool) {
	if s.ticketUpdates == enabled {
		return
	}
	s.ticketUpdates = enabled
	s.touch()
}

func (s *Settings) SetEmailEnabled(enabled bool) {
	if s.emailEnabled == enabled {
		return
	}
	s.emailEnabled = enabled
	s.touch()
}

func (s *Settings) SetTelegramEnabled(enabled bool) {
	if s.telegramEnabled == enabled {
		return
	}
	s.telegramEnabled = enabled
	s.touch()
}

func (s *Settings) RecordPasswordChange() {
	now := biztime.NowUTC()
	s.passwordChangedAt = &now
	s.touch()
}

// LinkTelegram transitions unlinked -> linked in one step. There is no
// pending state: verification happens before this call, and a second link
// attempt while linked fails.
func (s *Settings) LinkTelegram(chatID int64, username string) error {
	if chatID == 0 {
		return fmt.Errorf("chat ID is required")
	}
	if s.telegramLink != nil {
		return ErrAlreadyLinked
	}

	s.telegramLink = &TelegramLink{
		ChatID:   chatID,
		Username: username,
		LinkedAt: biztime.NowUTC(),
	}
	s.touch()
	return nil
}

// UnlinkTelegram clears the link and turns the telegram toggle off so a
// stale preference cannot point at a missing chat.
func (s *Settings) UnlinkTelegram() error {
	if s.telegramLink == nil {
		return ErrNotLinked
	}

	s.telegramLink = nil
	s.telegramEnabled = false
	s.touch()
	return nil
}

func (s *Settings) touch() {
	s.updatedAt = biztime.NowUTC()
	s.version++
}
