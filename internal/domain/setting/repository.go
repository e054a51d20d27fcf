package setting

import "context"

// TelegramRecipient is a deliverable telegram target: a user whose toggle is
// on and whose chat is linked.
type TelegramRecipient struct {
	UserID uint
	ChatID int64
}

// EmailRecipient is a deliverable email target: a user whose email toggle is
// on, joined with the account email.
type EmailRecipient struct {
	UserID uint
	Email  string
}

type SettingsRepository interface {
	Save(ctx context.Context, settings *Settings) error
	Update(ctx context.Context, settings *Settings) error
	GetByUserID(ctx context.Context, userID uint) (*Settings, error)
	GetByTelegramChatID(ctx context.Context, chatID int64) (*Settings, error)
	// ResolveTelegramRecipient returns the user's deliverable telegram target,
	// or nil when telegram is disabled or unlinked.
	ResolveTelegramRecipient(ctx context.Context, userID uint) (*TelegramRecipient, error)
	// ResolveAllTelegramRecipients returns every deliverable telegram target.
	ResolveAllTelegramRecipients(ctx context.Context) ([]TelegramRecipient, error)
	// ResolveAllEmailRecipients returns every email-enabled user with their
	// account email.
	ResolveAllEmailRecipients(ctx context.Context) ([]EmailRecipient, error)
}
