package usecases

import "context"

type DispatchTicketNotificationExecutor interface {
	Execute(ctx context.Context, cmd DispatchTicketNotificationCommand) (*DispatchTicketNotificationResult, error)
}

// TelegramSender delivers one rendered message to a chat.
// Satisfied by *telegram.BotService.
type TelegramSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// EmailSender delivers one rendered notification to an address.
// Satisfied by *email.SMTPEmailService.
type EmailSender interface {
	SendTicketNotification(to, subject, body string) error
}
