package usecases

import (
	"fmt"
	"strings"

	"helpdesk/internal/infrastructure/telegram"
)

// Notification event types. The dispatcher rejects anything else.
const (
	EventTicketCreated   = "ticket_created"
	EventTicketAssigned  = "ticket_assigned"
	EventTicketUpdated   = "ticket_updated"
	EventTicketCommented = "ticket_commented"
)

var eventHeadlines = map[string]string{
	EventTicketCreated:   "🆕 New ticket",
	EventTicketAssigned:  "👤 Ticket assigned",
	EventTicketUpdated:   "🔄 Ticket updated",
	EventTicketCommented: "💬 New comment",
}

var eventSubjects = map[string]string{
	EventTicketCreated:   "New ticket",
	EventTicketAssigned:  "Ticket assigned",
	EventTicketUpdated:   "Ticket updated",
	EventTicketCommented: "New comment",
}

func isValidEventType(eventType string) bool {
	_, ok := eventHeadlines[eventType]
	return ok
}

// ticketSummary carries the display fields shared by every template.
type ticketSummary struct {
	Number       string
	Title        string
	Status       string
	Priority     string
	BaseName     string
	CreatorName  string
	AssigneeName string
	Link         string
}

// renderTelegram builds the Telegram HTML message: type headline, common
// header block, optional free-text message, deep link.
func renderTelegram(eventType string, s ticketSummary, message string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s <b>%s</b>\n\n", eventHeadlines[eventType], telegram.EscapeHTML(s.Title))
	fmt.Fprintf(&b, "🎫 <code>%s</code>\n", telegram.EscapeHTML(s.Number))
	fmt.Fprintf(&b, "📊 Status: %s\n", telegram.EscapeHTML(s.Status))
	fmt.Fprintf(&b, "⚡ Priority: %s\n", telegram.EscapeHTML(s.Priority))
	if s.BaseName != "" {
		fmt.Fprintf(&b, "🏥 Base: %s\n", telegram.EscapeHTML(s.BaseName))
	}
	fmt.Fprintf(&b, "👤 Creator: %s\n", telegram.EscapeHTML(s.CreatorName))
	if s.AssigneeName != "" {
		fmt.Fprintf(&b, "🔧 Assignee: %s\n", telegram.EscapeHTML(s.AssigneeName))
	}

	if message != "" {
		fmt.Fprintf(&b, "\n%s\n", telegram.EscapeHTML(message))
	}

	fmt.Fprintf(&b, "\n<a href=\"%s\">Open ticket</a>", s.Link)

	return b.String()
}

// renderEmail builds the plain-text subject and body for the email channel.
func renderEmail(eventType string, s ticketSummary, message string) (subject, body string) {
	subject = fmt.Sprintf("[%s] %s: %s", s.Number, eventSubjects[eventType], s.Title)

	var b strings.Builder
	fmt.Fprintf(&b, "Ticket:   %s\n", s.Number)
	fmt.Fprintf(&b, "Title:    %s\n", s.Title)
	fmt.Fprintf(&b, "Status:   %s\n", s.Status)
	fmt.Fprintf(&b, "Priority: %s\n", s.Priority)
	if s.BaseName != "" {
		fmt.Fprintf(&b, "Base:     %s\n", s.BaseName)
	}
	fmt.Fprintf(&b, "Creator:  %s\n", s.CreatorName)
	if s.AssigneeName != "" {
		fmt.Fprintf(&b, "Assignee: %s\n", s.AssigneeName)
	}
	if message != "" {
		fmt.Fprintf(&b, "\n%s\n", message)
	}
	fmt.Fprintf(&b, "\n%s\n", s.Link)

	return subject, b.String()
}
