// Package notification wires the dispatch use case into the rest of the
// application: ticket mutations trigger it as a detached side effect.
package notification

import (
	"context"
	"fmt"
	"time"

	"helpdesk/internal/application/notification/usecases"
	"helpdesk/internal/shared/goroutine"
	"helpdesk/internal/shared/logger"
)

const defaultDispatchTimeout = 30 * time.Second

// Notifier adapts the dispatcher to the fire-and-forget contract ticket
// mutations expect: the call returns immediately, the fan-out runs on a
// detached goroutine with its own deadline, and failures are only logged.
type Notifier struct {
	dispatcher usecases.DispatchTicketNotificationExecutor
	timeout    time.Duration
	logger     logger.Interface
}

func NewNotifier(
	dispatcher usecases.DispatchTicketNotificationExecutor,
	dispatchTimeoutSeconds int,
	logger logger.Interface,
) *Notifier {
	timeout := defaultDispatchTimeout
	if dispatchTimeoutSeconds > 0 {
		timeout = time.Duration(dispatchTimeoutSeconds) * time.Second
	}

	return &Notifier{
		dispatcher: dispatcher,
		timeout:    timeout,
		logger:     logger,
	}
}

// NotifyTicketEvent implements usecases.TicketNotifier for the ticket context.
// The dispatch deliberately does not inherit the request context: the primary
// write has already committed and its cancellation must not abort the fan-out.
func (n *Notifier) NotifyTicketEvent(eventType string, ticketID uint, message string) {
	goroutine.Detach(n.logger, fmt.Sprintf("notify:%s", eventType), func() error {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		result, err := n.dispatcher.Execute(ctx, usecases.DispatchTicketNotificationCommand{
			Type:     eventType,
			TicketID: ticketID,
			Message:  message,
		})
		if err != nil {
			return err
		}

		n.logger.Debugw("ticket event dispatched",
			"type", eventType,
			"ticket_id", ticketID,
			"sent", result.Sent,
			"failed", result.Failed)
		return nil
	})
}
