package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tickety/tickety-server/internal/events"
	"github.com/tickety/tickety-server/internal/notify"
)

// NotificationService sends best-effort messages for domain events. Failures
// are logged and swallowed; they never surface to the request that triggered
// them.
type NotificationService struct {
	dispatcher events.Dispatcher
	messenger  notify.Messenger
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, messenger notify.Messenger, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		messenger:  messenger,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected payload on ticket_created event", zap.String("ticket_id", event.TicketID))
		return nil
	}

	body := fmt.Sprintf(
		"New Ticket Created!\nID: %s\nTitle: %s\nDescription: %s\nPriority: %s\nCategory: %s\nCustomer: %s\nAssignee: %s\nAssignee Contact: %s",
		payload.Ticket.ID,
		payload.Ticket.Title,
		payload.Ticket.Description,
		payload.Ticket.Priority,
		payload.Ticket.Category,
		payload.CustomerName,
		payload.AssigneeName,
		payload.AssigneePhone,
	)
	if err := n.messenger.Send(ctx, payload.CustomerPhone, body); err != nil {
		n.logger.Error("ticket created notification failed",
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("ticket status changed",
		zap.String("ticket_id", event.TicketID),
		zap.Any("payload", event.Payload))
	return nil
}
