package events

import (
	"time"

	"github.com/tickety/tickety-server/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType `json:"type"`
	TicketID  string    `json:"ticket_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// TicketCreatedPayload carries everything the notification template needs so
// handlers never go back to the database.
type TicketCreatedPayload struct {
	Ticket        domain.Ticket `json:"ticket"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	AssigneeName  string        `json:"assignee_name"`
	AssigneePhone string        `json:"assignee_phone"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}
