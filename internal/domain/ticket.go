package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. Any assigned assignee
// may set any of these values; there is no transition table.
type TicketStatus string

const (
	TicketStatusOpen               TicketStatus = "Open"
	TicketStatusInProgress         TicketStatus = "In Progress"
	TicketStatusWaitingForCustomer TicketStatus = "Waiting for Customer"
	TicketStatusResolved           TicketStatus = "Resolved"
	TicketStatusClosed             TicketStatus = "Closed"
)

// Valid reports whether the status is a known lifecycle state.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusWaitingForCustomer,
		TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "Low"
	TicketPriorityMedium   TicketPriority = "Medium"
	TicketPriorityHigh     TicketPriority = "High"
	TicketPriorityCritical TicketPriority = "Critical"
)

// Valid reports whether the priority is a known level.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. CustomerID is the owner,
// AssigneeID the handling agent; both are set at creation.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Priority    TicketPriority
	Category    string
	Status      TicketStatus
	CustomerID  string
	AssigneeID  string
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}
