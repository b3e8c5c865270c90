package dto

import (
	"time"

	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/repository"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Category    string                `json:"category"`
	AssigneeID  string                `json:"assigneeId"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketResponse is the standard ticket view.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Category    string                `json:"category"`
	Status      domain.TicketStatus   `json:"status"`
	CustomerID  string                `json:"customerId"`
	AssigneeID  string                `json:"assigneeId"`
	CreatedAt   time.Time             `json:"createdAt"`
	ResolvedAt  *time.Time            `json:"resolvedAt"`
}

// AdminTicketResponse adds owner identity for the unscoped listing.
type AdminTicketResponse struct {
	TicketResponse
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// FromTicket maps the domain model to its response shape.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Priority:    ticket.Priority,
		Category:    ticket.Category,
		Status:      ticket.Status,
		CustomerID:  ticket.CustomerID,
		AssigneeID:  ticket.AssigneeID,
		CreatedAt:   ticket.CreatedAt,
		ResolvedAt:  ticket.ResolvedAt,
	}
}

// FromTicketWithCustomer maps the joined admin row.
func FromTicketWithCustomer(row *repository.TicketWithCustomer) AdminTicketResponse {
	return AdminTicketResponse{
		TicketResponse: FromTicket(&row.Ticket),
		CustomerName:   row.CustomerName,
		CustomerEmail:  row.CustomerEmail,
	}
}
