package auth

import "github.com/tickety/tickety-server/internal/domain"

// CanAccessTicket is the single ownership predicate gating every ticket-scoped
// operation: a customer may act on tickets they own, an assignee on tickets
// assigned to them. Comment and attachment authorization resolves through the
// parent ticket with this same check.
func CanAccessTicket(p *Principal, ticket *domain.Ticket) bool {
	if p == nil || ticket == nil {
		return false
	}
	switch p.Role {
	case domain.RoleCustomer:
		return p.Customer != nil && p.Customer.ID == ticket.CustomerID
	case domain.RoleAssignee:
		return p.Assignee != nil && p.Assignee.ID == ticket.AssigneeID
	}
	return false
}

// IsAssignedAssignee reports whether the principal is the assignee handling
// the ticket. Status mutation requires this, not mere ticket access.
func IsAssignedAssignee(p *Principal, ticket *domain.Ticket) bool {
	if p == nil || ticket == nil {
		return false
	}
	return p.Role == domain.RoleAssignee && p.Assignee != nil && p.Assignee.ID == ticket.AssigneeID
}
