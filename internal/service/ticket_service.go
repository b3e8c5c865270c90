package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tickety/tickety-server/internal/auth"
	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/events"
	"github.com/tickety/tickety-server/internal/repository"
	apperrors "github.com/tickety/tickety-server/pkg/util"
)

// TicketService coordinates ticket lifecycle workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	customers  repository.CustomerRepository
	assignees  repository.AssigneeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles requirements for ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	CustomerRepo repository.CustomerRepository
	AssigneeRepo repository.AssigneeRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		customers:  deps.CustomerRepo,
		assignees:  deps.AssigneeRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Category    string
	AssigneeID  string
}

// CreateTicket creates a ticket owned by the calling customer and dispatches
// the ticket-created notification. Notification failure never fails creation.
func (s *TicketService) CreateTicket(ctx context.Context, principal *auth.Principal, input TicketCreateInput) (*domain.Ticket, error) {
	if principal.Role != domain.RoleCustomer || principal.Customer == nil {
		return nil, apperrors.NewForbidden("only customers may create tickets")
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if !input.Priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}
	assignee, err := s.assignees.GetByID(ctx, input.AssigneeID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Priority:    input.Priority,
		Category:    input.Category,
		Status:      domain.TicketStatusOpen,
		CustomerID:  principal.Customer.ID,
		AssigneeID:  assignee.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketCreated,
		TicketID:  ticket.ID,
		Timestamp: time.Now(),
		Payload: events.TicketCreatedPayload{
			Ticket:        *ticket,
			CustomerName:  principal.Customer.FullName,
			CustomerPhone: principal.Customer.ContactNumber,
			AssigneeName:  assignee.FullName,
			AssigneePhone: assignee.ContactNumber,
		},
	})
	return ticket, nil
}

// GetTicket fetches a single ticket, gated by the ownership predicate.
func (s *TicketService) GetTicket(ctx context.Context, principal *auth.Principal, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !auth.CanAccessTicket(principal, ticket) {
		return nil, apperrors.NewForbidden("not authorized for this ticket")
	}
	return ticket, nil
}

// ListAssigneeTickets returns tickets assigned to the calling assignee.
func (s *TicketService) ListAssigneeTickets(ctx context.Context, principal *auth.Principal) ([]domain.Ticket, error) {
	if principal.Role != domain.RoleAssignee || principal.Assignee == nil {
		return nil, apperrors.NewForbidden("assignee role required")
	}
	return s.tickets.ListByAssignee(ctx, principal.Assignee.ID)
}

// ListCustomerTickets returns a customer's ticket history. Customers may only
// request their own id.
func (s *TicketService) ListCustomerTickets(ctx context.Context, principal *auth.Principal, customerID string) ([]domain.Ticket, error) {
	if principal.Role != domain.RoleCustomer || principal.Customer == nil {
		return nil, apperrors.NewForbidden("customer role required")
	}
	if principal.Customer.ID != customerID {
		return nil, apperrors.NewForbidden("cannot list another customer's tickets")
	}
	return s.tickets.ListByCustomer(ctx, customerID)
}

// ListAllTickets is the unscoped admin listing with owner identity joined in.
func (s *TicketService) ListAllTickets(ctx context.Context) ([]repository.TicketWithCustomer, error) {
	return s.tickets.ListAllWithCustomer(ctx)
}

// UpdateStatus mutates ticket status. Only the assigned assignee may do this;
// the set of legal values is validated but transitions are free-form.
func (s *TicketService) UpdateStatus(ctx context.Context, principal *auth.Principal, ticketID string, status domain.TicketStatus) error {
	if !status.Valid() {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !auth.IsAssignedAssignee(principal, ticket) {
		return apperrors.NewForbidden("only the assigned assignee may change status")
	}

	if err := s.tickets.UpdateStatus(ctx, ticketID, status); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketStatusChanged,
		TicketID:  ticketID,
		Timestamp: time.Now(),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: ticket.Status,
			NewStatus: status,
		},
	})
	return nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
