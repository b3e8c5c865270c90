package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tickety/tickety-server/internal/api/dto"
	"github.com/tickety/tickety-server/internal/auth"
	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/service"
	apperrors "github.com/tickety/tickety-server/pkg/util"
)

// TicketsHandler manages ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create handles POST /tickets (customer only).
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AssigneeID == "" {
		return apperrors.NewValidationError("assigneeId required", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), principal, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromTicket(ticket))
}

// Get handles GET /tickets/:id, ownership-gated.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.service.GetTicket(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTicket(ticket))
}

// ListForAssignee handles GET /assignee/tickets.
func (h *TicketsHandler) ListForAssignee(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, err := h.service.ListAssigneeTickets(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// CustomerHistory handles GET /customers/:id/tickets.
func (h *TicketsHandler) CustomerHistory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, err := h.service.ListCustomerTickets(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// ListAll handles GET /tickets, the unscoped admin listing.
func (h *TicketsHandler) ListAll(c *fiber.Ctx) error {
	rows, err := h.service.ListAllTickets(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AdminTicketResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.FromTicketWithCustomer(&rows[i]))
	}
	return c.JSON(items)
}

// UpdateStatus handles PATCH /tickets/:id/status (assigned assignee only).
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.UpdateStatus(c.UserContext(), principal, c.Params("id"), req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.FromTicket(&tickets[i]))
	}
	return items
}
