package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tickety/tickety-server/internal/api/dto"
	"github.com/tickety/tickety-server/internal/auth"
	"github.com/tickety/tickety-server/internal/repository"
	"github.com/tickety/tickety-server/internal/service"
	apperrors "github.com/tickety/tickety-server/pkg/util"
)

// AssigneesHandler exposes assignee auth, profile, and admin listing endpoints.
type AssigneesHandler struct {
	auth      *service.AuthService
	assignees repository.AssigneeRepository
}

// NewAssigneesHandler constructs handler.
func NewAssigneesHandler(authService *service.AuthService, assignees repository.AssigneeRepository) *AssigneesHandler {
	return &AssigneesHandler{auth: authService, assignees: assignees}
}

// Register handles POST /assignee/register.
func (h *AssigneesHandler) Register(c *fiber.Ctx) error {
	var req dto.AssigneeRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("fullName, email, password required", nil)
	}

	assignee, err := h.auth.RegisterAssignee(c.UserContext(), service.AssigneeRegistration{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      req.Password,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromAssignee(assignee))
}

// Login handles POST /assignee/login.
func (h *AssigneesHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	assignee, token, exp, err := h.auth.LoginAssignee(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.FromAssignee(assignee),
	})
}

// Me handles GET /assignee/me.
func (h *AssigneesHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Assignee == nil {
		return apperrors.NewForbidden("assignee role required")
	}
	return c.JSON(dto.FromAssignee(principal.Assignee))
}

// Update handles PATCH /assignee/update.
func (h *AssigneesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Assignee == nil {
		return apperrors.NewForbidden("assignee role required")
	}
	var req dto.AssigneeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FullName == "" || req.Email == "" {
		return apperrors.NewValidationError("fullName and email required", nil)
	}

	assignee, err := h.auth.UpdateAssigneeProfile(c.UserContext(), principal.Assignee.ID, service.AssigneeProfileUpdate{
		FullName:      req.FullName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Password:      req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAssignee(assignee))
}

// ListAll handles GET /assignees, the unscoped admin listing.
func (h *AssigneesHandler) ListAll(c *fiber.Ctx) error {
	assignees, err := h.assignees.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AssigneeResponse, 0, len(assignees))
	for i := range assignees {
		items = append(items, dto.FromAssignee(&assignees[i]))
	}
	return c.JSON(items)
}
