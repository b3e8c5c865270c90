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

// CustomersHandler exposes customer auth, profile, and admin listing endpoints.
type CustomersHandler struct {
	auth      *service.AuthService
	customers repository.CustomerRepository
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(authService *service.AuthService, customers repository.CustomerRepository) *CustomersHandler {
	return &CustomersHandler{auth: authService, customers: customers}
}

// Register handles POST /customer/register.
func (h *CustomersHandler) Register(c *fiber.Ctx) error {
	var req dto.CustomerRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("fullName, email, password required", nil)
	}

	customer, err := h.auth.RegisterCustomer(c.UserContext(), service.CustomerRegistration{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      req.Password,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromCustomer(customer))
}

// Login handles POST /customer/login.
func (h *CustomersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	customer, token, exp, err := h.auth.LoginCustomer(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.FromCustomer(customer),
	})
}

// Me handles GET /customer/me.
func (h *CustomersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Customer == nil {
		return apperrors.NewForbidden("customer role required")
	}
	return c.JSON(dto.FromCustomer(principal.Customer))
}

// Update handles PATCH /customer/update.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Customer == nil {
		return apperrors.NewForbidden("customer role required")
	}
	var req dto.CustomerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FullName == "" || req.Email == "" {
		return apperrors.NewValidationError("fullName and email required", nil)
	}

	customer, err := h.auth.UpdateCustomerProfile(c.UserContext(), principal.Customer.ID, service.CustomerProfileUpdate{
		FullName:      req.FullName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Password:      req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromCustomer(customer))
}

// ListAll handles GET /customers, the unscoped admin listing.
func (h *CustomersHandler) ListAll(c *fiber.Ctx) error {
	customers, err := h.customers.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, dto.FromCustomer(&customers[i]))
	}
	return c.JSON(items)
}
