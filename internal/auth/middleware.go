package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/repository"
	apperrors "github.com/tickety/tickety-server/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller: a role tag plus the loaded
// row for whichever principal table the token points at.
type Principal struct {
	Role     domain.Role
	Customer *domain.Customer
	Assignee *domain.Assignee
}

// SubjectID returns the id of the authenticated row.
func (p *Principal) SubjectID() string {
	switch p.Role {
	case domain.RoleCustomer:
		if p.Customer != nil {
			return p.Customer.ID
		}
	case domain.RoleAssignee:
		if p.Assignee != nil {
			return p.Assignee.ID
		}
	}
	return ""
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	tokens    *TokenManager
	customers repository.CustomerRepository
	assignees repository.AssigneeRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, customers repository.CustomerRepository, assignees repository.AssigneeRepository) *Middleware {
	return &Middleware{tokens: tokens, customers: customers, assignees: assignees}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{Role: claims.Role}

	switch claims.Role {
	case domain.RoleCustomer:
		customer, err := m.customers.GetByID(c.UserContext(), claims.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("customer not found")
			}
			return apperrors.MapError(err)
		}
		principal.Customer = customer
	case domain.RoleAssignee:
		assignee, err := m.assignees.GetByID(c.UserContext(), claims.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("assignee not found")
			}
			return apperrors.MapError(err)
		}
		principal.Assignee = assignee
	default:
		return apperrors.NewUnauthorized("unknown role")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireRole ensures the authenticated principal carries the given role tag.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != role {
			return apperrors.NewForbidden(string(role) + " role required")
		}
		return c.Next()
	}
}
