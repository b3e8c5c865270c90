package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tickety/tickety-server/internal/api/http/handlers"
	"github.com/tickety/tickety-server/internal/auth"
	"github.com/tickety/tickety-server/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Customers      *handlers.CustomersHandler
	Assignees      *handlers.AssigneesHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	Attachments    *handlers.AttachmentsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.Middleware
	UploadDir      string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Auth and registration.
	app.Post("/customer/register", cfg.Customers.Register)
	app.Post("/customer/login", cfg.Customers.Login)
	app.Post("/assignee/register", cfg.Assignees.Register)
	app.Post("/assignee/login", cfg.Assignees.Login)
	app.Post("/auth/forgot-password", cfg.Auth.ForgotPassword)
	app.Post("/auth/reset-password", cfg.Auth.ResetPassword)

	// Unscoped admin/dashboard views; a deliberate exception to ownership
	// scoping for reporting.
	app.Get("/assignees", cfg.Assignees.ListAll)
	app.Get("/customers", cfg.Customers.ListAll)
	app.Get("/tickets", cfg.Tickets.ListAll)
	dashboard := app.Group("/dashboard")
	dashboard.Get("/summary", cfg.Dashboard.Summary)
	dashboard.Get("/recent-tickets", cfg.Dashboard.RecentTickets)
	dashboard.Get("/tickets-by-month", cfg.Dashboard.TicketsByMonth)
	dashboard.Get("/tickets-by-priority", cfg.Dashboard.TicketsByPriority)
	dashboard.Get("/average-response-time", cfg.Dashboard.AverageResponseTime)

	// Uploaded files, served verbatim from the upload directory.
	app.Static("/uploads", cfg.UploadDir)

	authed := cfg.AuthMiddleware.Handle

	// Profiles.
	app.Get("/customer/me", authed, auth.RequireRole(domain.RoleCustomer), cfg.Customers.Me)
	app.Patch("/customer/update", authed, auth.RequireRole(domain.RoleCustomer), cfg.Customers.Update)
	app.Get("/assignee/me", authed, auth.RequireRole(domain.RoleAssignee), cfg.Assignees.Me)
	app.Patch("/assignee/update", authed, auth.RequireRole(domain.RoleAssignee), cfg.Assignees.Update)

	// Ticket lifecycle.
	app.Post("/tickets", authed, auth.RequireRole(domain.RoleCustomer), cfg.Tickets.Create)
	app.Get("/assignee/tickets", authed, auth.RequireRole(domain.RoleAssignee), cfg.Tickets.ListForAssignee)
	app.Get("/customers/:id/tickets", authed, auth.RequireRole(domain.RoleCustomer), cfg.Tickets.CustomerHistory)
	app.Get("/tickets/:id", authed, cfg.Tickets.Get)
	app.Patch("/tickets/:id/status", authed, cfg.Tickets.UpdateStatus)

	// Comments and attachments, ownership-gated through the parent ticket.
	app.Get("/tickets/:id/comments", authed, cfg.Comments.List)
	app.Post("/tickets/:id/comments", authed, cfg.Comments.Add)
	app.Get("/tickets/:id/attachments", authed, cfg.Attachments.ListForTicket)
	app.Post("/tickets/:id/attachments", authed, cfg.Attachments.UploadToTicket)
	app.Get("/comments/:id/attachments", authed, cfg.Attachments.ListForComment)
	app.Post("/comments/:id/attachments", authed, cfg.Attachments.UploadToComment)
}
