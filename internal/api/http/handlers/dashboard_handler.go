package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tickety/tickety-server/internal/api/dto"
	"github.com/tickety/tickety-server/internal/service"
)

// DashboardHandler exposes the read-only reporting aggregations.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Summary handles GET /dashboard/summary.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromDashboardSummary(summary))
}

// RecentTickets handles GET /dashboard/recent-tickets.
func (h *DashboardHandler) RecentTickets(c *fiber.Ctx) error {
	tickets, err := h.service.RecentTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// TicketsByMonth handles GET /dashboard/tickets-by-month.
func (h *DashboardHandler) TicketsByMonth(c *fiber.Ctx) error {
	buckets, err := h.service.TicketsByMonth(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.MonthBucketResponse, 0, len(buckets))
	for _, bucket := range buckets {
		items = append(items, dto.MonthBucketResponse{Month: bucket.Month, Count: bucket.Count})
	}
	return c.JSON(items)
}

// TicketsByPriority handles GET /dashboard/tickets-by-priority.
func (h *DashboardHandler) TicketsByPriority(c *fiber.Ctx) error {
	buckets, err := h.service.TicketsByPriority(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PriorityBucketResponse, 0, len(buckets))
	for _, bucket := range buckets {
		items = append(items, dto.PriorityBucketResponse{Priority: bucket.Priority, Count: bucket.Count})
	}
	return c.JSON(items)
}

// AverageResponseTime handles GET /dashboard/average-response-time.
func (h *DashboardHandler) AverageResponseTime(c *fiber.Ctx) error {
	averages, err := h.service.AverageResponseTime(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DayAverageResponse, 0, len(averages))
	for _, avg := range averages {
		items = append(items, dto.DayAverageResponse{Day: avg.Day, AvgHours: avg.AvgHours})
	}
	return c.JSON(items)
}
