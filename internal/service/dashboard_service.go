package service

import (
	"context"

	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/repository"
)

const recentTicketLimit = 5

// DashboardService fronts the read-only reporting aggregations.
type DashboardService struct {
	dashboard repository.DashboardRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(dashboard repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboard: dashboard}
}

// Summary returns headline counters.
func (s *DashboardService) Summary(ctx context.Context) (*repository.DashboardSummary, error) {
	return s.dashboard.Summary(ctx)
}

// RecentTickets returns the newest tickets.
func (s *DashboardService) RecentTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.dashboard.RecentTickets(ctx, recentTicketLimit)
}

// TicketsByMonth returns the creation time-series.
func (s *DashboardService) TicketsByMonth(ctx context.Context) ([]repository.MonthBucket, error) {
	return s.dashboard.TicketsByMonth(ctx)
}

// TicketsByPriority returns counts grouped by priority.
func (s *DashboardService) TicketsByPriority(ctx context.Context) ([]repository.PriorityBucket, error) {
	return s.dashboard.TicketsByPriority(ctx)
}

// AverageResponseTime returns resolution averages bucketed by day of week.
func (s *DashboardService) AverageResponseTime(ctx context.Context) ([]repository.DayAverage, error) {
	return s.dashboard.AverageResponseTime(ctx)
}
