package dto

import (
	"time"

	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/repository"
)

// DashboardSummaryResponse carries headline counters.
type DashboardSummaryResponse struct {
	TotalTickets   int64 `json:"totalTickets"`
	OpenTickets    int64 `json:"openTickets"`
	ResolvedToday  int64 `json:"resolvedToday"`
	TotalCustomers int64 `json:"totalCustomers"`
}

// MonthBucketResponse is a tickets-per-month datapoint.
type MonthBucketResponse struct {
	Month time.Time `json:"month"`
	Count int64     `json:"count"`
}

// PriorityBucketResponse is a tickets-per-priority datapoint.
type PriorityBucketResponse struct {
	Priority domain.TicketPriority `json:"priority"`
	Count    int64                 `json:"count"`
}

// DayAverageResponse is average resolution hours for a day of week.
type DayAverageResponse struct {
	Day      string  `json:"day"`
	AvgHours float64 `json:"avgHours"`
}

// FromDashboardSummary maps the aggregate row.
func FromDashboardSummary(summary *repository.DashboardSummary) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		TotalTickets:   summary.TotalTickets,
		OpenTickets:    summary.OpenTickets,
		ResolvedToday:  summary.ResolvedToday,
		TotalCustomers: summary.TotalCustomers,
	}
}
