package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tickety/tickety-server/internal/domain"
)

// DashboardSummary aggregates headline counts for the admin dashboard.
type DashboardSummary struct {
	TotalTickets   int64
	OpenTickets    int64
	ResolvedToday  int64
	TotalCustomers int64
}

// MonthBucket is a tickets-per-month datapoint.
type MonthBucket struct {
	Month time.Time
	Count int64
}

// PriorityBucket is a tickets-per-priority datapoint.
type PriorityBucket struct {
	Priority domain.TicketPriority
	Count    int64
}

// DayAverage is the average resolution time for tickets created on a given
// day of week, in hours.
type DayAverage struct {
	Day      string
	DayNum   int
	AvgHours float64
}

// DashboardRepository runs the read-only reporting aggregations. Every call
// recomputes from the live tables; nothing is cached.
type DashboardRepository interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
	RecentTickets(ctx context.Context, limit int) ([]domain.Ticket, error)
	TicketsByMonth(ctx context.Context) ([]MonthBucket, error)
	TicketsByPriority(ctx context.Context) ([]PriorityBucket, error)
	AverageResponseTime(ctx context.Context) ([]DayAverage, error)
}

type dashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository constructs repository.
func NewDashboardRepository(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{pool: pool}
}

func (r *dashboardRepository) Summary(ctx context.Context) (*DashboardSummary, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM tickets),
            (SELECT COUNT(*) FROM tickets WHERE status = 'Open'),
            (SELECT COUNT(*) FROM tickets WHERE status = 'Resolved' AND DATE(resolved_at) = CURRENT_DATE),
            (SELECT COUNT(*) FROM customers)`
	var summary DashboardSummary
	if err := r.pool.QueryRow(ctx, query).Scan(
		&summary.TotalTickets,
		&summary.OpenTickets,
		&summary.ResolvedToday,
		&summary.TotalCustomers,
	); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *dashboardRepository) RecentTickets(ctx context.Context, limit int) ([]domain.Ticket, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
        SELECT id, title, description, priority, category, status, customer_id, assignee_id, created_at, resolved_at
        FROM tickets ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *dashboardRepository) TicketsByMonth(ctx context.Context) ([]MonthBucket, error) {
	const query = `
        SELECT DATE_TRUNC('month', created_at) AS month, COUNT(*)
        FROM tickets
        GROUP BY month
        ORDER BY month`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MonthBucket
	for rows.Next() {
		var bucket MonthBucket
		if err := rows.Scan(&bucket.Month, &bucket.Count); err != nil {
			return nil, err
		}
		result = append(result, bucket)
	}
	return result, rows.Err()
}

func (r *dashboardRepository) TicketsByPriority(ctx context.Context) ([]PriorityBucket, error) {
	const query = `
        SELECT priority, COUNT(*)
        FROM tickets
        GROUP BY priority`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PriorityBucket
	for rows.Next() {
		var bucket PriorityBucket
		if err := rows.Scan(&bucket.Priority, &bucket.Count); err != nil {
			return nil, err
		}
		result = append(result, bucket)
	}
	return result, rows.Err()
}

// AverageResponseTime buckets resolution time by the day of week the ticket
// was created on. Only resolved tickets with a stamped resolved_at contribute.
func (r *dashboardRepository) AverageResponseTime(ctx context.Context) ([]DayAverage, error) {
	const query = `
        SELECT
            TO_CHAR(created_at, 'Dy') AS day,
            EXTRACT(DOW FROM created_at)::int AS day_num,
            AVG(EXTRACT(EPOCH FROM (resolved_at - created_at)) / 3600) AS avg_hours
        FROM tickets
        WHERE status = 'Resolved' AND resolved_at IS NOT NULL
        GROUP BY day, day_num
        ORDER BY day_num`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DayAverage
	for rows.Next() {
		var avg DayAverage
		if err := rows.Scan(&avg.Day, &avg.DayNum, &avg.AvgHours); err != nil {
			return nil, err
		}
		result = append(result, avg)
	}
	return result, rows.Err()
}
