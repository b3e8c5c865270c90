package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tickety/tickety-server/internal/domain"
)

// TicketWithCustomer carries a ticket joined with its owner's identity for
// the unscoped admin listing.
type TicketWithCustomer struct {
	domain.Ticket
	CustomerName  string
	CustomerEmail string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Ticket, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]domain.Ticket, error)
	ListAllWithCustomer(ctx context.Context) ([]TicketWithCustomer, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, priority, category, status, customer_id, assignee_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Priority,
		ticket.Category,
		ticket.Status,
		ticket.CustomerID,
		ticket.AssigneeID,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, title, description, priority, category, status, customer_id, assignee_id, created_at, resolved_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Priority,
		&ticket.Category,
		&ticket.Status,
		&ticket.CustomerID,
		&ticket.AssigneeID,
		&ticket.CreatedAt,
		&ticket.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Ticket, error) {
	const query = `
        SELECT id, title, description, priority, category, status, customer_id, assignee_id, created_at, resolved_at
        FROM tickets WHERE customer_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, customerID)
}

func (r *ticketRepository) ListByAssignee(ctx context.Context, assigneeID string) ([]domain.Ticket, error) {
	const query = `
        SELECT id, title, description, priority, category, status, customer_id, assignee_id, created_at, resolved_at
        FROM tickets WHERE assignee_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, assigneeID)
}

func (r *ticketRepository) list(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListAllWithCustomer(ctx context.Context) ([]TicketWithCustomer, error) {
	const query = `
        SELECT t.id, t.title, t.description, t.priority, t.category, t.status,
               t.customer_id, t.assignee_id, t.created_at, t.resolved_at,
               c.full_name, c.email
        FROM tickets t
        JOIN customers c ON t.customer_id = c.id
        ORDER BY t.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TicketWithCustomer
	for rows.Next() {
		var row TicketWithCustomer
		if err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Description,
			&row.Priority,
			&row.Category,
			&row.Status,
			&row.CustomerID,
			&row.AssigneeID,
			&row.CreatedAt,
			&row.ResolvedAt,
			&row.CustomerName,
			&row.CustomerEmail,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// UpdateStatus writes the new status. Setting Resolved additionally stamps
// resolved_at server-side; any other status leaves resolved_at untouched.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	query := `UPDATE tickets SET status=$1 WHERE id=$2`
	if status == domain.TicketStatusResolved {
		query = `UPDATE tickets SET status=$1, resolved_at=NOW() WHERE id=$2`
	}
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Priority,
			&ticket.Category,
			&ticket.Status,
			&ticket.CustomerID,
			&ticket.AssigneeID,
			&ticket.CreatedAt,
			&ticket.ResolvedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
