package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tickety/tickety-server/internal/domain"
)

// CommentRepository manages threaded ticket comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.CommentWithAuthor, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (ticket_id, customer_id, assignee_id, content)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.TicketID,
		comment.CustomerID,
		comment.AssigneeID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	const query = `
        SELECT id, ticket_id, customer_id, assignee_id, content, created_at
        FROM comments WHERE id=$1`
	var comment domain.Comment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.TicketID,
		&comment.CustomerID,
		&comment.AssigneeID,
		&comment.Content,
		&comment.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTicket returns the chronological thread with each row resolved to a
// display name by joining whichever author column is non-null.
func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.CommentWithAuthor, error) {
	const query = `
        SELECT c.id, c.ticket_id, c.customer_id, c.assignee_id, c.content, c.created_at,
               COALESCE(cu.full_name, a.full_name, 'Unknown')
        FROM comments c
        LEFT JOIN customers cu ON c.customer_id = cu.id
        LEFT JOIN assignees a ON c.assignee_id = a.id
        WHERE c.ticket_id=$1
        ORDER BY c.created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CommentWithAuthor
	for rows.Next() {
		var row domain.CommentWithAuthor
		if err := rows.Scan(
			&row.ID,
			&row.TicketID,
			&row.CustomerID,
			&row.AssigneeID,
			&row.Content,
			&row.CreatedAt,
			&row.AuthorName,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
