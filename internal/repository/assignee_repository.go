package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tickety/tickety-server/internal/domain"
)

// AssigneeRepository defines persistence access for support agents.
type AssigneeRepository interface {
	Create(ctx context.Context, assignee *domain.Assignee) error
	Update(ctx context.Context, assignee *domain.Assignee) error
	GetByID(ctx context.Context, id string) (*domain.Assignee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Assignee, error)
	ListAll(ctx context.Context) ([]domain.Assignee, error)
}

type assigneeRepository struct {
	pool *pgxpool.Pool
}

// NewAssigneeRepository returns a Postgres-backed implementation.
func NewAssigneeRepository(pool *pgxpool.Pool) AssigneeRepository {
	return &assigneeRepository{pool: pool}
}

func (r *assigneeRepository) Create(ctx context.Context, assignee *domain.Assignee) error {
	const query = `
        INSERT INTO assignees (full_name, email, password_hash, contact_number, address)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		assignee.FullName,
		assignee.Email,
		assignee.PasswordHash,
		assignee.ContactNumber,
		assignee.Address,
	).Scan(&assignee.ID, &assignee.CreatedAt, &assignee.UpdatedAt)
}

func (r *assigneeRepository) Update(ctx context.Context, assignee *domain.Assignee) error {
	const query = `
        UPDATE assignees SET full_name=$1, email=$2, password_hash=$3, contact_number=$4, address=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		assignee.FullName,
		assignee.Email,
		assignee.PasswordHash,
		assignee.ContactNumber,
		assignee.Address,
		assignee.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assigneeRepository) GetByID(ctx context.Context, id string) (*domain.Assignee, error) {
	const query = `
        SELECT id, full_name, email, password_hash, contact_number, address, created_at, updated_at
        FROM assignees WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *assigneeRepository) GetByEmail(ctx context.Context, email string) (*domain.Assignee, error) {
	const query = `
        SELECT id, full_name, email, password_hash, contact_number, address, created_at, updated_at
        FROM assignees WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *assigneeRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Assignee, error) {
	var assignee domain.Assignee
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&assignee.ID,
		&assignee.FullName,
		&assignee.Email,
		&assignee.PasswordHash,
		&assignee.ContactNumber,
		&assignee.Address,
		&assignee.CreatedAt,
		&assignee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &assignee, nil
}

func (r *assigneeRepository) ListAll(ctx context.Context) ([]domain.Assignee, error) {
	const query = `
        SELECT id, full_name, email, password_hash, contact_number, address, created_at, updated_at
        FROM assignees ORDER BY full_name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Assignee
	for rows.Next() {
		var assignee domain.Assignee
		if err := rows.Scan(
			&assignee.ID,
			&assignee.FullName,
			&assignee.Email,
			&assignee.PasswordHash,
			&assignee.ContactNumber,
			&assignee.Address,
			&assignee.CreatedAt,
			&assignee.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, assignee)
	}
	return result, rows.Err()
}
