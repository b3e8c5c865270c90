package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tickety/tickety-server/internal/domain"
)

// PasswordResetRepository manages password reset token persistence. Tokens are
// single-use: consumption deletes the row.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *domain.PasswordReset) error
	GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error)
	Delete(ctx context.Context, id string) error
}

type passwordResetRepository struct {
	pool *pgxpool.Pool
}

// NewPasswordResetRepository constructs repository.
func NewPasswordResetRepository(pool *pgxpool.Pool) PasswordResetRepository {
	return &passwordResetRepository{pool: pool}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	const query = `
        INSERT INTO password_resets (customer_id, token, expires_at)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		reset.CustomerID,
		reset.Token,
		reset.ExpiresAt,
	).Scan(&reset.ID, &reset.CreatedAt)
}

func (r *passwordResetRepository) GetByToken(ctx context.Context, tokenStr string) (*domain.PasswordReset, error) {
	const query = `
        SELECT id, customer_id, token, expires_at, created_at
        FROM password_resets WHERE token=$1`
	var reset domain.PasswordReset
	if err := r.pool.QueryRow(ctx, query, tokenStr).Scan(
		&reset.ID,
		&reset.CustomerID,
		&reset.Token,
		&reset.ExpiresAt,
		&reset.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM password_resets WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
