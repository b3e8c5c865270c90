package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tickety/tickety-server/internal/domain"
)

// AttachmentRepository persists upload metadata for tickets and comments. The
// binaries live on disk; only metadata rows go through here.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	ListByParent(ctx context.Context, parent domain.AttachmentParent, parentID string) ([]domain.Attachment, error)
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository constructs repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

func tableFor(parent domain.AttachmentParent) (table, fkColumn string, err error) {
	switch parent {
	case domain.AttachmentParentTicket:
		return "ticket_attachments", "ticket_id", nil
	case domain.AttachmentParentComment:
		return "comment_attachments", "comment_id", nil
	}
	return "", "", fmt.Errorf("unknown attachment parent %q", parent)
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	table, fkColumn, err := tableFor(attachment.ParentType)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
        INSERT INTO %s (%s, stored_name, original_name, mime_type, size_bytes, uploaded_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, uploaded_at`, table, fkColumn)
	return r.pool.QueryRow(ctx, query,
		attachment.ParentID,
		attachment.StoredName,
		attachment.OriginalName,
		attachment.MimeType,
		attachment.SizeBytes,
		attachment.UploadedBy,
	).Scan(&attachment.ID, &attachment.UploadedAt)
}

func (r *attachmentRepository) ListByParent(ctx context.Context, parent domain.AttachmentParent, parentID string) ([]domain.Attachment, error) {
	table, fkColumn, err := tableFor(parent)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
        SELECT id, %s, stored_name, original_name, mime_type, size_bytes, uploaded_by, uploaded_at
        FROM %s WHERE %s=$1 ORDER BY uploaded_at ASC`, fkColumn, table, fkColumn)
	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttachments(rows, parent)
}

func scanAttachments(rows pgx.Rows, parent domain.AttachmentParent) ([]domain.Attachment, error) {
	var result []domain.Attachment
	for rows.Next() {
		attachment := domain.Attachment{ParentType: parent}
		if err := rows.Scan(
			&attachment.ID,
			&attachment.ParentID,
			&attachment.StoredName,
			&attachment.OriginalName,
			&attachment.MimeType,
			&attachment.SizeBytes,
			&attachment.UploadedBy,
			&attachment.UploadedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, rows.Err()
}
