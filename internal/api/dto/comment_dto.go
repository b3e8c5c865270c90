package dto

import (
	"time"

	"github.com/tickety/tickety-server/internal/domain"
)

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse is a thread entry with the author resolved to a display
// name and role tag.
type CommentResponse struct {
	ID         string      `json:"id"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"createdAt"`
	Author     string      `json:"author"`
	AuthorType domain.Role `json:"authorType"`
}

// AttachmentResponse is uploaded-file metadata.
type AttachmentResponse struct {
	ID           string    `json:"id"`
	StoredName   string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	SizeBytes    int64     `json:"size"`
	UploadedBy   string    `json:"uploadedBy"`
	UploadedAt   time.Time `json:"uploadedAt"`
	URL          string    `json:"url"`
}

// FromCommentWithAuthor maps the joined comment row.
func FromCommentWithAuthor(row *domain.CommentWithAuthor) CommentResponse {
	return CommentResponse{
		ID:         row.ID,
		Content:    row.Content,
		CreatedAt:  row.CreatedAt,
		Author:     row.AuthorName,
		AuthorType: row.AuthorRole(),
	}
}

// FromAttachment maps attachment metadata; url points into the static upload
// prefix.
func FromAttachment(attachment *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:           attachment.ID,
		StoredName:   attachment.StoredName,
		OriginalName: attachment.OriginalName,
		MimeType:     attachment.MimeType,
		SizeBytes:    attachment.SizeBytes,
		UploadedBy:   attachment.UploadedBy,
		UploadedAt:   attachment.UploadedAt,
		URL:          "/uploads/" + attachment.StoredName,
	}
}
