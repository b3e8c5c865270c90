package service

import (
	"context"
	"strings"

	"github.com/tickety/tickety-server/internal/auth"
	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/repository"
	"github.com/tickety/tickety-server/internal/storage"
	apperrors "github.com/tickety/tickety-server/pkg/util"
)

// CommentService handles ticket comments and attachments. Every operation is
// gated by the parent ticket's ownership predicate; comment-level attachments
// are two-hop, resolving the comment to its ticket first.
type CommentService struct {
	tickets     repository.TicketRepository
	comments    repository.CommentRepository
	attachments repository.AttachmentRepository
}

// CommentDependencies bundles repositories for comment service.
type CommentDependencies struct {
	TicketRepo     repository.TicketRepository
	CommentRepo    repository.CommentRepository
	AttachmentRepo repository.AttachmentRepository
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		tickets:     deps.TicketRepo,
		comments:    deps.CommentRepo,
		attachments: deps.AttachmentRepo,
	}
}

// AddComment appends a comment to a ticket thread. The author column is set
// from the verified principal, never from the request body.
func (s *CommentService) AddComment(ctx context.Context, principal *auth.Principal, ticketID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	if _, err := s.authorizeTicket(ctx, principal, ticketID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		TicketID: ticketID,
		Content:  content,
	}
	switch principal.Role {
	case domain.RoleCustomer:
		comment.CustomerID = &principal.Customer.ID
	case domain.RoleAssignee:
		comment.AssigneeID = &principal.Assignee.ID
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the chronological thread for an authorized caller.
func (s *CommentService) ListComments(ctx context.Context, principal *auth.Principal, ticketID string) ([]domain.CommentWithAuthor, error) {
	if _, err := s.authorizeTicket(ctx, principal, ticketID); err != nil {
		return nil, err
	}
	return s.comments.ListByTicket(ctx, ticketID)
}

// AttachToTicket records upload metadata for a ticket attachment.
func (s *CommentService) AttachToTicket(ctx context.Context, principal *auth.Principal, ticketID string, file *storage.StoredFile) (*domain.Attachment, error) {
	if _, err := s.authorizeTicket(ctx, principal, ticketID); err != nil {
		return nil, err
	}
	return s.createAttachment(ctx, principal, domain.AttachmentParentTicket, ticketID, file)
}

// ListTicketAttachments lists attachment metadata on a ticket.
func (s *CommentService) ListTicketAttachments(ctx context.Context, principal *auth.Principal, ticketID string) ([]domain.Attachment, error) {
	if _, err := s.authorizeTicket(ctx, principal, ticketID); err != nil {
		return nil, err
	}
	return s.attachments.ListByParent(ctx, domain.AttachmentParentTicket, ticketID)
}

// AttachToComment records upload metadata for a comment attachment after the
// two-hop ownership check.
func (s *CommentService) AttachToComment(ctx context.Context, principal *auth.Principal, commentID string, file *storage.StoredFile) (*domain.Attachment, error) {
	if err := s.authorizeComment(ctx, principal, commentID); err != nil {
		return nil, err
	}
	return s.createAttachment(ctx, principal, domain.AttachmentParentComment, commentID, file)
}

// ListCommentAttachments lists attachment metadata on a comment after the
// two-hop ownership check.
func (s *CommentService) ListCommentAttachments(ctx context.Context, principal *auth.Principal, commentID string) ([]domain.Attachment, error) {
	if err := s.authorizeComment(ctx, principal, commentID); err != nil {
		return nil, err
	}
	return s.attachments.ListByParent(ctx, domain.AttachmentParentComment, commentID)
}

func (s *CommentService) createAttachment(ctx context.Context, principal *auth.Principal, parent domain.AttachmentParent, parentID string, file *storage.StoredFile) (*domain.Attachment, error) {
	attachment := &domain.Attachment{
		ParentType:   parent,
		ParentID:     parentID,
		StoredName:   file.StoredName,
		OriginalName: file.OriginalName,
		MimeType:     file.MimeType,
		SizeBytes:    file.SizeBytes,
		UploadedBy:   principal.SubjectID(),
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

func (s *CommentService) authorizeTicket(ctx context.Context, principal *auth.Principal, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !auth.CanAccessTicket(principal, ticket) {
		return nil, apperrors.NewForbidden("not authorized for this ticket")
	}
	return ticket, nil
}

func (s *CommentService) authorizeComment(ctx context.Context, principal *auth.Principal, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return apperrors.MapError(err)
	}
	_, err = s.authorizeTicket(ctx, principal, comment.TicketID)
	return err
}
