package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tickety/tickety-server/internal/api/dto"
	"github.com/tickety/tickety-server/internal/auth"
	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/service"
	"github.com/tickety/tickety-server/internal/storage"
	apperrors "github.com/tickety/tickety-server/pkg/util"
)

// AttachmentsHandler manages file uploads on tickets and comments. The binary
// streams to disk first; the metadata row is written afterwards.
type AttachmentsHandler struct {
	service *service.CommentService
	store   *storage.DiskStore
}

// NewAttachmentsHandler constructs handler.
func NewAttachmentsHandler(commentService *service.CommentService, store *storage.DiskStore) *AttachmentsHandler {
	return &AttachmentsHandler{service: commentService, store: store}
}

// UploadToTicket handles POST /tickets/:id/attachments.
func (h *AttachmentsHandler) UploadToTicket(c *fiber.Ctx) error {
	return h.upload(c, domain.AttachmentParentTicket)
}

// UploadToComment handles POST /comments/:id/attachments.
func (h *AttachmentsHandler) UploadToComment(c *fiber.Ctx) error {
	return h.upload(c, domain.AttachmentParentComment)
}

// ListForTicket handles GET /tickets/:id/attachments.
func (h *AttachmentsHandler) ListForTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	attachments, err := h.service.ListTicketAttachments(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(attachmentResponses(attachments))
}

// ListForComment handles GET /comments/:id/attachments.
func (h *AttachmentsHandler) ListForComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	attachments, err := h.service.ListCommentAttachments(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(attachmentResponses(attachments))
}

func (h *AttachmentsHandler) upload(c *fiber.Ctx, parent domain.AttachmentParent) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("no file uploaded", nil)
	}

	stored, err := h.store.Save(header)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	var attachment *domain.Attachment
	switch parent {
	case domain.AttachmentParentTicket:
		attachment, err = h.service.AttachToTicket(c.UserContext(), principal, c.Params("id"), stored)
	case domain.AttachmentParentComment:
		attachment, err = h.service.AttachToComment(c.UserContext(), principal, c.Params("id"), stored)
	}
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromAttachment(attachment))
}

func attachmentResponses(attachments []domain.Attachment) []dto.AttachmentResponse {
	items := make([]dto.AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		items = append(items, dto.FromAttachment(&attachments[i]))
	}
	return items
}
