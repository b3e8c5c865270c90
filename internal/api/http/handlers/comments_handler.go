package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tickety/tickety-server/internal/api/dto"
	"github.com/tickety/tickety-server/internal/auth"
	"github.com/tickety/tickety-server/internal/service"
	apperrors "github.com/tickety/tickety-server/pkg/util"
)

// CommentsHandler manages ticket comment endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// List handles GET /tickets/:id/comments.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	comments, err := h.service.ListComments(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.FromCommentWithAuthor(&comments[i]))
	}
	return c.JSON(items)
}

// Add handles POST /tickets/:id/comments.
func (h *CommentsHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.service.AddComment(c.UserContext(), principal, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":        comment.ID,
		"ticketId":  comment.TicketID,
		"content":   comment.Content,
		"createdAt": comment.CreatedAt,
	})
}
