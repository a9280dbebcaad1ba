package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments (public).
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "Comments retrieved", fiber.Map{
		"comments": comments,
	})
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.AddComment(c.Context(), postID, userID, req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusCreated, "Comment added successfully", fiber.Map{
		"comment": comment,
	})
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId", "comment ID")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), postID, commentID, userID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "Comment deleted successfully", nil)
}
