package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserByID handles GET /api/auth/users/:id — a public profile with
// follower/following lists and the user's liked/bookmarked post ids.
func (s *Server) GetUserByID(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "User profile", fiber.Map{"user": user})
}

// ToggleFollow handles PUT /api/auth/users/:id/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id", "user ID")
	if err != nil {
		return nil
	}

	following, err := s.userService.ToggleFollow(c.Context(), userID, targetID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	message := "User unfollowed"
	if following {
		message = "User followed"
	}
	return models.SendSuccess(c, fiber.StatusOK, message, fiber.Map{
		"isFollowing": following,
	})
}
