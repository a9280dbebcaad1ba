package server

import (
	"io"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/upload/image with a single multipart file
// under the "image" field.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("No image file provided, use the 'image' field"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	result, err := s.imageService.Upload(c.Context(), service.UploadImageInput{
		UserID:   userID,
		Filename: fileHeader.Filename,
		Content:  content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusCreated, "Image uploaded successfully", result)
}

// DeleteImage handles DELETE /api/upload/image/:filename
func (s *Server) DeleteImage(c *fiber.Ctx) error {
	filename := c.Params("filename")

	if err := s.imageService.Delete(c.Context(), filename); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "Image deleted successfully", nil)
}
