package models

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NewValidationError("bad input"), fiber.StatusBadRequest},
		{NewUnauthorizedError("no token"), fiber.StatusUnauthorized},
		{NewForbiddenError("not yours"), fiber.StatusForbidden},
		{NewNotFoundError("post", 42), fiber.StatusNotFound},
		{NewConflictError("email already registered"), fiber.StatusConflict},
		{NewInternalError(errors.New("db down")), fiber.StatusInternalServerError},
		{errors.New("raw"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusForError(tt.err))
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
}

func TestFieldValidationError(t *testing.T) {
	err := NewFieldValidationError("invalid post", "title must be at least 5 characters", "category is invalid")
	assert.Len(t, err.Fields, 2)
	assert.Equal(t, CodeValidation, err.Code)
}
