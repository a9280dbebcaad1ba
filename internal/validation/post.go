package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"inkwell/internal/models"
)

// PostInput collects the writable post fields for validation.
type PostInput struct {
	Title    string
	Content  string
	Excerpt  string
	Category string
	Status   string
}

// ValidatePost checks a full post payload and returns one message per
// failing field, suitable for the response envelope's errors array.
func ValidatePost(in PostInput) []string {
	var errs []string

	title := strings.TrimSpace(in.Title)
	if n := utf8.RuneCountInString(title); n < 5 || n > 200 {
		errs = append(errs, "title must be between 5 and 200 characters")
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Content)) < 10 {
		errs = append(errs, "content must be at least 10 characters")
	}

	if utf8.RuneCountInString(in.Excerpt) > 300 {
		errs = append(errs, "excerpt must not exceed 300 characters")
	}

	if !models.ValidCategory(in.Category) {
		errs = append(errs, fmt.Sprintf("category must be one of: %s", strings.Join(models.Categories, ", ")))
	}

	if in.Status != "" && !validStatus(in.Status) {
		errs = append(errs, "status must be one of: draft, published, archived")
	}

	return errs
}

func validStatus(s string) bool {
	switch models.PostStatus(s) {
	case models.StatusDraft, models.StatusPublished, models.StatusArchived:
		return true
	}
	return false
}

// ValidateComment checks comment content length.
func ValidateComment(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("comment content is required")
	}

	if utf8.RuneCountInString(trimmed) > models.MaxCommentLength {
		return fmt.Errorf("comment must not exceed %d characters", models.MaxCommentLength)
	}

	return nil
}
