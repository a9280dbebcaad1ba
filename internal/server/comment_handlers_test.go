package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestCommentEndpoints(t *testing.T) {
	ts := newTestServer(t)
	authorToken, _ := ts.register(t, "author")
	commenterToken, _ := ts.register(t, "commenter")
	strangerToken, _ := ts.register(t, "stranger")
	postID := ts.createPost(t, authorToken, "A commentable post title")

	commentsPath := fmt.Sprintf("/api/posts/%d/comments", postID)

	t.Run("CreateRequiresAuth", func(t *testing.T) {
		status, _ := ts.request(t, http.MethodPost, commentsPath, "", fiber.Map{"content": "hi"})
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("ContentValidation", func(t *testing.T) {
		status, _ := ts.request(t, http.MethodPost, commentsPath, commenterToken, fiber.Map{
			"content": "   ",
		})
		require.Equal(t, http.StatusBadRequest, status)

		status, _ = ts.request(t, http.MethodPost, commentsPath, commenterToken, fiber.Map{
			"content": strings.Repeat("x", 501),
		})
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("MissingPost", func(t *testing.T) {
		status, _ := ts.request(t, http.MethodPost, "/api/posts/9999/comments", commenterToken, fiber.Map{
			"content": "hello",
		})
		require.Equal(t, http.StatusNotFound, status)
	})

	var commentID uint
	t.Run("CreateAndList", func(t *testing.T) {
		status, body := ts.request(t, http.MethodPost, commentsPath, commenterToken, fiber.Map{
			"content": "Great write-up!",
		})
		require.Equal(t, http.StatusCreated, status)
		comment := data(t, body)["comment"].(map[string]interface{})
		commentID = uint(comment["id"].(float64))
		commentAuthor := comment["user"].(map[string]interface{})
		require.Equal(t, "commenter", commentAuthor["name"])

		status, body = ts.request(t, http.MethodGet, commentsPath, "", nil)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, data(t, body)["comments"].([]interface{}), 1)
	})

	t.Run("DeleteGuards", func(t *testing.T) {
		deletePath := fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID)

		status, _ := ts.request(t, http.MethodDelete, deletePath, strangerToken, nil)
		require.Equal(t, http.StatusForbidden, status)

		// Comment addressed through the wrong post reads as absent.
		otherPostID := ts.createPost(t, authorToken, "Another post title here")
		wrongPath := fmt.Sprintf("/api/posts/%d/comments/%d", otherPostID, commentID)
		status, _ = ts.request(t, http.MethodDelete, wrongPath, commenterToken, nil)
		require.Equal(t, http.StatusNotFound, status)

		status, _ = ts.request(t, http.MethodDelete, deletePath, commenterToken, nil)
		require.Equal(t, http.StatusOK, status)

		status, body := ts.request(t, http.MethodGet, commentsPath, "", nil)
		require.Equal(t, http.StatusOK, status)
		require.Empty(t, data(t, body)["comments"])
	})
}
