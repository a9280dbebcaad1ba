package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postBody struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"image"`
	Status   string   `json:"status"`
	Featured *bool    `json:"featured"`
}

// GetPosts handles GET /api/posts with filter, sort and pagination query
// parameters. Anonymous and authenticated viewers share the route; the
// viewer only affects the isLiked/isBookmarked flags.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, limit := parsePage(c)

	var featured *bool
	if c.Query("featured") == "true" {
		v := true
		featured = &v
	}

	result, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Page:     page,
		Limit:    limit,
		Category: c.Query("category"),
		AuthorID: uint(c.QueryInt("author", 0)),
		Featured: featured,
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		ViewerID: s.optionalUserID(c),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.SendSuccess(c, fiber.StatusOK, "Posts retrieved", fiber.Map{
		"posts":      result.Posts,
		"pagination": result.Meta,
	})
}

// GetPost handles GET /api/posts/:id and counts the view.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id, s.optionalUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "Post retrieved", fiber.Map{"post": post})
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req postBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Category: req.Category,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
		Status:   req.Status,
		Featured: req.Featured != nil && *req.Featured,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusCreated, "Post created successfully", fiber.Map{"post": post})
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req postBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:   userID,
		PostID:   postID,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Category: req.Category,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
		Status:   req.Status,
		Featured: req.Featured,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "Post updated successfully", fiber.Map{"post": post})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), userID, postID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "Post deleted successfully", nil)
}

// ToggleLike handles PUT /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	liked, post, err := s.postService.ToggleLike(c.Context(), userID, postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	return models.SendSuccess(c, fiber.StatusOK, message, fiber.Map{
		"isLiked":    liked,
		"likesCount": post.LikesCount,
	})
}

// ToggleBookmark handles PUT /api/posts/:id/bookmark
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	bookmarked, post, err := s.postService.ToggleBookmark(c.Context(), userID, postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	message := "Bookmark removed"
	if bookmarked {
		message = "Post bookmarked"
	}
	return models.SendSuccess(c, fiber.StatusOK, message, fiber.Map{
		"isBookmarked":   bookmarked,
		"bookmarksCount": post.BookmarksCount,
	})
}

// GetMyPosts handles GET /api/posts/user/my-posts. All of the viewer's own
// posts regardless of status, unless ?status= narrows it.
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit := parsePage(c)

	result, err := s.postService.GetUserPosts(c.Context(), userID, page, limit, c.Query("status"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "Posts retrieved", fiber.Map{
		"posts":      result.Posts,
		"pagination": result.Meta,
	})
}

// GetLikedPosts handles GET /api/posts/user/liked
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit := parsePage(c)

	result, err := s.postService.GetLikedPosts(c.Context(), userID, page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "Liked posts retrieved", fiber.Map{
		"posts":      result.Posts,
		"pagination": result.Meta,
	})
}

// GetBookmarkedPosts handles GET /api/posts/user/bookmarked
func (s *Server) GetBookmarkedPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, limit := parsePage(c)

	result, err := s.postService.GetBookmarkedPosts(c.Context(), userID, page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.SendSuccess(c, fiber.StatusOK, "Bookmarked posts retrieved", fiber.Map{
		"posts":      result.Posts,
		"pagination": result.Meta,
	})
}
