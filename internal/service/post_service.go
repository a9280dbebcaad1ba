// Package service holds the business rules between the HTTP handlers and the
// repositories: input validation, ownership checks and cache policy.
package service

import (
	"context"
	"fmt"

	"inkwell/internal/cache"
	"inkwell/internal/featureflags"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type PostService struct {
	postRepo     repository.PostRepository
	relationRepo repository.RelationRepository
	flags        *featureflags.Manager
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	Excerpt  string
	Category string
	Tags     []string
	ImageURL string
	Status   string
	Featured bool
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Content  string
	Excerpt  string
	Category string
	Tags     []string
	ImageURL string
	Status   string
	Featured *bool
}

type ListPostsInput struct {
	Page     int
	Limit    int
	Status   string
	Category string
	AuthorID uint
	Featured *bool
	Search   string
	Sort     string
	ViewerID uint
}

// PostPage is one page of posts plus its pagination metadata. It is also the
// value cached for anonymous public listings.
type PostPage struct {
	Posts []*models.Post `json:"posts"`
	Meta  *PageMeta      `json:"meta"`
}

func NewPostService(
	postRepo repository.PostRepository,
	relationRepo repository.RelationRepository,
	flags *featureflags.Manager,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		relationRepo: relationRepo,
		flags:        flags,
		isAdmin:      isAdmin,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Status == "" {
		in.Status = string(models.StatusPublished)
	}
	errs := validation.ValidatePost(validation.PostInput{
		Title:    in.Title,
		Content:  in.Content,
		Excerpt:  in.Excerpt,
		Category: in.Category,
		Status:   in.Status,
	})
	if len(errs) > 0 {
		return nil, models.NewFieldValidationError("Validation failed", errs...)
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		Excerpt:  in.Excerpt,
		Category: in.Category,
		Tags:     in.Tags,
		ImageURL: in.ImageURL,
		UserID:   in.UserID,
		Status:   models.PostStatus(in.Status),
		Featured: in.Featured,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// ListPosts returns one page of the public (or filtered) post listing.
// Anonymous pages are served through the cache when the post_list_cache flag
// is on; personalized pages always hit the database because the viewer flags
// differ per user.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*PostPage, error) {
	page, limit := normalizePage(in.Page, in.Limit)
	if in.Status == "" {
		in.Status = string(models.StatusPublished)
	}

	cacheable := in.ViewerID == 0 && s.flags.Enabled(featureflags.PostListCache, 0)
	key := cache.PostListKey(listFingerprint(in, page, limit))
	if cacheable {
		var cached PostPage
		if cache.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	filter := repository.PostFilter{
		Status:   in.Status,
		Category: in.Category,
		AuthorID: in.AuthorID,
		Featured: in.Featured,
		Search:   in.Search,
		Sort:     in.Sort,
	}
	posts, total, err := s.postRepo.List(ctx, filter, limit, (page-1)*limit, in.ViewerID)
	if err != nil {
		return nil, err
	}

	result := &PostPage{Posts: posts, Meta: NewPageMeta(page, limit, total)}
	if cacheable {
		cache.SetJSON(ctx, key, result, cache.PostListTTL)
	}
	return result, nil
}

// GetPost registers a view, then returns the post with counts and the
// viewer's like/bookmark flags.
func (s *PostService) GetPost(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, id, viewerID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnership(ctx, post.UserID, in.UserID, "You are not allowed to update this post"); err != nil {
		return nil, err
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Content != "" {
		post.Content = in.Content
		// Force excerpt re-derivation unless the caller supplied one.
		if in.Excerpt == "" {
			post.Excerpt = ""
		}
	}
	if in.Excerpt != "" {
		post.Excerpt = in.Excerpt
	}
	if in.Category != "" {
		post.Category = in.Category
	}
	if in.Tags != nil {
		post.Tags = in.Tags
	}
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}
	if in.Status != "" {
		post.Status = models.PostStatus(in.Status)
	}
	if in.Featured != nil {
		post.Featured = *in.Featured
	}

	errs := validation.ValidatePost(validation.PostInput{
		Title:    post.Title,
		Content:  post.Content,
		Excerpt:  post.Excerpt,
		Category: post.Category,
		Status:   string(post.Status),
	})
	if len(errs) > 0 {
		return nil, models.NewFieldValidationError("Validation failed", errs...)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}
	if err := s.requireOwnership(ctx, post.UserID, userID, "You are not allowed to delete this post"); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// GetUserPosts lists the viewer's own posts across all statuses unless a
// status filter is given.
func (s *PostService) GetUserPosts(ctx context.Context, userID uint, page, limit int, status string) (*PostPage, error) {
	page, limit = normalizePage(page, limit)
	posts, total, err := s.postRepo.List(ctx, repository.PostFilter{
		Status:   status,
		AuthorID: userID,
	}, limit, (page-1)*limit, userID)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Meta: NewPageMeta(page, limit, total)}, nil
}

func (s *PostService) GetLikedPosts(ctx context.Context, userID uint, page, limit int) (*PostPage, error) {
	page, limit = normalizePage(page, limit)
	posts, total, err := s.postRepo.ListLiked(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Meta: NewPageMeta(page, limit, total)}, nil
}

func (s *PostService) GetBookmarkedPosts(ctx context.Context, userID uint, page, limit int) (*PostPage, error) {
	page, limit = normalizePage(page, limit)
	posts, total, err := s.postRepo.ListBookmarked(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Meta: NewPageMeta(page, limit, total)}, nil
}

// ToggleLike flips the viewer's like on a post and returns the new state
// together with the refreshed post.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, *models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return false, nil, err
	}
	liked, err := s.relationRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return false, nil, err
	}
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return false, nil, err
	}
	return liked, post, nil
}

func (s *PostService) ToggleBookmark(ctx context.Context, userID, postID uint) (bool, *models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return false, nil, err
	}
	bookmarked, err := s.relationRepo.ToggleBookmark(ctx, userID, postID)
	if err != nil {
		return false, nil, err
	}
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return false, nil, err
	}
	return bookmarked, post, nil
}

// requireOwnership enforces the actor == author rule, with admin override.
// Callers must resolve existence first so missing entities surface as 404,
// not 403.
func (s *PostService) requireOwnership(ctx context.Context, ownerID, actorID uint, message string) error {
	if ownerID == actorID {
		return nil
	}
	admin, err := s.isAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewForbiddenError(message)
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

func listFingerprint(in ListPostsInput, page, limit int) string {
	featured := ""
	if in.Featured != nil {
		featured = fmt.Sprintf("%t", *in.Featured)
	}
	return fmt.Sprintf("%s:%s:%d:%s:%s:%s:%d:%d",
		in.Status, in.Category, in.AuthorID, featured, in.Search, in.Sort, page, limit)
}
