package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows a post listing. Zero values mean "no constraint";
// Category "All" is a sentinel matching every category.
type PostFilter struct {
	Status   string
	Category string
	AuthorID uint
	Featured *bool
	Search   string
	Sort     string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int, viewerID uint) ([]*models.Post, int64, error)
	ListLiked(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error)
	ListBookmarked(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error)
	IncrementViews(ctx context.Context, id uint) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostLists(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	defer observability.TrackQuery("get", "posts")()

	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), viewerID).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.User").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int, viewerID uint) ([]*models.Post, int64, error) {
	defer observability.TrackQuery("list", "posts")()

	var total int64
	if err := r.applyFilters(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	base := r.applyFilters(r.applyPostDetails(r.db.WithContext(ctx), viewerID), filter).
		Preload("User")
	err := r.applySort(base, filter.Sort).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) ListLiked(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	return r.listByRelation(ctx, &models.Like{}, "likes", userID, limit, offset)
}

func (r *postRepository) ListBookmarked(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	return r.listByRelation(ctx, &models.Bookmark{}, "bookmarks", userID, limit, offset)
}

// listByRelation pages through the posts a user has liked or bookmarked,
// most recently toggled first.
func (r *postRepository) listByRelation(ctx context.Context, model interface{}, table string, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	defer observability.TrackQuery("list", table)()

	var total int64
	if err := r.db.WithContext(ctx).Model(model).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Joins("JOIN "+table+" rel ON rel.post_id = posts.id").
		Where("rel.user_id = ?", userID).
		Order("rel.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// applyFilters translates a PostFilter into WHERE clauses. Search is a
// case-insensitive substring match across title, content and excerpt.
func (r *postRepository) applyFilters(db *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.Status != "" {
		db = db.Where("posts.status = ?", filter.Status)
	}
	if filter.Category != "" && filter.Category != "All" {
		db = db.Where("posts.category = ?", filter.Category)
	}
	if filter.AuthorID != 0 {
		db = db.Where("posts.user_id = ?", filter.AuthorID)
	}
	if filter.Featured != nil {
		db = db.Where("posts.featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where(
			"LOWER(posts.title) LIKE LOWER(?) OR LOWER(posts.content) LIKE LOWER(?) OR LOWER(posts.excerpt) LIKE LOWER(?)",
			like, like, like,
		)
	}
	return db
}

// applySort appends the ORDER BY clause for the requested sort type.
// likes_count is a SELECT alias from applyPostDetails and may be referenced
// in ORDER BY within the same query level.
func (r *postRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "oldest":
		return db.Order("posts.created_at ASC")
	case "popular":
		return db.Order("likes_count DESC, posts.views DESC")
	case "trending":
		return db.Order("likes_count DESC, posts.created_at DESC")
	case "title":
		return db.Order("posts.title ASC")
	default: // "newest" and anything unrecognized
		return db.Order("posts.created_at DESC")
	}
}

// applyPostDetails adds subqueries to fetch counts and viewer flags in a
// single query. Anonymous viewers skip the per-viewer aliases and get the
// fields' zero values.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count, " +
		"(SELECT COUNT(*) FROM bookmarks WHERE bookmarks.post_id = posts.id) as bookmarks_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count"

	if viewerID != 0 {
		return db.Select(
			selectQuery+
				", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as is_liked"+
				", EXISTS(SELECT 1 FROM bookmarks WHERE bookmarks.post_id = posts.id AND bookmarks.user_id = ?) as is_bookmarked",
			viewerID, viewerID,
		)
	}

	return db.Select(selectQuery)
}

// IncrementViews bumps the view counter atomically without touching
// updated_at.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes the post and cascades to its relation rows and comments,
// all inside one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, id)
	return nil
}
