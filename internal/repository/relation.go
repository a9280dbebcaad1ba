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

// RelationRepository is the single write path for membership rows: likes,
// bookmarks and follows. A toggle flips row presence inside one transaction,
// so both "sides" of a relationship always agree — they are the same row.
type RelationRepository interface {
	ToggleLike(ctx context.Context, userID, postID uint) (bool, error)
	ToggleBookmark(ctx context.Context, userID, postID uint) (bool, error)
	ToggleFollow(ctx context.Context, followerID, followeeID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
}

type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository creates a new relation repository
func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

// ToggleLike flips the like row for (userID, postID). Returns true when the
// post is liked after the call.
func (r *relationRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	active, err := r.toggle(ctx,
		&models.Like{UserID: userID, PostID: postID},
		"user_id = ? AND post_id = ?", userID, postID)
	if err != nil {
		return false, err
	}
	observability.RecordToggle("like", active)
	cache.InvalidatePost(ctx, postID)
	return active, nil
}

// ToggleBookmark flips the bookmark row for (userID, postID). Returns true
// when the post is bookmarked after the call.
func (r *relationRepository) ToggleBookmark(ctx context.Context, userID, postID uint) (bool, error) {
	active, err := r.toggle(ctx,
		&models.Bookmark{UserID: userID, PostID: postID},
		"user_id = ? AND post_id = ?", userID, postID)
	if err != nil {
		return false, err
	}
	observability.RecordToggle("bookmark", active)
	cache.InvalidatePost(ctx, postID)
	return active, nil
}

// ToggleFollow flips the follow row from follower to followee. Returns true
// when the follower is following after the call. Self-follows are rejected.
func (r *relationRepository) ToggleFollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if followerID == followeeID {
		return false, models.NewValidationError("You cannot follow yourself")
	}

	active, err := r.toggle(ctx,
		&models.Follow{FollowerID: followerID, FolloweeID: followeeID},
		"follower_id = ? AND followee_id = ?", followerID, followeeID)
	if err != nil {
		return false, err
	}
	observability.RecordToggle("follow", active)
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
	return active, nil
}

func (r *relationRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// toggle tests row presence and flips it. The insert uses ON CONFLICT DO
// NOTHING so concurrent toggles cannot produce duplicate rows; deletes are
// hard deletes since relation rows carry no soft-delete column.
func (r *relationRepository) toggle(ctx context.Context, row interface{}, query string, args ...interface{}) (bool, error) {
	var active bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(row).Where(query, args...).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			active = false
			return tx.Where(query, args...).Delete(row).Error
		}

		active = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return false, err
		}
		return false, models.NewInternalError(err)
	}
	return active, nil
}
