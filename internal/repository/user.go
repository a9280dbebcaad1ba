package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when no user matches, so callers can treat
// absence as a normal outcome during registration and login.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetProfile loads a user together with follower/following lists and the
// liked/bookmarked post id sets, all derived from the join tables.
func (r *userRepository) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	if err := db.Table("users").
		Joins("JOIN follows f ON f.follower_id = users.id").
		Where("f.followee_id = ? AND users.deleted_at IS NULL", id).
		Find(&user.Followers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := db.Table("users").
		Joins("JOIN follows f ON f.followee_id = users.id").
		Where("f.follower_id = ? AND users.deleted_at IS NULL", id).
		Find(&user.Following).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	user.FollowersCount = int64(len(user.Followers))
	user.FollowingCount = int64(len(user.Following))

	if err := db.Model(&models.Like{}).
		Where("user_id = ?", id).
		Order("created_at DESC").
		Pluck("post_id", &user.LikedPostIDs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := db.Model(&models.Bookmark{}).
		Where("user_id = ?", id).
		Order("created_at DESC").
		Pluck("post_id", &user.BookmarkedPostIDs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists with this email")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Email already in use")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Order("id").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
