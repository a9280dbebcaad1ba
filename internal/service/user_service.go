package service

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type UserService struct {
	userRepo     repository.UserRepository
	relationRepo repository.RelationRepository
}

// UpdateProfileInput carries profile fields; empty fields stay unchanged.
type UpdateProfileInput struct {
	UserID uint
	Name   string
	Bio    string
	Avatar string
}

func NewUserService(userRepo repository.UserRepository, relationRepo repository.RelationRepository) *UserService {
	return &UserService{userRepo: userRepo, relationRepo: relationRepo}
}

// GetProfile returns a user with follower/following lists and liked/
// bookmarked post ids, cache-aside. Follow toggles and profile updates
// invalidate the entry.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	key := cache.UserKey(id)
	var cached models.User
	if cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, key, user, cache.UserTTL)
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = in.Name
	}
	if in.Bio != "" {
		if err := validation.ValidateBio(in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleFollow flips the follow edge from follower to the target user and
// returns whether the follower is following afterwards.
func (s *UserService) ToggleFollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return false, err
	}
	return s.relationRepo.ToggleFollow(ctx, followerID, followeeID)
}
