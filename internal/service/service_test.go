package service

import (
	"context"
	"fmt"
	"testing"

	"inkwell/internal/featureflags"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires real sqlite-backed repositories into the services under test.
type testEnv struct {
	db       *gorm.DB
	posts    *PostService
	comments *CommentService
	users    *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.OpenTestDB(t)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	relationRepo := repository.NewRelationRepository(db)

	isAdmin := func(ctx context.Context, userID uint) (bool, error) {
		u, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return false, err
		}
		return u.IsAdmin(), nil
	}

	flags := featureflags.NewManager("")
	return &testEnv{
		db:       db,
		posts:    NewPostService(postRepo, relationRepo, flags, isAdmin),
		comments: NewCommentService(commentRepo, postRepo, isAdmin),
		users:    NewUserService(userRepo, relationRepo),
	}
}

func seedUser(t *testing.T, db *gorm.DB, name string, mutate ...func(*models.User)) *models.User {
	t.Helper()
	u := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hash",
		Role:     models.RoleUser,
		IsActive: true,
	}
	for _, m := range mutate {
		m(u)
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, author *models.User, mutate ...func(*models.Post)) *models.Post {
	t.Helper()
	p := &models.Post{
		Title:    "Seed post title",
		Content:  "Seed post content that is long enough to pass validation.",
		Category: "Technology",
		UserID:   author.ID,
		Status:   models.StatusPublished,
	}
	for _, m := range mutate {
		m(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func requireAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
	return appErr
}
