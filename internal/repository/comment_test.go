package repository

import (
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreatePreloadsAuthor(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewCommentRepository(db)
	ctx := testCtx()

	author := seedUser(t, db, "author")
	commenter := seedUser(t, db, "commenter")
	post := seedPost(t, db, author)

	c := &models.Comment{PostID: post.ID, UserID: commenter.ID, Content: "nice one"}
	require.NoError(t, repo.Create(ctx, c))
	require.NotZero(t, c.ID)
	assert.Equal(t, "commenter", c.User.Name)
}

func TestCommentRepository_ListByPostNewestFirst(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewCommentRepository(db)
	ctx := testCtx()

	author := seedUser(t, db, "author")
	post := seedPost(t, db, author)
	otherPost := seedPost(t, db, author)

	require.NoError(t, repo.Create(ctx, &models.Comment{PostID: post.ID, UserID: author.ID, Content: "first"}))
	require.NoError(t, repo.Create(ctx, &models.Comment{PostID: post.ID, UserID: author.ID, Content: "second"}))
	require.NoError(t, repo.Create(ctx, &models.Comment{PostID: otherPost.ID, UserID: author.ID, Content: "elsewhere"}))

	got, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, author.ID, got[0].User.ID)
}

func TestCommentRepository_DeleteSoftDeletes(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewCommentRepository(db)
	ctx := testCtx()

	author := seedUser(t, db, "author")
	post := seedPost(t, db, author)

	c := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "going away"}
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err := repo.GetByID(ctx, c.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
