package seed

import (
	"os"
	"path/filepath"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	db := testutil.OpenTestDB(t)

	require.NoError(t, Run(db, Options{Users: 4, Posts: 10, Comments: 20}))

	var users, posts, comments int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)

	assert.Equal(t, int64(4), users)
	assert.Equal(t, int64(10), posts)
	assert.Equal(t, int64(20), comments)

	var likes, follows int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Follow{}).Count(&follows).Error)
	assert.Positive(t, likes)
	assert.Positive(t, follows)
}

func TestRunRejectsEmptyUserSet(t *testing.T) {
	db := testutil.OpenTestDB(t)
	assert.Error(t, Run(db, Options{Users: 0, Posts: 5}))
}

func TestRunCleanResets(t *testing.T) {
	db := testutil.OpenTestDB(t)

	require.NoError(t, Run(db, Options{Users: 2, Posts: 4, Comments: 4}))
	require.NoError(t, Run(db, Options{Users: 3, Posts: 5, Clean: true}))

	var users, posts, comments int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)

	assert.Equal(t, int64(3), users)
	assert.Equal(t, int64(5), posts)
	assert.Equal(t, int64(0), comments)
}

const presetYAML = `users:
  - name: Ada Example
    email: ada@example.com
    role: admin
    bio: Writes about compilers.
  - name: Ben Example
    email: ben@example.com
posts:
  - author: ada@example.com
    title: A tour of the type checker
    content: Long enough content for a preset post body.
    category: Technology
    tags: [go, deep-dive]
    featured: true
  - author: ben@example.com
    title: Draft thoughts
    content: Still chewing on this one.
    category: Lifestyle
    status: draft
`

func writePreset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestPresetApply(t *testing.T) {
	db := testutil.OpenTestDB(t)

	preset, err := LoadPreset(writePreset(t, presetYAML))
	require.NoError(t, err)
	require.NoError(t, preset.Apply(db))

	var ada models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&ada).Error)
	assert.Equal(t, models.RoleAdmin, ada.Role)
	assert.True(t, ada.IsActive)

	var featured models.Post
	require.NoError(t, db.Where("title = ?", "A tour of the type checker").First(&featured).Error)
	assert.Equal(t, ada.ID, featured.UserID)
	assert.True(t, featured.Featured)
	assert.Equal(t, models.StatusPublished, featured.Status)

	var draft models.Post
	require.NoError(t, db.Where("title = ?", "Draft thoughts").First(&draft).Error)
	assert.Equal(t, models.StatusDraft, draft.Status)

	// applying again must not duplicate accounts
	require.NoError(t, preset.Apply(db))
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(2), users)
}

func TestPresetValidation(t *testing.T) {
	_, err := LoadPreset(writePreset(t, `posts:
  - author: ghost@example.com
    title: Orphan
    content: No such author.
`))
	assert.Error(t, err)

	_, err = LoadPreset(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
