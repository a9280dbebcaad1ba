package bootstrap

import (
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestEnsureDevAdmin(t *testing.T) {
	t.Run("NoOpOutsideDevelopment", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		cfg := &config.Config{Env: "production", DevAdminEmail: "root@example.com", DevAdminPassword: "supersecret"}

		require.NoError(t, EnsureDevAdmin(db, cfg))

		var count int64
		require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("NoOpWhenUnconfigured", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		cfg := &config.Config{Env: "development"}

		require.NoError(t, EnsureDevAdmin(db, cfg))

		var count int64
		require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("CreatesAdminOnce", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		cfg := &config.Config{Env: "development", DevAdminEmail: "root@example.com", DevAdminPassword: "supersecret"}

		require.NoError(t, EnsureDevAdmin(db, cfg))
		require.NoError(t, EnsureDevAdmin(db, cfg))

		var admins []models.User
		require.NoError(t, db.Where("email = ?", "root@example.com").Find(&admins).Error)
		require.Len(t, admins, 1)
		assert.Equal(t, models.RoleAdmin, admins[0].Role)
		assert.True(t, admins[0].IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].Password), []byte("supersecret")))
	})

	t.Run("WeakPasswordRejected", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		cfg := &config.Config{Env: "development", DevAdminEmail: "root@example.com", DevAdminPassword: "short"}
		assert.Error(t, EnsureDevAdmin(db, cfg))
	})

	t.Run("EmailTakenByRegularUser", func(t *testing.T) {
		db := testutil.OpenTestDB(t)
		require.NoError(t, db.Create(&models.User{
			Name: "Impostor", Email: "root@example.com", Password: "hash", Role: models.RoleUser, IsActive: true,
		}).Error)

		cfg := &config.Config{Env: "development", DevAdminEmail: "root@example.com", DevAdminPassword: "supersecret"}
		assert.Error(t, EnsureDevAdmin(db, cfg))
	})
}
