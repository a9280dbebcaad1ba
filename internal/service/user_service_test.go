package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := seedUser(t, env.db, "alice")
	bob := seedUser(t, env.db, "bob")

	_, err := env.users.GetProfile(context.Background(), 9999)
	requireAppError(t, err, models.CodeNotFound)

	_, err = env.users.ToggleFollow(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)

	profile, err := env.users.GetProfile(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), profile.FollowersCount)
	require.Len(t, profile.Followers, 1)
	require.Equal(t, bob.ID, profile.Followers[0].ID)
	require.Empty(t, profile.Password)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := seedUser(t, env.db, "alice")

	t.Run("NameTooShort", func(t *testing.T) {
		_, err := env.users.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID: alice.ID,
			Name:   "x",
		})
		requireAppError(t, err, models.CodeValidation)
	})

	t.Run("BioTooLong", func(t *testing.T) {
		_, err := env.users.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID: alice.ID,
			Bio:    strings.Repeat("b", 501),
		})
		requireAppError(t, err, models.CodeValidation)
	})

	t.Run("EmptyFieldsStayUnchanged", func(t *testing.T) {
		updated, err := env.users.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID: alice.ID,
			Bio:    "Gopher at large",
		})
		require.NoError(t, err)
		require.Equal(t, "alice", updated.Name)
		require.Equal(t, "Gopher at large", updated.Bio)
	})

	t.Run("MissingUser", func(t *testing.T) {
		_, err := env.users.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID: 9999,
			Name:   "Ghost",
		})
		requireAppError(t, err, models.CodeNotFound)
	})
}

func TestToggleFollow(t *testing.T) {
	env := newTestEnv(t)
	alice := seedUser(t, env.db, "alice")
	bob := seedUser(t, env.db, "bob")

	t.Run("SelfFollowRejected", func(t *testing.T) {
		_, err := env.users.ToggleFollow(context.Background(), alice.ID, alice.ID)
		requireAppError(t, err, models.CodeValidation)
	})

	t.Run("MissingTarget", func(t *testing.T) {
		_, err := env.users.ToggleFollow(context.Background(), alice.ID, 9999)
		requireAppError(t, err, models.CodeNotFound)
	})

	t.Run("DoubleToggleRoundTrips", func(t *testing.T) {
		following, err := env.users.ToggleFollow(context.Background(), alice.ID, bob.ID)
		require.NoError(t, err)
		require.True(t, following)

		following, err = env.users.ToggleFollow(context.Background(), alice.ID, bob.ID)
		require.NoError(t, err)
		require.False(t, following)

		profile, err := env.users.GetProfile(context.Background(), bob.ID)
		require.NoError(t, err)
		require.Zero(t, profile.FollowersCount)
	})
}
