package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	t.Run("Success", func(t *testing.T) {
		status, body := ts.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
			"name":     "alice",
			"email":    "alice@example.com",
			"password": "password1",
			"bio":      "first user",
		})
		require.Equal(t, http.StatusCreated, status)
		require.Equal(t, true, body["success"])

		d := data(t, body)
		require.NotEmpty(t, d["token"])
		user := d["user"].(map[string]interface{})
		require.Equal(t, "alice", user["name"])
		require.NotContains(t, user, "password")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		status, body := ts.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
			"name":     "alice again",
			"email":    "alice@example.com",
			"password": "password1",
		})
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, false, body["success"])
	})

	t.Run("FieldValidation", func(t *testing.T) {
		status, body := ts.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
			"name":     "x",
			"email":    "not-an-email",
			"password": "short",
		})
		require.Equal(t, http.StatusBadRequest, status)
		errs := body["errors"].([]interface{})
		require.Len(t, errs, 3)
	})
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "bob")

	t.Run("Success", func(t *testing.T) {
		status, body := ts.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "bob@example.com",
			"password": "password1",
		})
		require.Equal(t, http.StatusOK, status)
		require.NotEmpty(t, data(t, body)["token"])
	})

	t.Run("WrongPassword", func(t *testing.T) {
		status, _ := ts.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "bob@example.com",
			"password": "password2",
		})
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		status, _ := ts.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "nobody@example.com",
			"password": "password1",
		})
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("MissingFields", func(t *testing.T) {
		status, _ := ts.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{})
		require.Equal(t, http.StatusBadRequest, status)
	})
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "carol")

	status, _ := ts.request(t, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.request(t, http.MethodGet, "/api/auth/me", "garbage.token.here", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, body := ts.request(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	user := data(t, body)["user"].(map[string]interface{})
	require.Equal(t, "carol", user["name"])
}

func TestUpdateProfileEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "dave")

	status, body := ts.request(t, http.MethodPut, "/api/auth/profile", token, fiber.Map{
		"bio": "updated bio",
	})
	require.Equal(t, http.StatusOK, status)
	user := data(t, body)["user"].(map[string]interface{})
	require.Equal(t, "updated bio", user["bio"])
	require.Equal(t, "dave", user["name"])

	status, _ = ts.request(t, http.MethodPut, "/api/auth/profile", token, fiber.Map{
		"bio": strings.Repeat("b", 501),
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestChangePassword(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "erin")

	t.Run("WrongCurrentPassword", func(t *testing.T) {
		status, _ := ts.request(t, http.MethodPut, "/api/auth/change-password", token, fiber.Map{
			"currentPassword": "wrong1password",
			"newPassword":     "newpassword1",
		})
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("WeakNewPassword", func(t *testing.T) {
		status, _ := ts.request(t, http.MethodPut, "/api/auth/change-password", token, fiber.Map{
			"currentPassword": "password1",
			"newPassword":     "allletters",
		})
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("SuccessAndReLogin", func(t *testing.T) {
		status, _ := ts.request(t, http.MethodPut, "/api/auth/change-password", token, fiber.Map{
			"currentPassword": "password1",
			"newPassword":     "newpassword1",
		})
		require.Equal(t, http.StatusOK, status)

		status, _ = ts.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "erin@example.com",
			"password": "newpassword1",
		})
		require.Equal(t, http.StatusOK, status)
	})
}

func TestDeactivate(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "frank")

	status, _ := ts.request(t, http.MethodDelete, "/api/auth/deactivate", token, nil)
	require.Equal(t, http.StatusOK, status)

	// Existing token no longer resolves to an active account.
	status, _ = ts.request(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	// And a fresh login is forbidden.
	status, _ = ts.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "frank@example.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusForbidden, status)
}

func TestLogoutWithoutRedisStillSucceeds(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "grace")

	status, body := ts.request(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
}
