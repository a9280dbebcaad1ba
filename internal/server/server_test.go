package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/storage"
	"inkwell/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	srv   *Server
	app   *fiber.App
	db    *gorm.DB
	store *storage.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db := testutil.OpenTestDB(t)
	store := storage.NewMemoryStore("http://img.test")
	cfg := &config.Config{
		JWTSecret:            "unit-test-secret-not-for-production",
		Port:                 "0",
		Env:                  "test",
		ImageMaxUploadSizeMB: 5,
	}

	srv := NewServerWithDeps(cfg, db, nil, store)
	return &testServer{srv: srv, app: srv.App(), db: db, store: store}
}

// request performs a JSON request against the test app and decodes the
// response envelope.
func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

// register creates an account through the API and returns its token and id.
func (ts *testServer) register(t *testing.T, name string) (string, uint) {
	t.Helper()
	status, body := ts.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     name,
		"email":    fmt.Sprintf("%s@example.com", name),
		"password": "password1",
	})
	require.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]interface{})
	token := data["token"].(string)
	user := data["user"].(map[string]interface{})
	return token, uint(user["id"].(float64))
}

func data(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "missing data in envelope: %v", body)
	return d
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	status, _ := ts.request(t, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, status)

	status, body := ts.request(t, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "healthy", body["status"])

	checks := body["checks"].(map[string]interface{})
	require.Equal(t, "healthy", checks["database"])
	require.Equal(t, "unavailable", checks["redis"])
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.request(t, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, false, body["success"])
}

func TestAdminRouteGuard(t *testing.T) {
	ts := newTestServer(t)
	token, userID := ts.register(t, "plainuser")

	status, _ := ts.request(t, http.MethodGet, "/api/admin/feature-flags", token, nil)
	require.Equal(t, http.StatusForbidden, status)

	require.NoError(t, ts.db.Table("users").Where("id = ?", userID).
		Update("role", "admin").Error)

	status, body := ts.request(t, http.MethodGet, "/api/admin/feature-flags", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
}
