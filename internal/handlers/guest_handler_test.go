package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelsoft/guest-api/internal/config"
	"github.com/hotelsoft/guest-api/internal/handlers"
	"github.com/hotelsoft/guest-api/internal/mirror"
	"github.com/hotelsoft/guest-api/internal/repository"
	"github.com/hotelsoft/guest-api/internal/routes"
	"github.com/hotelsoft/guest-api/internal/services"
)

func newTestApp() *fiber.App {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	store := repository.NewMemoryStore()
	service := services.NewGuestService(store, mirror.New(cfg), cfg)

	app := fiber.New()
	healthHandler := handlers.NewHealthHandler(func() error { return nil })
	routes.Setup(app, cfg, handlers.NewGuestHandler(service), healthHandler)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// bcrypt at cost 12 can exceed the default 1s test timeout.
	resp, err := app.Test(req, 30000)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func createBody() map[string]any {
	return map[string]any{
		"name":     "Maria Souza",
		"cpf":      "11144477735",
		"email":    "maria@example.com",
		"phone":    "11988887777",
		"password": "secret123",
	}
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/guests/login", map[string]any{
		"email":    "maria@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestCreateAndGetGuest(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/guests/", createBody(), "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Maria Souza", body["name"])
	// The hash never appears in any response.
	assert.NotContains(t, body, "password")

	resp, body = doJSON(t, app, http.MethodGet, "/api/guests/1", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "maria@example.com", body["email"])
	assert.NotContains(t, body, "password")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/guests/999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateRejectsBadInput(t *testing.T) {
	app := newTestApp()

	short := createBody()
	short["password"] = "123"
	resp, body := doJSON(t, app, http.MethodPost, "/api/guests/", short, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, true, body["error"])

	badCPF := createBody()
	badCPF["cpf"] = "111444777"
	resp, _ = doJSON(t, app, http.MethodPost, "/api/guests/", badCPF, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	badChecksum := createBody()
	badChecksum["cpf"] = "11144477736"
	resp, _ = doJSON(t, app, http.MethodPost, "/api/guests/", badChecksum, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Over bcrypt's 72-byte limit: rejected up front as a client error,
	// never surfaced as a hashing failure.
	longPassword := createBody()
	longPassword["password"] = strings.Repeat("a", 100)
	resp, body = doJSON(t, app, http.MethodPost, "/api/guests/", longPassword, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "password must be at most 72 bytes", body["message"])

	atLimit := createBody()
	atLimit["password"] = strings.Repeat("a", 72)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/guests/", atLimit, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateDuplicateEmail(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/guests/", createBody(), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/guests/", createBody(), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email already in use", body["message"])
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/guests/", createBody(), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token := login(t, app)
	assert.NotEmpty(t, token)

	resp, body := doJSON(t, app, http.MethodPost, "/api/guests/login", map[string]any{
		"email":    "maria@example.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	wrongMsg := body["message"]

	resp, body = doJSON(t, app, http.MethodPost, "/api/guests/login", map[string]any{
		"email":    "ghost@example.com",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, wrongMsg, body["message"])
}

func TestListGuests(t *testing.T) {
	app := newTestApp()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/guests/", createBody(), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/guests/?page=1&limit=10", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(1), body["total_pages"])
	items, ok := body["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/guests/", createBody(), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPut, "/api/guests/1"},
		{http.MethodDelete, "/api/guests/1"},
		{http.MethodPatch, "/api/guests/1/restore"},
		{http.MethodDelete, "/api/guests/1/hard"},
		{http.MethodGet, "/api/guests/deleted"},
	} {
		resp, _ := doJSON(t, app, tc.method, tc.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, fmt.Sprintf("%s %s", tc.method, tc.path))
	}
}

func TestUpdateGuest(t *testing.T) {
	app := newTestApp()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/guests/", createBody(), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := login(t, app)

	resp, body := doJSON(t, app, http.MethodPut, "/api/guests/1", map[string]any{
		"phone": "11900001111",
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "11900001111", body["phone"])
	assert.Equal(t, "Maria Souza", body["name"])

	resp, _ = doJSON(t, app, http.MethodPut, "/api/guests/999", map[string]any{
		"phone": "11900001111",
	}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/guests/1", map[string]any{
		"email": "a@b",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteRestoreHardDeleteFlow(t *testing.T) {
	app := newTestApp()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/guests/", createBody(), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := login(t, app)

	// Soft delete hides the guest.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/guests/1", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/guests/1", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/guests/deleted", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	// Restore brings it back.
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/guests/1/restore", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/guests/1", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Restoring an active guest is a 404.
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/guests/1/restore", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Hard delete removes it permanently.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/guests/1/hard", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/guests/1", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/guests/1/hard", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["db"])
}

func TestHealthEndpointReportsStoreFailure(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	store := repository.NewMemoryStore()
	service := services.NewGuestService(store, mirror.New(cfg), cfg)

	app := fiber.New()
	healthHandler := handlers.NewHealthHandler(func() error {
		return fmt.Errorf("connection refused")
	})
	routes.Setup(app, cfg, handlers.NewGuestHandler(service), healthHandler)

	resp, body := doJSON(t, app, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "unhealthy: connection refused", body["db"])
}
