package mirror

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelsoft/guest-api/internal/config"
	"github.com/hotelsoft/guest-api/internal/models"
)

func testGuest() *models.Guest {
	phone := "11988887777"
	return &models.Guest{
		ID:       1,
		Name:     "Maria Souza",
		CPF:      "11144477735",
		Email:    "maria@example.com",
		Phone:    &phone,
		Password: "never-sent",
	}
}

func TestInsertDisabledWithoutCredentials(t *testing.T) {
	c := New(&config.Config{})
	assert.NoError(t, c.Insert(testGuest()))

	// URL alone is not enough.
	c = New(&config.Config{SupabaseURL: "https://example.supabase.co"})
	assert.NoError(t, c.Insert(testGuest()))
}

func TestInsertSendsPublicFields(t *testing.T) {
	var gotPath, gotAPIKey, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(&config.Config{SupabaseURL: srv.URL, SupabaseServiceKey: "service-key"})
	require.NoError(t, c.Insert(testGuest()))

	assert.Equal(t, "/rest/v1/usuario", gotPath)
	assert.Equal(t, "service-key", gotAPIKey)
	assert.Equal(t, "Bearer service-key", gotAuth)

	assert.Equal(t, "Maria Souza", gotBody["nome"])
	assert.Equal(t, "11144477735", gotBody["cpf"])
	assert.Equal(t, "maria@example.com", gotBody["email"])
	assert.Equal(t, "11988887777", gotBody["telefone"])
	assert.Nil(t, gotBody["endereco"])
	// The password hash never crosses the wire.
	assert.NotContains(t, gotBody, "password")
	assert.NotContains(t, gotBody, "senha")
}

func TestInsertReportsRejections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"schema mismatch"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(&config.Config{SupabaseURL: srv.URL, SupabaseServiceKey: "service-key"})
	err := c.Insert(testGuest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestInsertTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(&config.Config{SupabaseURL: srv.URL + "/", SupabaseServiceKey: "service-key"})
	require.NoError(t, c.Insert(testGuest()))
	assert.Equal(t, "/rest/v1/usuario", gotPath)
}
