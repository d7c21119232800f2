package mirror

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hotelsoft/guest-api/internal/config"
	"github.com/hotelsoft/guest-api/internal/models"
)

// Client replicates newly created guests into the Supabase `usuario` table,
// best effort. The enabled check runs once per process: if either credential
// is missing, mirroring stays disabled for the process lifetime.
type Client struct {
	url     string
	key     string
	httpc   *http.Client
	once    sync.Once
	enabled bool
}

func New(cfg *config.Config) *Client {
	return &Client{
		url:   strings.TrimRight(cfg.SupabaseURL, "/"),
		key:   cfg.SupabaseServiceKey,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

// row uses the mirror table's own column names.
type row struct {
	Nome      string    `json:"nome"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	Telefone  *string   `json:"telefone"`
	Endereco  *string   `json:"endereco"`
	CreatedAt time.Time `json:"created_at"`
}

// Insert sends one guest to the mirror table. Returns nil when mirroring is
// disabled. Callers log failures and move on; nothing is retried.
func (c *Client) Insert(guest *models.Guest) error {
	c.once.Do(func() {
		c.enabled = c.url != "" && c.key != ""
		if !c.enabled {
			slog.Warn("supabase mirror disabled: SUPABASE_URL or SUPABASE_SERVICE_KEY not set")
		}
	})
	if !c.enabled {
		return nil
	}

	body, err := json.Marshal(row{
		Nome:      guest.Name,
		CPF:       guest.CPF,
		Email:     guest.Email,
		Telefone:  guest.Phone,
		Endereco:  guest.Address,
		CreatedAt: guest.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal mirror row: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.url+"/rest/v1/usuario", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mirror request: %w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("mirror request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mirror insert rejected: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
