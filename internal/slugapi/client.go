package slugapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the slug registration API of a linkgate server.
type Client struct {
	origin  string
	httpcli *http.Client
}

// New builds a client for the given server origin, e.g. "https://link.example.com".
func New(origin string, timeout time.Duration) *Client {
	return &Client{
		origin:  strings.TrimRight(origin, "/"),
		httpcli: &http.Client{Timeout: timeout},
	}
}

// CreateRequest registers a state/id pair under a fresh slug.
type CreateRequest struct {
	State       string            `json:"state"`
	ID          string            `json:"id"`
	ExpiresAt   string            `json:"expiresAt,omitempty"`
	ExtraParams map[string]string `json:"extraParams,omitempty"`
}

// CreateResponse is the registered slug.
type CreateResponse struct {
	SlugID    string `json:"slugId"`
	SlugURL   string `json:"slugUrl"`
	ExpiresAt string `json:"expiresAt"`
}

// Create registers a slug and returns the server's response.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal slug request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.origin+"/api/slugs", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build slug request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpcli.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("slug service request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Deployed services answer 201 or 200 depending on version; anything
	// else in the 2xx range still carries a valid body.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("slug service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out CreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode slug response: %w", err)
	}
	if out.SlugURL == "" {
		return nil, fmt.Errorf("slug service returned an empty slug URL")
	}
	return &out, nil
}
