package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ajdsjdasjh123sd/linkgate/internal/domain"
	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/deps"
	"github.com/ajdsjdasjh123sd/linkgate/internal/logger"
	"github.com/ajdsjdasjh123sd/linkgate/internal/token"
)

type createSlugRequest struct {
	State string `json:"state"`
	ID    string `json:"id"`
	// ExpiresAt is advisory: an unparseable value falls back to the default
	// TTL instead of failing the registration.
	ExpiresAt string `json:"expiresAt,omitempty"`
	// ExtraParams accepts any JSON values; sanitation keeps only strings.
	ExtraParams map[string]any `json:"extraParams,omitempty"`
}

type createSlugResponse struct {
	SlugID    string `json:"slugId"`
	SlugURL   string `json:"slugUrl"`
	ExpiresAt string `json:"expiresAt"`
}

// CreateSlug registers a redirect target and returns a short opaque slug id.
// The slug URL hides the state and payload tokens from intermediaries that
// log or unfurl links; resolution happens server-side at access time.
func CreateSlug(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSlugRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		state := strings.TrimSpace(req.State)
		id := strings.TrimSpace(req.ID)
		if state == "" || id == "" {
			writeJSONError(w, http.StatusBadRequest, "state and id are required")
			return
		}

		now := d.TimeNow()
		expiresAt := now.Add(d.SlugTTL)
		if req.ExpiresAt != "" {
			if t, err := time.Parse(time.RFC3339, req.ExpiresAt); err == nil {
				expiresAt = t
			}
		}

		entry := domain.SlugEntry{
			State:       state,
			ID:          id,
			CreatedAt:   now,
			ExpiresAt:   expiresAt,
			ExtraParams: sanitizeExtraParams(req.ExtraParams),
		}
		slugID := d.Slugs.PutUnique(token.SlugLength, entry, expiresAt)

		d.Logger.Info("slug registered",
			logger.String("slug_id", slugID),
			logger.Time("expires_at", expiresAt))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createSlugResponse{
			SlugID:    slugID,
			SlugURL:   slugURL(d, r, slugID),
			ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		})
	}
}

// sanitizeExtraParams drops the reserved keys, non-string values, and
// anything that would not survive a round trip through a query string as a
// non-empty pair.
func sanitizeExtraParams(in map[string]any) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		k = strings.TrimSpace(k)
		if k == "" || k == "state" || k == "id" {
			continue
		}
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		out[k] = s
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// slugURL builds the public URL for a slug. The configured base wins; without
// one the request's own host is used, trusting X-Forwarded-Proto when a proxy
// set it.
func slugURL(d deps.Deps, r *http.Request, slugID string) string {
	if d.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(d.PublicBaseURL, "/"), slugID)
	}
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}
	return fmt.Sprintf("%s://%s/%s", scheme, r.Host, slugID)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
