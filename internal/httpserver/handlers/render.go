package handlers

import (
	"net/http"
	"regexp"

	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/deps"
	"github.com/ajdsjdasjh123sd/linkgate/internal/logger"
	"github.com/ajdsjdasjh123sd/linkgate/internal/payload"
)

var (
	statePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{10,50}$`)
	idPattern    = regexp.MustCompile(`^[A-Za-z0-9+/_-]+={0,2}$`)
)

// Render serves the landing page. The id parameter carries an encoded link
// payload; an undecodable one still renders with generic placeholders, only
// a missing or malformed parameter is rejected outright.
func Render(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		id := r.URL.Query().Get("id")

		if state == "" || id == "" {
			http.Error(w, "Missing state or id parameter", http.StatusBadRequest)
			return
		}
		if !statePattern.MatchString(state) {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}
		if !idPattern.MatchString(id) {
			http.Error(w, "Invalid id parameter", http.StatusBadRequest)
			return
		}

		p := payload.Decode(id)
		if p != nil && p.Expired(d.TimeNow()) {
			d.Logger.Info("expired link rendered",
				logger.String("state", state))
			writeExpired(w, d)
			return
		}

		body, err := d.Renderer.Landing(p)
		if err != nil {
			d.Logger.Error("landing render failed", logger.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		_, _ = w.Write(body)
	}
}

func writeExpired(w http.ResponseWriter, d deps.Deps) {
	if body, ok := d.Renderer.Expired(); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusGone)
		_, _ = w.Write(body)
		return
	}
	http.Error(w, "This link has expired", http.StatusGone)
}
