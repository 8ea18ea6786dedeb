package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/deps"
)

type healthResponse struct {
	Status        string  `json:"status"`
	Timestamp     string  `json:"timestamp"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
}

func Health(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:        "ok",
			Timestamp:     d.TimeNow().UTC().Format(time.RFC3339),
			UptimeSeconds: time.Since(start).Seconds(),
			Version:       d.Version,
		})
	}
}
