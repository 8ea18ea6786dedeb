package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/deps"
	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/handlers"
)

func init() { Register(registerSession) }

// Legacy OAuth-session flow, kept for pre-slug clients.
func registerSession(r chi.Router, d deps.Deps) {
	r.Post("/api/oauth/session", handlers.CreateSession(d))
}
