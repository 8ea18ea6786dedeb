package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/deps"
	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/handlers"
)

func init() { Register(registerSlugs) }

func registerSlugs(r chi.Router, d deps.Deps) {
	r.Post("/api/slugs", handlers.CreateSlug(d))
}
