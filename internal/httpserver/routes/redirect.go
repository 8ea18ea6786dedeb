package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/deps"
	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/handlers"
)

func init() { Register(registerRedirect) }

func registerRedirect(r chi.Router, d deps.Deps) {
	// Explicit routes win over the slug catch-all; reserved names are still
	// re-checked in the handler so they answer 404, never resolve as slugs.
	r.Get("/{slugID}", handlers.ResolveSlug(d))
	r.Get("/slugs/{slugID}", handlers.LegacySlugPath(d))
}
