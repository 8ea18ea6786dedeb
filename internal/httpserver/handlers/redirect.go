package handlers

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ajdsjdasjh123sd/linkgate/internal/domain"
	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/deps"
	"github.com/ajdsjdasjh123sd/linkgate/internal/logger"
	"github.com/ajdsjdasjh123sd/linkgate/internal/store"
)

// ResolveSlug turns a short slug back into the full destination URL and
// answers with a temporary redirect. An expired slug is 410 so clients can
// tell a dead link from a mistyped one (404).
func ResolveSlug(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slugID := chi.URLParam(r, "slugID")

		// Reserved names are matched case-insensitively: /HEALTH must not
		// fall through to the legacy query forward.
		if domain.ReservedSlugPaths[strings.ToLower(slugID)] {
			http.Error(w, "Unknown slug identifier", http.StatusNotFound)
			return
		}

		entry, status := d.Slugs.Get(slugID)
		switch status {
		case store.Hit:
			target := destinationURL(d, entry.State, entry.ID, entry.ExtraParams)
			d.Logger.Info("slug resolved",
				logger.String("slug_id", slugID))
			http.Redirect(w, r, target, http.StatusFound)

		case store.Expired:
			d.Logger.Info("expired slug accessed",
				logger.String("slug_id", slugID))
			http.Error(w, "This link has expired", http.StatusGone)

		default:
			// Older links put state and id straight in the query instead of
			// registering a slug. Honor them when both are present.
			q := r.URL.Query()
			state := q.Get("state")
			id := q.Get("id")
			if state != "" && id != "" {
				extras := make(map[string]string)
				for k := range q {
					if k == "state" || k == "id" {
						continue
					}
					if v := q.Get(k); v != "" {
						extras[k] = v
					}
				}
				d.Logger.Info("legacy raw link forwarded")
				http.Redirect(w, r, destinationURL(d, state, id, extras), http.StatusFound)
				return
			}

			d.Logger.Debug("unknown slug",
				logger.String("slug_id", slugID))
			http.Error(w, "Unknown slug identifier", http.StatusNotFound)
		}
	}
}

// LegacySlugPath permanently redirects the old /slugs/{id} form to /{id},
// keeping the query string intact.
func LegacySlugPath(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slugID := chi.URLParam(r, "slugID")
		target := "/" + slugID
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	}
}

// destinationURL composes the redirect target. State and id always come
// first in that order; extra parameters follow in sorted key order so the
// same entry always produces the same URL.
func destinationURL(d deps.Deps, state, id string, extras map[string]string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(d.DestinationBaseURL, "/"))
	b.WriteString(d.DestinationPath)
	b.WriteString("?state=")
	b.WriteString(url.QueryEscape(state))
	b.WriteString("&id=")
	b.WriteString(url.QueryEscape(id))

	keys := make([]string, 0, len(extras))
	for k := range extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("&")
		b.WriteString(url.QueryEscape(k))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(extras[k]))
	}
	return b.String()
}
