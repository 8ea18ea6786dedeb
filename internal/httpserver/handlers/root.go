package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/deps"
	"github.com/ajdsjdasjh123sd/linkgate/internal/payload"
)

// Root handles the bare path. Deployments fronted by a single community can
// point it at their primary slug; raw state/id queries are forwarded to the
// landing page; anything else gets a small status document.
func Root(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.RedirectRootToSlug && d.PrimarySlugID != "" {
			target := "/" + d.PrimarySlugID
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusFound)
			return
		}

		q := r.URL.Query()
		if q.Get("state") != "" && q.Get("id") != "" {
			http.Redirect(w, r, payload.RenderPath+"?"+r.URL.RawQuery, http.StatusFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"service": "linkgate",
			"status":  "running",
		})
	}
}
