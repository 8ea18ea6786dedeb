package deps

import (
	"time"

	"github.com/ajdsjdasjh123sd/linkgate/internal/domain"
	"github.com/ajdsjdasjh123sd/linkgate/internal/logger"
	"github.com/ajdsjdasjh123sd/linkgate/internal/render"
	"github.com/ajdsjdasjh123sd/linkgate/internal/store"
)

// Deps is everything route handlers need, passed by value at registration.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Slugs    *store.Memory[domain.SlugEntry]    // slug redirect store
	Sessions *store.Memory[domain.SessionEntry] // legacy OAuth session store
	Renderer *render.Renderer

	PublicBaseURL      string        // public origin for slug URLs; derived from the request when empty
	DestinationBaseURL string        // origin resolved slugs redirect to
	DestinationPath    string        // path appended to the destination origin
	SlugTTL            time.Duration // default slug lifetime
	PrimarySlugID      string        // optional slug the root path redirects to
	RedirectRootToSlug bool

	AllowedHosts []string // Host headers allowed to access the server
}
