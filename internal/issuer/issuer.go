package issuer

import (
	"context"
	"time"

	"github.com/ajdsjdasjh123sd/linkgate/internal/logger"
	"github.com/ajdsjdasjh123sd/linkgate/internal/payload"
	"github.com/ajdsjdasjh123sd/linkgate/internal/slugapi"
)

// SlugRegistrar registers a state/id pair and returns a short public URL.
// *slugapi.Client satisfies it; tests substitute their own.
type SlugRegistrar interface {
	Create(ctx context.Context, req slugapi.CreateRequest) (*slugapi.CreateResponse, error)
}

// Issuer mints personalized, time-limited links. Encoding never needs the
// network; slug registration does, and is strictly best effort.
type Issuer struct {
	logger        logger.Logger
	baseURL       string
	appendPath    bool
	expiryMinutes int
	slugs         SlugRegistrar // nil disables slug shortening
	now           func() time.Time
}

// Config for a new Issuer.
type Config struct {
	BaseURL          string
	AppendRenderPath bool
	ExpiryMinutes    int
	Slugs            SlugRegistrar
}

// Link is an issued link, ready to hand to a user.
type Link struct {
	URL       string // short slug URL when registration succeeded, direct otherwise
	DirectURL string // always the full self-contained URL
	State     string
	ID        string
	ExpiresAt time.Time
}

func New(cfg Config, log logger.Logger) *Issuer {
	minutes := cfg.ExpiryMinutes
	if minutes <= 0 {
		minutes = payload.DefaultExpiryMinutes
	}
	return &Issuer{
		logger:        log,
		baseURL:       cfg.BaseURL,
		appendPath:    cfg.AppendRenderPath,
		expiryMinutes: minutes,
		slugs:         cfg.Slugs,
		now:           time.Now,
	}
}

// Issue stamps timestamps onto ctx, encodes it, and tries to shorten the
// result behind a slug. A failed registration logs and falls back to the
// direct URL so the user still gets a working link.
func (i *Issuer) Issue(ctx context.Context, link payload.Context) (Link, error) {
	now := i.now().UTC()
	expiresAt := now.Add(time.Duration(i.expiryMinutes) * time.Minute)

	link.Timestamp = now.Format(time.RFC3339)
	link.ExpiresAt = expiresAt.Format(time.RFC3339)
	link.ExpiryMinutes = i.expiryMinutes
	if link.Label == "" {
		link.Label = now.Format("Jan 2, 2006 15:04 MST")
	}

	res, err := payload.Encode(i.baseURL, link, payload.Options{AppendRenderPath: i.appendPath})
	if err != nil {
		return Link{}, err
	}

	out := Link{
		URL:       res.URL,
		DirectURL: res.URL,
		State:     res.State,
		ID:        res.ID,
		ExpiresAt: expiresAt,
	}

	if i.slugs == nil {
		return out, nil
	}

	created, err := i.slugs.Create(ctx, slugapi.CreateRequest{
		State:     res.State,
		ID:        res.ID,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
	if err != nil {
		i.logger.Warn("slug registration failed, using direct link",
			logger.Error(err))
		return out, nil
	}

	out.URL = created.SlugURL
	return out, nil
}
