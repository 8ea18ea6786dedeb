package domain

import "time"

// SlugEntry is a stored redirect target, keyed by a short public slug id.
// The slug itself carries no information: resolving one requires the store.
type SlugEntry struct {
	// State is the opaque format-compatibility token forwarded on redirect.
	State string

	// ID is the opaque payload token, usually an encoded link payload.
	ID string

	// CreatedAt records when the slug was registered.
	CreatedAt time.Time

	// ExpiresAt is the absolute expiry instant.
	ExpiresAt time.Time

	// ExtraParams are additional query parameters forwarded on redirect.
	// The reserved keys "state" and "id" are never present here.
	ExtraParams map[string]string
}

// ReservedSlugPaths are route names a slug id may never shadow. A resolution
// request for one of these is 404, distinguishable from an expired slug (410).
var ReservedSlugPaths = map[string]bool{
	"":            true,
	"health":      true,
	"evm":         true,
	"api":         true,
	"slugs":       true,
	"favicon.ico": true,
	"robots.txt":  true,
}
