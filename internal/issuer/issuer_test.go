package issuer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ajdsjdasjh123sd/linkgate/internal/logger"
	"github.com/ajdsjdasjh123sd/linkgate/internal/payload"
	"github.com/ajdsjdasjh123sd/linkgate/internal/slugapi"
)

type fakeRegistrar struct {
	req  slugapi.CreateRequest
	resp *slugapi.CreateResponse
	err  error
}

func (f *fakeRegistrar) Create(_ context.Context, req slugapi.CreateRequest) (*slugapi.CreateResponse, error) {
	f.req = req
	return f.resp, f.err
}

func testContext() payload.Context {
	return payload.Context{
		UserName:      "somebody",
		CommunityName: "Example",
		UserID:        "42",
		GuildID:       "99",
	}
}

func TestIssueStampsTimestamps(t *testing.T) {
	i := New(Config{BaseURL: "https://link.example.com", AppendRenderPath: true, ExpiryMinutes: 10}, logger.New("error", false))
	fixed := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	i.now = func() time.Time { return fixed }

	link, err := i.Issue(context.Background(), testContext())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !link.ExpiresAt.Equal(fixed.Add(10 * time.Minute)) {
		t.Errorf("ExpiresAt = %v", link.ExpiresAt)
	}

	p := payload.Decode(link.ID)
	if p == nil {
		t.Fatal("issued id did not decode")
	}
	if p.Timestamp != "2026-08-30T10:00:00Z" {
		t.Errorf("Timestamp = %q", p.Timestamp)
	}
	if p.ExpiresAt != "2026-08-30T10:10:00Z" {
		t.Errorf("ExpiresAt = %q", p.ExpiresAt)
	}
	if p.ExpiryMinutes != 10 {
		t.Errorf("ExpiryMinutes = %d", p.ExpiryMinutes)
	}
	if p.Label == "" {
		t.Error("label not stamped")
	}
	if !strings.HasPrefix(link.URL, "https://link.example.com/evm?state=") {
		t.Errorf("URL = %q", link.URL)
	}
}

func TestIssueUsesSlugURL(t *testing.T) {
	reg := &fakeRegistrar{resp: &slugapi.CreateResponse{
		SlugID:  "slugslugslugsl",
		SlugURL: "https://link.example.com/slugslugslugsl",
	}}
	i := New(Config{BaseURL: "https://link.example.com", Slugs: reg}, logger.New("error", false))

	link, err := i.Issue(context.Background(), testContext())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if link.URL != "https://link.example.com/slugslugslugsl" {
		t.Errorf("URL = %q", link.URL)
	}
	if link.DirectURL == link.URL {
		t.Error("direct URL should remain the unshortened link")
	}
	if reg.req.State != link.State || reg.req.ID != link.ID {
		t.Errorf("registrar got %+v", reg.req)
	}
	if reg.req.ExpiresAt == "" {
		t.Error("registrar request missing expiry")
	}
}

func TestIssueFallsBackOnRegistrationFailure(t *testing.T) {
	reg := &fakeRegistrar{err: errors.New("connection refused")}
	i := New(Config{BaseURL: "https://link.example.com", AppendRenderPath: true, Slugs: reg}, logger.New("error", false))

	link, err := i.Issue(context.Background(), testContext())
	if err != nil {
		t.Fatalf("Issue must not fail when slug registration does: %v", err)
	}
	if link.URL != link.DirectURL {
		t.Errorf("URL = %q, want direct fallback %q", link.URL, link.DirectURL)
	}
}

func TestIssueDefaultExpiry(t *testing.T) {
	i := New(Config{BaseURL: "https://link.example.com"}, logger.New("error", false))
	link, err := i.Issue(context.Background(), testContext())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	p := payload.Decode(link.ID)
	if p.ExpiryMinutes != payload.DefaultExpiryMinutes {
		t.Errorf("ExpiryMinutes = %d, want %d", p.ExpiryMinutes, payload.DefaultExpiryMinutes)
	}
}
