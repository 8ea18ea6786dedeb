package payload

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/ajdsjdasjh123sd/linkgate/internal/token"
)

const (
	// MaxURLLength is the budget for a generated link. Discord truncates
	// button URLs past 512 characters; 500 leaves headroom.
	MaxURLLength = 500

	// RenderPath is the canonical render route appended to generated links.
	RenderPath = "/evm"
)

// ErrEmptyToken is returned when even the minimal fallback payload produced
// an empty token. This is an internal invariant violation, not a caller error.
var ErrEmptyToken = errors.New("payload: encoded token is empty after fallback")

// Context carries everything the bot knows about a link request. It is the
// encode-side input; Payload is the wire form.
type Context struct {
	UserName      string
	CommunityName string
	CommunityID   string
	InteractionID string
	UserID        string
	GuildID       string
	AvatarURL     string
	GuildIconURL  string
	AvatarHash    string
	GuildIconHash string
	Label         string // human-readable creation time
	Timestamp     string // RFC 3339 creation time
	ExpiresAt     string // RFC 3339 expiry
	ExpiryMinutes int
}

// Options controls URL composition.
type Options struct {
	// AppendRenderPath adds the canonical render path before the query.
	// When false the query is appended to the base URL directly.
	AppendRenderPath bool
}

// Result is an encoded link: the state/id pair plus the composed URL.
type Result struct {
	State string
	ID    string
	URL   string
}

// Shrink rungs, applied in order until the composed URL fits the budget.
// The contract: hashes survive longer than full URLs, full URLs survive
// longer than display-name length, and nothing is dropped before the
// cheaper field is exhausted.
const (
	rungFull = iota
	rungShortNames
	rungNoURLs
	rungNoLabel
	rungNoHashes
	rungCount
)

// Encode serializes ctx into a state/id pair and composes the link URL,
// shrinking the payload step by step until the URL fits the length budget.
// It produces a usable URL for any input; the only failure mode is an empty
// token after the minimal fallback.
func Encode(base string, ctx Context, opts Options) (Result, error) {
	if ctx.ExpiryMinutes <= 0 {
		ctx.ExpiryMinutes = DefaultExpiryMinutes
	}

	state := token.New(token.StateLength)
	base = strings.TrimRight(base, "/")

	var id string
	fits := false
	for rung := rungFull; rung < rungCount; rung++ {
		id = encodeToken(ctx.payload(rung))
		if candidateLength(base, state, id, opts) <= MaxURLLength {
			fits = true
			break
		}
	}

	// No rung fit (or marshaling failed): fall back to the minimal payload
	// and accept the overlength URL rather than produce none at all.
	if !fits || id == "" {
		id = encodeToken(ctx.fallbackPayload())
	}
	if id == "" {
		return Result{}, ErrEmptyToken
	}

	return Result{
		State: state,
		ID:    id,
		URL:   composeURL(base, state, id, opts),
	}, nil
}

// Decode parses an id token back into a Payload. It accepts the standard and
// URL-safe base64 alphabets and tolerates missing padding. Malformed input
// yields nil: callers render default content instead of failing.
func Decode(id string) *Payload {
	s := strings.TrimSpace(id)
	if s == "" {
		return nil
	}
	// Query decoding may have turned + into spaces; URL-safe producers use -/_.
	s = strings.ReplaceAll(s, " ", "+")
	s = strings.ReplaceAll(s, "-", "+")
	s = strings.ReplaceAll(s, "_", "/")
	s = strings.TrimRight(s, "=")
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat("=", 4-rem)
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}

// payload maps the context onto the wire form for a given shrink rung.
func (c Context) payload(rung int) Payload {
	p := Payload{
		UserName:      c.UserName,
		CommunityName: c.CommunityName,
		CommunityID:   c.CommunityID,
		InteractionID: c.InteractionID,
		Avatar:        c.AvatarURL,
		GuildIcon:     c.GuildIconURL,
		UserID:        c.UserID,
		GuildID:       c.GuildID,
		AvatarHash:    c.AvatarHash,
		IconHash:      c.GuildIconHash,
		Label:         c.Label,
		Timestamp:     c.Timestamp,
		ExpiresAt:     c.ExpiresAt,
		ExpiryMinutes: c.ExpiryMinutes,
	}
	if rung >= rungShortNames {
		p.UserName = truncate(p.UserName, 20)
		p.CommunityName = truncate(p.CommunityName, 20)
	}
	if rung >= rungNoURLs {
		p.Avatar = ""
		p.GuildIcon = ""
	}
	if rung >= rungNoLabel {
		p.Label = ""
	}
	if rung >= rungNoHashes {
		p.AvatarHash = ""
		p.IconHash = ""
	}
	return p
}

// fallbackPayload is the last line of defense: identifiers and timestamps
// with aggressively truncated names. Encoding it must always succeed.
func (c Context) fallbackPayload() Payload {
	userName := truncate(c.UserName, 10)
	if userName == "" {
		userName = "user"
	}
	communityName := truncate(c.CommunityName, 10)
	if communityName == "" {
		communityName = "server"
	}
	return Payload{
		UserName:      userName,
		CommunityName: communityName,
		CommunityID:   c.CommunityID,
		InteractionID: c.InteractionID,
		UserID:        c.UserID,
		GuildID:       c.GuildID,
		Timestamp:     c.Timestamp,
		ExpiresAt:     c.ExpiresAt,
		ExpiryMinutes: c.ExpiryMinutes,
	}
}

func encodeToken(p Payload) string {
	raw, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// candidateLength measures the raw composed URL, before query escaping, which
// is the length the budget is defined against.
func candidateLength(base, state, id string, opts Options) int {
	n := len(base) + len("?state=") + len(state) + len("&id=") + len(id)
	if opts.AppendRenderPath {
		n += len(RenderPath)
	}
	return n
}

func composeURL(base, state, id string, opts Options) string {
	var b strings.Builder
	b.WriteString(base)
	if opts.AppendRenderPath {
		b.WriteString(RenderPath)
		b.WriteByte('?')
	} else if strings.Contains(base, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	b.WriteString("state=")
	b.WriteString(state)
	b.WriteString("&id=")
	b.WriteString(url.QueryEscape(id))
	return b.String()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
