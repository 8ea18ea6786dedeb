package payload

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultExpiryMinutes is the link lifetime used when the payload does
	// not carry an explicit expiry or duration.
	DefaultExpiryMinutes = 6

	cdnBaseURL = "https://cdn.discordapp.com"
)

// Payload is the decoded "id" query parameter: the personalization context a
// link carries. Keys are abbreviated to keep the encoded token small. The
// token is self-describing; decoding needs no server-side state.
type Payload struct {
	UserName      string `json:"u,omitempty"`
	CommunityName string `json:"c,omitempty"`
	CommunityID   string `json:"ci,omitempty"`
	InteractionID string `json:"i,omitempty"`
	Avatar        string `json:"av,omitempty"`
	GuildIcon     string `json:"gi,omitempty"`
	UserID        string `json:"uid,omitempty"`
	GuildID       string `json:"gid,omitempty"`
	AvatarHash    string `json:"ah,omitempty"`
	IconHash      string `json:"ih,omitempty"`
	Label         string `json:"t,omitempty"`
	Timestamp     string `json:"ts,omitempty"`
	ExpiresAt     string `json:"exp,omitempty"`
	ExpiryMinutes int    `json:"em,omitempty"`
}

// EffectiveAvatarURL returns the avatar URL to render: the full URL when the
// payload still carries one, otherwise a CDN URL rebuilt from hash and user
// id, otherwise the deterministic default avatar for the user id.
func (p *Payload) EffectiveAvatarURL() string {
	if p.Avatar != "" {
		return p.Avatar
	}
	if p.AvatarHash != "" && p.UserID != "" {
		return fmt.Sprintf("%s/avatars/%s/%s.%s?size=128", cdnBaseURL, p.UserID, p.AvatarHash, hashExtension(p.AvatarHash))
	}
	if p.UserID != "" {
		return fmt.Sprintf("%s/embed/avatars/%d.png?size=128", cdnBaseURL, defaultAvatarIndex(p.UserID))
	}
	return ""
}

// EffectiveIconURL returns the guild icon URL, rebuilt from hash and guild id
// when the full URL was dropped during encoding. Empty when the guild has no
// icon; callers fall back to a generated placeholder.
func (p *Payload) EffectiveIconURL() string {
	if p.GuildIcon != "" {
		return p.GuildIcon
	}
	if p.IconHash != "" && p.GuildID != "" {
		return fmt.Sprintf("%s/icons/%s/%s.%s?size=256", cdnBaseURL, p.GuildID, p.IconHash, hashExtension(p.IconHash))
	}
	return ""
}

// ExpiryTime derives the absolute expiry instant for the payload:
// the explicit expiry timestamp when parseable, else creation timestamp plus
// the carried duration, else a default window from now. The render handler
// and the injected client script must agree on this exact derivation.
func (p *Payload) ExpiryTime(now time.Time) time.Time {
	if ts, err := time.Parse(time.RFC3339, p.ExpiresAt); err == nil {
		return ts
	}
	minutes := p.ExpiryMinutes
	if minutes <= 0 {
		minutes = DefaultExpiryMinutes
	}
	if created, err := time.Parse(time.RFC3339, p.Timestamp); err == nil {
		return created.Add(time.Duration(minutes) * time.Minute)
	}
	return now.Add(time.Duration(minutes) * time.Minute)
}

// Expired reports whether the payload's expiry has passed.
func (p *Payload) Expired(now time.Time) bool {
	return !now.Before(p.ExpiryTime(now))
}

// hashExtension maps animated hashes (a_ prefix) to gif, static ones to png.
func hashExtension(hash string) string {
	if strings.HasPrefix(hash, "a_") {
		return "gif"
	}
	return "png"
}

// defaultAvatarIndex selects one of the five default avatars from the user id.
func defaultAvatarIndex(userID string) int {
	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return 0
	}
	return int(id % 5)
}
