package domain

import "time"

// SessionEntry backs the legacy OAuth-session flow. Sessions live in their
// own namespace with their own TTL; they never reference slug entries.
type SessionEntry struct {
	GuildID       string
	InteractionID string
	CommunityName string
	GuildIconHash string
	Timestamp     string
	CreatedAt     time.Time
}

// SessionTTL is how long a legacy OAuth session stays resolvable.
const SessionTTL = 10 * time.Minute
