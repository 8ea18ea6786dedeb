package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ajdsjdasjh123sd/linkgate/internal/domain"
	"github.com/ajdsjdasjh123sd/linkgate/internal/httpserver/deps"
	"github.com/ajdsjdasjh123sd/linkgate/internal/logger"
	"github.com/ajdsjdasjh123sd/linkgate/internal/token"
)

type createSessionRequest struct {
	GuildID       string `json:"guildId"`
	InteractionID string `json:"interactionId"`
	CommunityName string `json:"communityName"`
	GuildIconHash string `json:"guildIconHash,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
}

// CreateSession stores interaction metadata under a random token for older
// clients that pass context by reference instead of inside the link payload.
func CreateSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.GuildID == "" || req.InteractionID == "" || req.CommunityName == "" {
			writeJSONError(w, http.StatusBadRequest, "guildId, interactionId and communityName are required")
			return
		}

		now := d.TimeNow()
		entry := domain.SessionEntry{
			GuildID:       req.GuildID,
			InteractionID: req.InteractionID,
			CommunityName: req.CommunityName,
			GuildIconHash: req.GuildIconHash,
			Timestamp:     req.Timestamp,
			CreatedAt:     now,
		}
		tok := token.New(token.SessionLength)
		d.Sessions.Put(tok, entry, now.Add(domain.SessionTTL))

		d.Logger.Info("session created",
			logger.String("guild_id", req.GuildID))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": tok})
	}
}
