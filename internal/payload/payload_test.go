package payload

import (
	"testing"
	"time"
)

func TestEffectiveAvatarURL(t *testing.T) {
	cases := []struct {
		name string
		p    Payload
		want string
	}{
		{
			name: "full URL wins",
			p:    Payload{Avatar: "https://cdn.discordapp.com/avatars/1/x.png", AvatarHash: "abc", UserID: "1"},
			want: "https://cdn.discordapp.com/avatars/1/x.png",
		},
		{
			name: "rebuilt from hash",
			p:    Payload{AvatarHash: "abc123", UserID: "42"},
			want: "https://cdn.discordapp.com/avatars/42/abc123.png?size=128",
		},
		{
			name: "animated hash uses gif",
			p:    Payload{AvatarHash: "a_abc123", UserID: "42"},
			want: "https://cdn.discordapp.com/avatars/42/a_abc123.gif?size=128",
		},
		{
			name: "default avatar from user id",
			p:    Payload{UserID: "7"},
			want: "https://cdn.discordapp.com/embed/avatars/2.png?size=128",
		},
		{
			name: "non-numeric id gets index zero",
			p:    Payload{UserID: "abc"},
			want: "https://cdn.discordapp.com/embed/avatars/0.png?size=128",
		},
		{
			name: "nothing to build from",
			p:    Payload{},
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.EffectiveAvatarURL(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEffectiveIconURL(t *testing.T) {
	p := Payload{IconHash: "fed", GuildID: "99"}
	want := "https://cdn.discordapp.com/icons/99/fed.png?size=256"
	if got := p.EffectiveIconURL(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	p = Payload{GuildID: "99"}
	if got := p.EffectiveIconURL(); got != "" {
		t.Errorf("iconless guild produced %q, want empty", got)
	}
}

func TestExpiryTime(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		p    Payload
		want time.Time
	}{
		{
			name: "explicit expiry wins",
			p:    Payload{ExpiresAt: "2026-08-30T13:00:00Z", Timestamp: "2026-08-30T11:00:00Z", ExpiryMinutes: 5},
			want: time.Date(2026, 8, 30, 13, 0, 0, 0, time.UTC),
		},
		{
			name: "timestamp plus minutes",
			p:    Payload{Timestamp: "2026-08-30T11:00:00Z", ExpiryMinutes: 30},
			want: time.Date(2026, 8, 30, 11, 30, 0, 0, time.UTC),
		},
		{
			name: "timestamp plus default minutes",
			p:    Payload{Timestamp: "2026-08-30T11:00:00Z"},
			want: time.Date(2026, 8, 30, 11, 6, 0, 0, time.UTC),
		},
		{
			name: "bare payload counts from now",
			p:    Payload{},
			want: now.Add(6 * time.Minute),
		},
		{
			name: "unparseable expiry falls through to timestamp",
			p:    Payload{ExpiresAt: "not-a-time", Timestamp: "2026-08-30T11:00:00Z", ExpiryMinutes: 10},
			want: time.Date(2026, 8, 30, 11, 10, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.ExpiryTime(now); !got.Equal(tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	past := Payload{ExpiresAt: "2026-08-30T11:59:59Z"}
	if !past.Expired(now) {
		t.Error("past expiry not reported as expired")
	}

	exact := Payload{ExpiresAt: "2026-08-30T12:00:00Z"}
	if !exact.Expired(now) {
		t.Error("expiry instant itself must count as expired")
	}

	future := Payload{ExpiresAt: "2026-08-30T12:00:01Z"}
	if future.Expired(now) {
		t.Error("future expiry reported as expired")
	}
}
