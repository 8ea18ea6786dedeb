package token

import (
	"crypto/rand"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Lengths used across the service. The state token mirrors the upstream
// wallet-connect format; slug and session keys are store-local.
const (
	StateLength   = 15
	SlugLength    = 14
	SessionLength = 32
)

// New returns a random alphanumeric token of n characters.
func New(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}
