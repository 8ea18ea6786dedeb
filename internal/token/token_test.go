package token

import "testing"

func TestNewLength(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{name: "state token", n: StateLength},
		{name: "slug token", n: SlugLength},
		{name: "session token", n: SessionLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.n)
			if len(got) != tt.n {
				t.Errorf("New(%d) length = %d, want %d", tt.n, len(got), tt.n)
			}
		})
	}
}

func TestNewAlphabet(t *testing.T) {
	got := New(256)
	for _, c := range got {
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		default:
			t.Fatalf("New() produced non-alphanumeric character %q", c)
		}
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok := New(SlugLength)
		if seen[tok] {
			t.Fatalf("New() produced duplicate token %q after %d draws", tok, i)
		}
		seen[tok] = true
	}
}
