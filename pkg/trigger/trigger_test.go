package trigger

import (
	"testing"

	"github.com/matzehuels/titlecard/pkg/errors"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Request
		ok   bool
	}{
		{"plain", `Lost TOS Episode: "The Cage"`, Request{"TOS", "The Cage"}, true},
		{"surrounding text", `Today's pick! Lost DS9 Episode: "Duet" #startrek`, Request{"DS9", "Duet"}, true},
		{"inner quotes", `Lost TNG Episode: "The "Best" of Both Worlds"`, Request{"TNG", `The "Best" of Both Worlds`}, true},
		{"unknown style still matches", `Lost XYZ Episode: "Test"`, Request{"XYZ", "Test"}, true},
		{"no quotes", `Lost TOS Episode: The Cage`, Request{}, false},
		{"wrong wording", `Found TOS Episode: "The Cage"`, Request{}, false},
		{"empty title", `Lost TOS Episode: " "`, Request{}, false},
		{"empty", ``, Request{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Match(%q) = %+v, %v, want %+v, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNew(t *testing.T) {
	m, err := New(`card:(\w+)/(.+)`)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, ok := m.Match("card:VOY/Timeless")
	if !ok || got != (Request{"VOY", "Timeless"}) {
		t.Errorf("Match = %+v, %v", got, ok)
	}

	for _, bad := range []string{`(unclosed`, `only (\w+)`} {
		if _, err := New(bad); !errors.Is(err, errors.ErrCodeConfiguration) {
			t.Errorf("New(%q) = %v, want configuration error", bad, err)
		}
	}
}
