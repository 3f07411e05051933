package errors

import (
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "The Cage", false},
		{"valid punctuation", "Where No Man Has Gone Before!", false},
		{"valid unicode", "Déjà Q", false},
		{"valid at limit", strings.Repeat("a", MaxTitleLength), false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", MaxTitleLength+1), true},
		{"invalid utf8", "bad\xffbyte", true},
		{"newline", "two\nlines", true},
		{"tab", "a\tb", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTitle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTitle) {
				t.Errorf("ValidateTitle(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidTitle)
			}
		})
	}
}

func TestValidateAssetRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "fonts/horizon.ttf", false},
		{"dotted name", "templates/TOS_bg.v2.jpg", false},
		{"builtin", "builtin:goregular", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "fonts/../../secret", true},
		{"backslash", "fonts\\horizon.ttf", true},
		{"control char", "fonts/\x01.ttf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssetRef(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetRef(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
