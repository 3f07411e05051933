package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTitleLength bounds a title in runes. Post text rarely carries more; longer
// input is almost certainly not an episode title.
const MaxTitleLength = 200

// ValidateTitle validates a card title.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only titles
//   - Valid UTF-8 only
//   - No control characters (newlines included; wrapping is ours to do)
//   - Maximum length of MaxTitleLength runes
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidTitle, "title cannot be empty")
	}

	if !utf8.ValidString(title) {
		return New(ErrCodeInvalidTitle, "title is not valid UTF-8")
	}

	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return New(ErrCodeInvalidTitle, "title too long (%d runes, max %d)", n, MaxTitleLength)
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTitle, "title contains invalid control characters")
		}
	}

	return nil
}

// ValidateAssetRef validates an asset reference from the style table.
// References are relative to the asset root and may not escape it.
func ValidateAssetRef(ref string) error {
	if ref == "" {
		return New(ErrCodeConfiguration, "asset reference cannot be empty")
	}

	for _, r := range ref {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeConfiguration, "asset reference contains invalid characters")
		}
	}

	if strings.HasPrefix(ref, "/") {
		return New(ErrCodeConfiguration, "asset reference must be relative: %q", ref)
	}

	if strings.Contains(ref, "\\") {
		return New(ErrCodeConfiguration, "asset reference cannot contain backslashes: %q", ref)
	}

	for _, part := range strings.Split(ref, "/") {
		if part == ".." {
			return New(ErrCodeConfiguration, "asset reference cannot contain path traversal: %q", ref)
		}
	}

	return nil
}
