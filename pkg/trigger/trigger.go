// Package trigger extracts card requests from free-form post text.
//
// The default pattern recognizes announcements such as
//
//	Lost TOS Episode: "The Cage"
//
// and yields the style key TOS and the title The Cage. Feed polling and
// duplicate detection are left to the caller.
package trigger

import (
	"regexp"
	"strings"

	"github.com/matzehuels/titlecard/pkg/errors"
)

// DefaultPattern matches `Lost <STYLE> Episode: "<title>"`.
const DefaultPattern = `Lost (\w+) Episode: "(.+)"`

// Request is a style key and title found in text.
type Request struct {
	Style string
	Title string
}

// Matcher finds card requests with a regular expression whose first two
// capture groups are the style key and the title.
type Matcher struct {
	re *regexp.Regexp
}

var defaultMatcher = &Matcher{re: regexp.MustCompile(DefaultPattern)}

// Default returns the matcher for DefaultPattern.
func Default() *Matcher {
	return defaultMatcher
}

// New compiles a custom pattern. It must have at least two capture groups.
func New(pattern string) (*Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "compile trigger pattern")
	}
	if re.NumSubexp() < 2 {
		return nil, errors.New(errors.ErrCodeConfiguration, "trigger pattern needs two capture groups, has %d", re.NumSubexp())
	}
	return &Matcher{re: re}, nil
}

// Match returns the first request found in text.
func (m *Matcher) Match(text string) (Request, bool) {
	sub := m.re.FindStringSubmatch(text)
	if sub == nil {
		return Request{}, false
	}
	req := Request{
		Style: strings.TrimSpace(sub[1]),
		Title: strings.TrimSpace(sub[2]),
	}
	if req.Title == "" {
		return Request{}, false
	}
	return req, true
}

// Match uses the default matcher.
func Match(text string) (Request, bool) {
	return defaultMatcher.Match(text)
}
