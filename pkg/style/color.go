package style

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/titlecard/pkg/errors"
)

// Black is the default shadow color.
var Black = color.RGBA{A: 0xff}

// ParseColor parses a CSS color name ("yellow", "steelblue") or a hex value
// ("#5286ff", "#fc0"). The result is always opaque.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, errors.New(errors.ErrCodeConfiguration, "color cannot be empty")
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return color.RGBA{}, errors.Wrap(errors.ErrCodeConfiguration, err, "invalid hex color %q", s)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, errors.New(errors.ErrCodeConfiguration, "unknown color %q", s)
}

// FormatColor renders c as a lower-case #rrggbb string.
func FormatColor(c color.RGBA) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}
