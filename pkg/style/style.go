package style

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/matzehuels/titlecard/pkg/errors"
)

const (
	// DefaultLineGap is the pixel gap between wrapped lines.
	DefaultLineGap = 5

	// DefaultStaggerStep is the per-line horizontal offset of staggered styles.
	DefaultStaggerStep = 40

	// DefaultShadowOffset is the shadow displacement in pixels along both axes.
	DefaultShadowOffset = 3
)

// DefaultShrink is the shrink table applied when a style does not declare one.
var DefaultShrink = []ShrinkStep{
	{Over: 15, Scale: 0.8},
	{Over: 25, Scale: 0.6},
}

// =============================================================================
// Render Mode
// =============================================================================

// Mode selects the drawing strategy of a style.
type Mode int

const (
	// ModeStandard draws the wrapped lines as one block in a solid color.
	ModeStandard Mode = iota
	// ModeGradient fills each line with its own vertical gradient.
	ModeGradient
	// ModeStaggered shifts every line further right, like a staircase.
	ModeStaggered
)

var modeNames = map[Mode]string{
	ModeStandard:  "standard",
	ModeGradient:  "gradient",
	ModeStaggered: "staggered",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name. "per-line-gradient" is accepted as an alias
// of "gradient".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "solid":
		return ModeStandard, nil
	case "gradient", "per-line-gradient":
		return ModeGradient, nil
	case "staggered", "staggered-diagonal":
		return ModeStaggered, nil
	}
	return 0, errors.New(errors.ErrCodeConfiguration, "unknown render mode %q", s)
}

// =============================================================================
// Fill
// =============================================================================

// FillKind tells which color fields of a Fill are meaningful.
type FillKind int

const (
	// FillNone is the zero value and never valid.
	FillNone FillKind = iota
	FillSolid
	FillGradient
)

func (k FillKind) String() string {
	switch k {
	case FillSolid:
		return "solid"
	case FillGradient:
		return "gradient"
	}
	return "none"
}

// Fill is the foreground color mode: a solid color or a top-to-bottom gradient.
type Fill struct {
	Kind   FillKind
	Color  color.RGBA // FillSolid
	Top    color.RGBA // FillGradient
	Bottom color.RGBA // FillGradient
}

// Solid returns a solid fill.
func Solid(c color.RGBA) Fill { return Fill{Kind: FillSolid, Color: c} }

// Gradient returns a vertical gradient fill.
func Gradient(top, bottom color.RGBA) Fill {
	return Fill{Kind: FillGradient, Top: top, Bottom: bottom}
}

// =============================================================================
// Anchor & Alignment
// =============================================================================

// TextAnchor names the point of the text block that sits on the anchor target.
type TextAnchor int

const (
	TopLeft TextAnchor = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

var anchorNames = []string{
	"top-left", "top-center", "top-right",
	"middle-left", "middle-center", "middle-right",
	"bottom-left", "bottom-center", "bottom-right",
}

func (a TextAnchor) String() string {
	if a >= 0 && int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("TextAnchor(%d)", int(a))
}

// Fractions returns the anchor as fractions of the block's width and height.
func (a TextAnchor) Fractions() (ax, ay float64) {
	col, row := int(a)%3, int(a)/3
	return float64(col) / 2, float64(row) / 2
}

// ParseAnchor parses "bottom-right" style names, "center", and the two-letter
// codes used by common imaging libraries ("la", "ma", "rd", ...).
func ParseAnchor(s string) (TextAnchor, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "center" {
		return MiddleCenter, nil
	}
	for i, name := range anchorNames {
		if s == name {
			return TextAnchor(i), nil
		}
	}
	if len(s) == 2 {
		col := strings.IndexByte("lmr", s[0])
		row := -1
		switch s[1] {
		case 'a', 't':
			row = 0
		case 'm':
			row = 1
		case 's', 'b', 'd':
			row = 2
		}
		if col >= 0 && row >= 0 {
			return TextAnchor(row*3 + col), nil
		}
	}
	return 0, errors.New(errors.ErrCodeConfiguration, "unknown text anchor %q", s)
}

// Align is the horizontal alignment of lines inside a multi-line block.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return fmt.Sprintf("Align(%d)", int(a))
}

// Fraction returns 0, 0.5 or 1 for left, center and right.
func (a Align) Fraction() float64 { return float64(a) / 2 }

// ParseAlign parses "left", "center" or "right".
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "":
		return AlignLeft, nil
	case "center", "centre", "middle":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return 0, errors.New(errors.ErrCodeConfiguration, "unknown alignment %q", s)
}

// Anchor positions the text block relative to the background.
type Anchor struct {
	X, Y  float64    // target point as fractions of the image size
	Point TextAnchor // which point of the block sits on the target
	Align Align      // line alignment within the block
}

// =============================================================================
// Descriptor
// =============================================================================

// Shadow is an optional offset copy of the text drawn underneath it.
type Shadow struct {
	Enabled bool
	Color   color.RGBA
	DX, DY  int
}

// Transform controls how the title is turned into display text.
type Transform struct {
	Quote     bool // wrap in double quotes
	Uppercase bool // upper-case after quoting
}

// ShrinkStep scales the base font size once the display text is longer than
// Over characters.
type ShrinkStep struct {
	Over  int
	Scale float64
}

// Descriptor is the immutable configuration of one style.
type Descriptor struct {
	Key         string
	Name        string
	Font        string // asset reference
	Background  string // asset reference
	Fill        Fill
	Size        int // base font size in points
	Anchor      Anchor
	Wrap        int // max characters per line
	Shadow      Shadow
	Transform   Transform
	Mode        Mode
	Shrink      []ShrinkStep
	LineGap     int
	StaggerStep int
}

// Validate checks the descriptor's invariants. All failures are
// CONFIGURATION_ERROR.
func (d Descriptor) Validate() error {
	if d.Key == "" {
		return errors.New(errors.ErrCodeConfiguration, "style key cannot be empty")
	}
	if err := errors.ValidateAssetRef(d.Font); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "style %s: font", d.Key)
	}
	if err := errors.ValidateAssetRef(d.Background); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "style %s: background", d.Key)
	}
	if d.Size <= 0 {
		return errors.New(errors.ErrCodeConfiguration, "style %s: size must be positive, got %d", d.Key, d.Size)
	}
	if d.Wrap <= 0 {
		return errors.New(errors.ErrCodeConfiguration, "style %s: wrap must be positive, got %d", d.Key, d.Wrap)
	}
	if d.Anchor.X < 0 || d.Anchor.X > 1 || d.Anchor.Y < 0 || d.Anchor.Y > 1 {
		return errors.New(errors.ErrCodeConfiguration, "style %s: anchor (%g, %g) outside [0,1]", d.Key, d.Anchor.X, d.Anchor.Y)
	}
	if d.Anchor.Point < TopLeft || d.Anchor.Point > BottomRight {
		return errors.New(errors.ErrCodeConfiguration, "style %s: invalid text anchor %d", d.Key, int(d.Anchor.Point))
	}
	if d.Anchor.Align < AlignLeft || d.Anchor.Align > AlignRight {
		return errors.New(errors.ErrCodeConfiguration, "style %s: invalid alignment %d", d.Key, int(d.Anchor.Align))
	}
	if d.LineGap < 0 || d.StaggerStep < 0 {
		return errors.New(errors.ErrCodeConfiguration, "style %s: line gap and stagger step cannot be negative", d.Key)
	}
	if err := validateShrink(d.Key, d.Shrink); err != nil {
		return err
	}

	switch d.Mode {
	case ModeGradient:
		if d.Fill.Kind != FillGradient {
			return errors.New(errors.ErrCodeConfiguration, "style %s: gradient mode requires top and bottom colors", d.Key)
		}
	case ModeStandard, ModeStaggered:
		if d.Fill.Kind != FillSolid {
			return errors.New(errors.ErrCodeConfiguration, "style %s: %s mode requires a solid color, got %s fill", d.Key, d.Mode, d.Fill.Kind)
		}
	default:
		return errors.New(errors.ErrCodeConfiguration, "style %s: unknown render mode %s", d.Key, d.Mode)
	}
	return nil
}

func validateShrink(key string, steps []ShrinkStep) error {
	for i, s := range steps {
		if s.Over < 0 || s.Scale <= 0 || s.Scale > 1 {
			return errors.New(errors.ErrCodeConfiguration, "style %s: shrink step %d must have over >= 0 and 0 < scale <= 1", key, i)
		}
		if i > 0 {
			prev := steps[i-1]
			if s.Over <= prev.Over || s.Scale >= prev.Scale {
				return errors.New(errors.ErrCodeConfiguration, "style %s: shrink thresholds must increase and scales decrease", key)
			}
		}
	}
	return nil
}

// Fingerprint returns a canonical text form of the descriptor. Two
// descriptors with equal fingerprints render identically given equal assets.
func (d Descriptor) Fingerprint() string {
	return fmt.Sprintf("%+v", d)
}
