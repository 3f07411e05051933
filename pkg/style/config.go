package style

import (
	_ "embed"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/titlecard/pkg/errors"
)

//go:embed styles.toml
var defaultTable []byte

// fileConfig is the TOML layout of a style table.
type fileConfig struct {
	Default string        `toml:"default"`
	Styles  []styleConfig `toml:"style"`
}

type styleConfig struct {
	Key         string         `toml:"key"`
	Name        string         `toml:"name"`
	Font        string         `toml:"font"`
	Background  string         `toml:"background"`
	Color       string         `toml:"color"`
	TopColor    string         `toml:"top_color"`
	BottomColor string         `toml:"bottom_color"`
	Size        int            `toml:"size"`
	X           float64        `toml:"x"`
	Y           float64        `toml:"y"`
	Anchor      string         `toml:"anchor"`
	Align       string         `toml:"align"`
	Wrap        int            `toml:"wrap"`
	Quote       bool           `toml:"quote"`
	Uppercase   bool           `toml:"uppercase"`
	Mode        string         `toml:"mode"`
	LineGap     *int           `toml:"line_gap"`
	StaggerStep int            `toml:"stagger_step"`
	Shadow      shadowConfig   `toml:"shadow"`
	Shrink      []shrinkConfig `toml:"shrink"`
}

type shadowConfig struct {
	Enabled bool   `toml:"enabled"`
	Color   string `toml:"color"`
	Offset  []int  `toml:"offset"`
}

type shrinkConfig struct {
	Over  int     `toml:"over"`
	Scale float64 `toml:"scale"`
}

// Load reads a TOML style table from path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeResourceNotFound, err, "style table %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "read style table %s", path)
	}
	return Parse(data)
}

// Parse builds a registry from TOML data. Unknown keys are rejected so that
// typos in the table surface at startup rather than as silently ignored
// settings.
func Parse(data []byte) (*Registry, error) {
	var cfg fileConfig
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "parse style table")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown style table keys: %s", strings.Join(keys, ", "))
	}

	descs := make([]Descriptor, 0, len(cfg.Styles))
	for i, sc := range cfg.Styles {
		d, err := sc.descriptor()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "style #%d (%s)", i+1, sc.Key)
		}
		descs = append(descs, d)
	}

	def := cfg.Default
	if def == "" && len(descs) > 0 {
		def = descs[0].Key
	}
	return NewRegistry(descs, def)
}

var (
	defaultsOnce sync.Once
	defaults     *Registry
)

// Defaults returns the registry parsed from the embedded style table.
// The embedded table is known-good; a parse failure is a build defect.
func Defaults() *Registry {
	defaultsOnce.Do(func() {
		reg, err := Parse(defaultTable)
		if err != nil {
			panic("style: embedded style table: " + err.Error())
		}
		defaults = reg
	})
	return defaults
}

// DefaultTable returns the embedded TOML style table.
func DefaultTable() []byte {
	return append([]byte(nil), defaultTable...)
}

// descriptor converts one [[style]] table, inferring the fill kind from which
// color keys are present. Mixed or partial color settings are rejected here;
// everything else is left to Descriptor.Validate.
func (sc styleConfig) descriptor() (Descriptor, error) {
	d := Descriptor{
		Key:         sc.Key,
		Name:        sc.Name,
		Font:        sc.Font,
		Background:  sc.Background,
		Size:        sc.Size,
		Wrap:        sc.Wrap,
		Transform:   Transform{Quote: sc.Quote, Uppercase: sc.Uppercase},
		LineGap:     DefaultLineGap,
		StaggerStep: sc.StaggerStep,
		Shrink:      DefaultShrink,
	}
	if d.Name == "" {
		d.Name = sc.Key
	}
	if sc.LineGap != nil {
		d.LineGap = *sc.LineGap
	}
	if d.StaggerStep == 0 {
		d.StaggerStep = DefaultStaggerStep
	}
	if sc.Shrink != nil {
		d.Shrink = make([]ShrinkStep, len(sc.Shrink))
		for i, s := range sc.Shrink {
			d.Shrink[i] = ShrinkStep{Over: s.Over, Scale: s.Scale}
		}
	}

	fill, err := sc.fill()
	if err != nil {
		return Descriptor{}, err
	}
	d.Fill = fill

	d.Mode = ModeStandard
	if fill.Kind == FillGradient {
		d.Mode = ModeGradient
	}
	if sc.Mode != "" {
		if d.Mode, err = ParseMode(sc.Mode); err != nil {
			return Descriptor{}, err
		}
	}

	point, err := ParseAnchor(orDefault(sc.Anchor, "top-left"))
	if err != nil {
		return Descriptor{}, err
	}
	align, err := ParseAlign(sc.Align)
	if err != nil {
		return Descriptor{}, err
	}
	d.Anchor = Anchor{X: sc.X, Y: sc.Y, Point: point, Align: align}

	d.Shadow = Shadow{Enabled: sc.Shadow.Enabled, Color: Black, DX: DefaultShadowOffset, DY: DefaultShadowOffset}
	if sc.Shadow.Color != "" {
		if d.Shadow.Color, err = ParseColor(sc.Shadow.Color); err != nil {
			return Descriptor{}, err
		}
	}
	switch len(sc.Shadow.Offset) {
	case 0:
	case 2:
		d.Shadow.DX, d.Shadow.DY = sc.Shadow.Offset[0], sc.Shadow.Offset[1]
	default:
		return Descriptor{}, errors.New(errors.ErrCodeConfiguration, "shadow offset must be [dx, dy]")
	}

	return d, nil
}

func (sc styleConfig) fill() (Fill, error) {
	hasSolid := sc.Color != ""
	hasTop, hasBottom := sc.TopColor != "", sc.BottomColor != ""

	switch {
	case hasSolid && (hasTop || hasBottom):
		return Fill{}, errors.New(errors.ErrCodeConfiguration, "color and gradient colors are mutually exclusive")
	case hasTop != hasBottom:
		return Fill{}, errors.New(errors.ErrCodeConfiguration, "gradient needs both top_color and bottom_color")
	case hasSolid:
		c, err := ParseColor(sc.Color)
		if err != nil {
			return Fill{}, err
		}
		return Solid(c), nil
	case hasTop:
		top, err := ParseColor(sc.TopColor)
		if err != nil {
			return Fill{}, err
		}
		bottom, err := ParseColor(sc.BottomColor)
		if err != nil {
			return Fill{}, err
		}
		return Gradient(top, bottom), nil
	}
	return Fill{}, errors.New(errors.ErrCodeConfiguration, "no color mode: set color or top_color/bottom_color")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
