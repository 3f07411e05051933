package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/titlecard/pkg/errors"
	"github.com/matzehuels/titlecard/pkg/layout"
	"github.com/matzehuels/titlecard/pkg/style"
)

// drawFunc draws the text of one card onto the canvas.
type drawFunc func(c *canvas)

// strategyFor returns the drawing strategy for a render mode.
func strategyFor(m style.Mode) (drawFunc, error) {
	switch m {
	case style.ModeStandard:
		return drawStandard, nil
	case style.ModeGradient:
		return drawGradient, nil
	case style.ModeStaggered:
		return drawStaggered, nil
	default:
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown render mode %s", m)
	}
}

// Render draws text onto a copy of bg using the descriptor's mode, font size,
// anchor, colors and shadow. The returned image has bg's dimensions.
func Render(bg image.Image, f *truetype.Font, text layout.Text, d style.Descriptor) (img *image.RGBA, err error) {
	if bg == nil {
		return nil, errors.New(errors.ErrCodeRender, "style %s: no background image", d.Key)
	}
	if f == nil {
		return nil, errors.New(errors.ErrCodeRender, "style %s: no font", d.Key)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if len(text.Lines) == 0 {
		return nil, errors.New(errors.ErrCodeRender, "style %s: no lines to draw", d.Key)
	}
	if text.FontSize <= 0 {
		return nil, errors.New(errors.ErrCodeRender, "style %s: font size must be positive, got %d", d.Key, text.FontSize)
	}
	drawText, err := strategyFor(d.Mode)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = errors.New(errors.ErrCodeRender, "style %s: draw failed: %v", d.Key, r)
		}
	}()

	c := newCanvas(bg, f, text, d)
	defer c.face.Close()
	drawText(c)
	return c.rgba, nil
}

// canvas is the per-render drawing state. It is never shared between renders.
type canvas struct {
	rgba    *image.RGBA
	dc      *gg.Context
	face    font.Face
	metrics font.Metrics
	d       style.Descriptor
	lines   []string
	size    int
}

func newCanvas(bg image.Image, f *truetype.Font, text layout.Text, d style.Descriptor) *canvas {
	b := bg.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), bg, b.Min, draw.Src)

	face := truetype.NewFace(f, &truetype.Options{
		Size:    float64(text.FontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc := gg.NewContextForRGBA(rgba)
	dc.SetFontFace(face)

	return &canvas{
		rgba:    rgba,
		dc:      dc,
		face:    face,
		metrics: face.Metrics(),
		d:       d,
		lines:   text.Lines,
		size:    text.FontSize,
	}
}

// target is the anchor point on the background in pixels.
func (c *canvas) target() (x, y float64) {
	b := c.rgba.Bounds()
	return float64(b.Dx()) * c.d.Anchor.X, float64(b.Dy()) * c.d.Anchor.Y
}

// place returns the top-left corner of a w x h block whose anchor point sits
// on the target.
func (c *canvas) place(w, h float64) (left, top float64) {
	tx, ty := c.target()
	ax, ay := c.d.Anchor.Point.Fractions()
	return tx - ax*w, ty - ay*h
}

// advance is the horizontal advance of s in pixels.
func (c *canvas) advance(s string) float64 {
	return toFloat(font.MeasureString(c.face, s))
}

func (c *canvas) ascent() float64 { return toFloat(c.metrics.Ascent) }

func (c *canvas) descent() float64 { return toFloat(c.metrics.Descent) }

func (c *canvas) lineHeight() float64 { return toFloat(c.metrics.Height) }

// blockHeight spans from the first line's ascent line to the last line's
// descent line when successive baselines are step apart.
func (c *canvas) blockHeight(step float64) float64 {
	return float64(len(c.lines)-1)*step + c.ascent() + c.descent()
}

func (c *canvas) widest() float64 {
	var w float64
	for _, line := range c.lines {
		w = math.Max(w, c.advance(line))
	}
	return w
}

func toFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
