package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/matzehuels/titlecard/pkg/gradient"
)

// =============================================================================
// Standard
// =============================================================================

// drawStandard draws the lines as one block with a fixed line height.
// The whole shadow block goes down before the foreground block.
func drawStandard(c *canvas) {
	step := c.lineHeight() + float64(c.d.LineGap)
	w := c.widest()
	h := c.blockHeight(step)
	left, top := c.place(w, h)
	align := c.d.Anchor.Align.Fraction()

	block := func(dx, dy float64, col color.Color) {
		c.dc.SetColor(col)
		for i, line := range c.lines {
			x := left + align*(w-c.advance(line))
			y := top + float64(i)*step + c.ascent()
			c.dc.DrawString(line, x+dx, y+dy)
		}
	}

	if s := c.d.Shadow; s.Enabled {
		block(float64(s.DX), float64(s.DY), s.Color)
	}
	block(0, 0, c.d.Fill.Color)
}

// =============================================================================
// Per-line gradient
// =============================================================================

// lineBox is the pixel-snapped glyph bounds of one line relative to its dot.
type lineBox struct {
	bounds  image.Rectangle
	advance float64
}

func (c *canvas) measureLine(line string) lineBox {
	b, adv := font.BoundString(c.face, line)
	r := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	if r.Dy() <= 0 {
		// Blank lines still take up a row.
		r = image.Rect(0, -c.metrics.Ascent.Ceil(), 0, c.metrics.Descent.Ceil())
	}
	return lineBox{bounds: r, advance: toFloat(adv)}
}

// drawGradient fills every line with its own vertical gradient, spanning
// exactly the line's glyph bounds. The cursor advances by the line's pixel
// height plus the line gap.
func drawGradient(c *canvas) {
	boxes := make([]lineBox, len(c.lines))
	var w, h float64
	for i, line := range c.lines {
		boxes[i] = c.measureLine(line)
		w = math.Max(w, boxes[i].advance)
		h += float64(boxes[i].bounds.Dy())
	}
	h += float64(c.d.LineGap * (len(c.lines) - 1))
	left, top := c.place(w, h)
	align := c.d.Anchor.Align.Fraction()

	cursor := int(math.Round(top))
	for i, line := range c.lines {
		box := boxes[i]
		dot := image.Pt(
			int(math.Round(left+align*(w-box.advance))),
			cursor-box.bounds.Min.Y,
		)
		if s := c.d.Shadow; s.Enabled {
			c.dc.SetColor(s.Color)
			c.dc.DrawString(line, float64(dot.X+s.DX), float64(dot.Y+s.DY))
		}
		c.fillLine(line, dot, box.bounds)
		cursor += box.bounds.Dy() + c.d.LineGap
	}
}

// fillLine composites a gradient over the line's bounds through the line's
// coverage mask.
func (c *canvas) fillLine(line string, dot image.Point, bounds image.Rectangle) {
	if bounds.Dx() <= 0 {
		return
	}
	mask := gg.NewContext(bounds.Dx(), bounds.Dy())
	mask.SetFontFace(c.face)
	mask.SetColor(color.White)
	mask.DrawString(line, float64(-bounds.Min.X), float64(-bounds.Min.Y))

	dst := bounds.Add(dot)
	fill := gradient.New(dst, c.d.Fill.Top, c.d.Fill.Bottom).Image()
	draw.DrawMask(c.rgba, dst, fill, dst.Min, mask.AsMask(), image.Point{}, draw.Over)
}

// =============================================================================
// Staggered
// =============================================================================

// drawStaggered shifts line i right by i stagger steps. Each line draws its
// own shadow copy and then its foreground copy; alignment does not apply.
func drawStaggered(c *canvas) {
	step := float64(c.d.StaggerStep)
	advanceY := float64(c.size + c.d.LineGap)

	var w float64
	for i, line := range c.lines {
		w = math.Max(w, float64(i)*step+c.advance(line))
	}
	h := c.blockHeight(advanceY)
	left, top := c.place(w, h)

	for i, line := range c.lines {
		x := left + float64(i)*step
		y := top + float64(i)*advanceY + c.ascent()
		if s := c.d.Shadow; s.Enabled {
			c.dc.SetColor(s.Color)
			c.dc.DrawString(line, x+float64(s.DX), y+float64(s.DY))
		}
		c.dc.SetColor(c.d.Fill.Color)
		c.dc.DrawString(line, x, y)
	}
}
