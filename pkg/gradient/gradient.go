// Package gradient computes vertical color gradients over a bounding box.
//
// Each row of the box gets one color, linearly interpolated between the top
// and bottom colors channel by channel and rounded to the nearest integer.
// The first row is exactly the top color and the last row exactly the bottom
// color.
package gradient

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Vertical is a top-to-bottom gradient anchored to the rows [Y0, Y1].
type Vertical struct {
	Bounds image.Rectangle
	Y0, Y1 int

	top, bottom colorful.Color
}

// New returns the gradient for bounds. The first row is bounds.Min.Y and the
// last row is bounds.Max.Y-1. Colors are treated as opaque.
func New(bounds image.Rectangle, top, bottom color.Color) Vertical {
	y1 := bounds.Max.Y - 1
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	return Vertical{
		Bounds: bounds,
		Y0:     bounds.Min.Y,
		Y1:     y1,
		top:    opaque(top),
		bottom: opaque(bottom),
	}
}

// At returns the color of row y. Rows outside [Y0, Y1] clamp to the
// endpoint colors.
func (v Vertical) At(y int) color.RGBA {
	t := float64(y-v.Y0) / float64(max(1, v.Y1-v.Y0))
	t = min(1, max(0, t))
	r, g, b := v.top.BlendRgb(v.bottom, t).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Image paints the gradient over its bounds.
func (v Vertical) Image() *image.RGBA {
	img := image.NewRGBA(v.Bounds)
	v.Fill(img, v.Bounds)
	return img
}

// Fill paints the rows of r that intersect dst.
func (v Vertical) Fill(dst *image.RGBA, r image.Rectangle) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		c := v.At(y)
		row := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Pix[row+0] = c.R
			dst.Pix[row+1] = c.G
			dst.Pix[row+2] = c.B
			dst.Pix[row+3] = c.A
			row += 4
		}
	}
}

// opaque converts c to a colorful.Color, ignoring alpha.
func opaque(c color.Color) colorful.Color {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	rgba.A = 0xff
	cf, _ := colorful.MakeColor(rgba)
	return cf
}
