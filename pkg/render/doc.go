// Package render composites title text onto a background template.
//
// # Overview
//
// [Render] takes a decoded background, a parsed font, the laid-out text from
// package layout and the style descriptor, and returns a new raster with the
// background's dimensions. The background itself is never modified, so one
// decoded template can back any number of concurrent renders.
//
//	text := layout.Prepare("The Cage", d)
//	img, err := render.Render(bg.Image, font.Font, text, d)
//	err = render.Encode(w, img, render.PNG)
//
// # Placement
//
// The descriptor's anchor fractions (X, Y) pick a target point on the
// background. The text block is positioned so that its anchor point, one of
// nine positions from top-left to bottom-right, lands on the target.
//
// # Modes
//
// Every descriptor carries an explicit [style.Mode] and the renderer
// dispatches on it:
//
//   - Standard: all lines form one block with a fixed line height. The shadow
//     block, if enabled, is drawn first at the shadow offset, then the
//     foreground in the solid color. Lines are aligned inside the block.
//   - Gradient: each line gets its own vertical gradient spanning the line's
//     glyph bounds, composited through the line's coverage mask.
//   - Staggered: line i is shifted right by i steps, producing a descending
//     staircase. Each line draws its own shadow and foreground copy.
//
// A failure while drawing is reported as RENDER_ERROR and no partial image is
// returned.
//
// [style.Mode]: github.com/matzehuels/titlecard/pkg/style.Mode
package render
