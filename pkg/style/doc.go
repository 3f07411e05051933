// Package style defines title card styles and the registry that resolves them.
//
// # Overview
//
// A [Descriptor] is the immutable configuration bundle for one style key: the
// font and background assets, the fill (solid color or vertical gradient), the
// base font size with its shrink steps, the anchor point and alignment, the
// wrap width, the shadow and the text transform. Each descriptor carries an
// explicit [Mode] tag so the renderer dispatches on a closed enumeration
// instead of guessing from which fields happen to be set.
//
// # Registry
//
// A [Registry] is built once at process start, either from the embedded
// default table ([Defaults]) or from a TOML file ([Load]). Resolution is
// total: unknown or empty keys fall back to the registry's default style.
//
//	reg, err := style.Load("styles.toml")
//	if err != nil {
//	    return err
//	}
//	d := reg.Resolve("TOS")
//
// # Configuration
//
// The style table is a list of [[style]] tables:
//
//	default = "TNG"
//
//	[[style]]
//	key        = "TOS"
//	font       = "fonts/horizon.ttf"
//	background = "templates/TOS_bg.jpg"
//	color      = "yellow"
//	size       = 75
//	x          = 0.92
//	y          = 0.85
//	anchor     = "bottom-right"
//	align      = "right"
//	wrap       = 22
//	quote      = true
//	uppercase  = true
//
//	[style.shadow]
//	enabled = true
//	color   = "black"
//
// Gradient styles set top_color and bottom_color instead of color. Colors are
// CSS color names or hex values.
package style
