package core

import (
	"fmt"
	"image/color"
)

// Color is an 8-bit RGBA color. Alpha 255 is opaque.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Named colors used by the game art.
var (
	ColorWhite     = RGB(255, 255, 255)
	ColorGrey      = RGB(40, 40, 40)
	ColorMedGrey   = RGB(80, 80, 80)
	ColorLightGrey = RGB(120, 120, 120)
	ColorRed       = RGB(255, 0, 0)
)

// IsZero reports whether c is the zero value (fully transparent black).
func (c Color) IsZero() bool {
	return c == Color{}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Hex returns the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Name returns the palette name of the color's RGB part, or "unknown".
func (c Color) Name() string {
	switch RGB(c.R, c.G, c.B) {
	case ColorWhite:
		return "white"
	case ColorGrey:
		return "grey"
	case ColorMedGrey:
		return "med_grey"
	case ColorLightGrey:
		return "light_grey"
	case ColorRed:
		return "red"
	default:
		return "unknown"
	}
}

// String returns the color as an (r, g, b, a) tuple.
func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// NRGBA returns c as a straight-alpha color.Color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// premultiplied scales the color channels by alpha, the layout Surface
// stores.
func (c Color) premultiplied() Color {
	if c.A == 255 {
		return c
	}
	a := uint32(c.A)
	mul := func(v uint8) uint8 {
		return uint8((uint32(v)*a + 127) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}
