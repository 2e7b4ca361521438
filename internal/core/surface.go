package core

import (
	"image"
	"io"

	"github.com/gogpu/gg"
)

// Surface is a 2D RGBA pixel buffer for rendering game art.
// It decouples rendering from the window or terminal, allowing the renderer
// to rasterize into plain memory while the platform handles actual display.
//
// The pixels live in a gg.Pixmap, so they are alpha-premultiplied like
// image.RGBA. Opaque colors read back unchanged.
type Surface struct {
	pm *gg.Pixmap
}

// NewSurface creates a new surface with the given dimensions, cleared to
// transparent black.
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.pm.Width()
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.pm.Height()
}

// Resize changes the surface dimensions. Content is discarded.
func (s *Surface) Resize(width, height int) {
	width = Max(width, 0)
	height = Max(height, 0)
	if s.pm != nil && s.pm.Width() == width && s.pm.Height() == height {
		clear(s.pm.Data())
		s.pm.NotifyPixelsChanged()
		return
	}
	s.pm = gg.NewPixmap(width, height)
}

// Pixmap returns the gg pixmap backing the surface. Drawing on it draws on
// the surface.
func (s *Surface) Pixmap() *gg.Pixmap {
	return s.pm
}

// Fill fills the entire surface with the given color.
func (s *Surface) Fill(c Color) {
	pix := s.pm.Data()
	if len(pix) == 0 {
		return
	}
	p := c.premultiplied()
	pix[0], pix[1], pix[2], pix[3] = p.R, p.G, p.B, p.A
	// Exponential copy
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
	s.pm.NotifyPixelsChanged()
}

// InBounds returns true if (x, y) is on the surface.
func (s *Surface) InBounds(x, y int) bool {
	return x >= 0 && x < s.Width() && y >= 0 && y < s.Height()
}

// Set writes a pixel. Out-of-bounds coordinates are silently ignored.
func (s *Surface) Set(x, y int, c Color) {
	p := c.premultiplied()
	s.pm.SetPixelPremul(x, y, p.R, p.G, p.B, p.A)
}

// Get returns the stored pixel at (x, y).
// Returns the zero color for out-of-bounds coordinates.
func (s *Surface) Get(x, y int) Color {
	if !s.InBounds(x, y) {
		return Color{}
	}
	i := (y*s.Width() + x) * 4
	pix := s.pm.Data()
	return Color{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]}
}

// Pix returns the underlying RGBA bytes. The slice is shared, not copied.
func (s *Surface) Pix() []uint8 {
	return s.pm.Data()
}

// Image returns a copy of the surface as an image.RGBA.
func (s *Surface) Image() *image.RGBA {
	return s.pm.ToImage()
}

// EncodePNG writes the surface as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.pm.EncodePNG(w)
}

// Count returns how many stored pixels equal c. Mostly useful in tests.
func (s *Surface) Count(c Color) int {
	pix := s.pm.Data()
	n := 0
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] == c.R && pix[i+1] == c.G && pix[i+2] == c.B && pix[i+3] == c.A {
			n++
		}
	}
	return n
}
