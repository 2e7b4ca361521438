package render

import (
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"github.com/vovakirdan/tilegame/internal/core"
)

// SetLogger sends gg's own diagnostics to logger.
func SetLogger(logger *log.Logger) {
	if logger == nil {
		gg.SetLogger(nil)
		return
	}
	gg.SetLogger(slog.New(logger.WithPrefix("gg")))
}

// Canvas draws aliased paths onto a surface with a gg context that shares
// the surface's pixels. Anti-aliasing is off: a pixel is covered when its
// center lies inside the path, so an axis-aligned quad from (x0, y0) to
// (x1, y1) covers exactly (x1-x0) x (y1-y0) pixels and adjacent tiles never
// overlap. Colors with alpha below 255 are blended source-over.
type Canvas struct {
	dc *gg.Context
}

// NewCanvas binds a canvas to dst. Drawing on an empty surface does nothing.
func NewCanvas(dst *core.Surface) *Canvas {
	if dst.Width() == 0 || dst.Height() == 0 {
		return &Canvas{}
	}
	dc := gg.NewContextForPixmap(dst.Pixmap())
	dc.SetAntiAlias(false)
	dc.SetLineJoin(gg.LineJoinMiter)
	return &Canvas{dc: dc}
}

// Close releases the gg context.
func (c *Canvas) Close() error {
	if c.dc == nil {
		return nil
	}
	return c.dc.Close()
}

// polygon adds a closed path through pts, shifted by off on both axes.
func (c *Canvas) polygon(pts []core.Pixel, off float64) {
	c.dc.MoveTo(float64(pts[0].X)+off, float64(pts[0].Y)+off)
	for _, p := range pts[1:] {
		c.dc.LineTo(float64(p.X)+off, float64(p.Y)+off)
	}
	c.dc.ClosePath()
}

// FillPolygon fills a simple polygon.
func (c *Canvas) FillPolygon(pts []core.Pixel, col core.Color) error {
	if c.dc == nil || len(pts) < 3 {
		return nil
	}
	c.dc.SetColor(col.NRGBA())
	c.polygon(pts, 0)
	return c.dc.Fill()
}

// StrokePolygon outlines a closed polygon. The outline is centered on the
// pixels the vertices name, so a width-1 outline of a quad sits on its edge
// pixels.
func (c *Canvas) StrokePolygon(pts []core.Pixel, col core.Color, width int) error {
	if c.dc == nil || len(pts) < 2 {
		return nil
	}
	c.dc.SetColor(col.NRGBA())
	c.dc.SetLineWidth(float64(core.Max(width, 1)))
	c.dc.SetLineCap(gg.LineCapButt)
	c.polygon(pts, 0.5)
	return c.dc.Stroke()
}

// DrawLine draws a segment between the pixels a and b, both included.
func (c *Canvas) DrawLine(a, b core.Pixel, col core.Color, width int) error {
	if c.dc == nil {
		return nil
	}
	w := float64(core.Max(width, 1))
	c.dc.SetColor(col.NRGBA())
	if a == b {
		// A zero-length stroke has no direction to cap.
		c.dc.DrawRectangle(float64(a.X)+0.5-w/2, float64(a.Y)+0.5-w/2, w, w)
		return c.dc.Fill()
	}
	c.dc.SetLineWidth(w)
	c.dc.SetLineCap(gg.LineCapSquare)
	c.dc.DrawLine(float64(a.X)+0.5, float64(a.Y)+0.5, float64(b.X)+0.5, float64(b.Y)+0.5)
	return c.dc.Stroke()
}
