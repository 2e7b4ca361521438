package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTransform is wrapped by every Transform/Extent construction error.
var ErrInvalidTransform = errors.New("invalid transform")

// Extent maps between world space and normalized space. The view is
// ViewW x ViewH tiles of TileWidth world units, centered on the world
// origin; its edges land on -1 and +1 in normalized space.
type Extent struct {
	halfW float64
	halfH float64
}

// NewExtent builds the world<->normalized mapping for a view of
// viewW x viewH tiles.
func NewExtent(tileWidth, viewW, viewH float64) (Extent, error) {
	if !finitePositive(tileWidth) {
		return Extent{}, fmt.Errorf("core: %w: tile width %v must be positive", ErrInvalidTransform, tileWidth)
	}
	if !finitePositive(viewW) || !finitePositive(viewH) {
		return Extent{}, fmt.Errorf("core: %w: view %vx%v tiles is degenerate", ErrInvalidTransform, viewW, viewH)
	}
	e := Extent{
		halfW: viewW * tileWidth / 2,
		halfH: viewH * tileWidth / 2,
	}
	if !finitePositive(e.halfW) || !finitePositive(e.halfH) {
		return Extent{}, fmt.Errorf("core: %w: view %vx%v tiles of %v overflows", ErrInvalidTransform, viewW, viewH, tileWidth)
	}
	return e, nil
}

// finitePositive rejects zero, negatives, NaN and infinities.
func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// WorldToNormalized scales a world point into the view's unit range.
func (e Extent) WorldToNormalized(p World) Norm {
	return Norm{X: p.X / e.halfW, Y: p.Y / e.halfH}
}

// NormalizedToWorld is the exact inverse of WorldToNormalized.
func (e Extent) NormalizedToWorld(n Norm) World {
	return World{X: n.X * e.halfW, Y: n.Y * e.halfH}
}

// HalfSize returns the half-width and half-height of the view in world units.
func (e Extent) HalfSize() Size {
	return Size{W: e.halfW, H: e.halfH}
}

// Transform converts between world, normalized and pixel space.
//
// The world origin maps to the surface center. World +Y is up and pixel +Y
// is down, so the y-axis flips:
//
//	px = round(cx + k*wx)
//	py = round(cy - k*wy)
//
// where k is the scale (pixels per world unit) and (cx, cy) is half the
// surface size. A Transform is immutable; a resized surface needs a new one.
type Transform struct {
	tileWidth float64
	scale     float64
	width     int
	height    int
	extent    Extent
}

// NewTransform validates the parameters and builds a Transform.
func NewTransform(tileWidth, scale float64, width, height int, view Extent) (Transform, error) {
	if !finitePositive(tileWidth) {
		return Transform{}, fmt.Errorf("core: %w: tile width %v must be positive", ErrInvalidTransform, tileWidth)
	}
	if !finitePositive(scale) {
		return Transform{}, fmt.Errorf("core: %w: scale %v must be positive", ErrInvalidTransform, scale)
	}
	if width <= 0 || height <= 0 {
		return Transform{}, fmt.Errorf("core: %w: surface %dx%d is degenerate", ErrInvalidTransform, width, height)
	}
	if !finitePositive(view.halfW) || !finitePositive(view.halfH) {
		return Transform{}, fmt.Errorf("core: %w: view extent %vx%v is degenerate", ErrInvalidTransform, view.halfW, view.halfH)
	}
	return Transform{
		tileWidth: tileWidth,
		scale:     scale,
		width:     width,
		height:    height,
		extent:    view,
	}, nil
}

// TileWidth returns the tile width in world units.
func (t Transform) TileWidth() float64 { return t.tileWidth }

// Scale returns the number of pixels per world unit.
func (t Transform) Scale() float64 { return t.scale }

// Size returns the output surface size in pixels.
func (t Transform) Size() (int, int) { return t.width, t.height }

// MoveStep returns the distance moved by one movement command: half a tile.
func (t Transform) MoveStep() float64 { return t.tileWidth / 2 }

// Extent returns the world<->normalized mapping.
func (t Transform) Extent() Extent { return t.extent }

// anchor returns the pixel-space position of the world origin.
func (t Transform) anchor() (float64, float64) {
	return float64(t.width) / 2, float64(t.height) / 2
}

// Anchor returns the pixel the world origin maps to.
func (t Transform) Anchor() Pixel {
	return t.WorldToPixel(World{})
}

// WorldToPixel maps a world point to the nearest pixel.
func (t Transform) WorldToPixel(p World) Pixel {
	cx, cy := t.anchor()
	return Pixel{
		X: int(math.Round(cx + t.scale*p.X)),
		Y: int(math.Round(cy - t.scale*p.Y)),
	}
}

// WorldToPixels maps a vertex list, preserving order.
func (t Transform) WorldToPixels(ps []World) []Pixel {
	out := make([]Pixel, len(ps))
	for i, p := range ps {
		out[i] = t.WorldToPixel(p)
	}
	return out
}

// PixelToWorld maps a pixel back to world space. Composed with
// WorldToPixel it returns the original point within half a pixel
// (0.5/scale world units) per axis.
func (t Transform) PixelToWorld(p Pixel) World {
	cx, cy := t.anchor()
	return World{
		X: (float64(p.X) - cx) / t.scale,
		Y: -(float64(p.Y) - cy) / t.scale,
	}
}

// WorldToNormalized delegates to the view extent; the surface size plays
// no part in it.
func (t Transform) WorldToNormalized(p World) Norm {
	return t.extent.WorldToNormalized(p)
}

// NormalizedToWorld delegates to the view extent.
func (t Transform) NormalizedToWorld(n Norm) World {
	return t.extent.NormalizedToWorld(n)
}
