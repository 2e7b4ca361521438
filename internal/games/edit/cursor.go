package edit

import (
	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
	"github.com/vovakirdan/tilegame/internal/tilemap"
)

// Frame entry names published by the editor.
const (
	CursorName  = "cursor"
	PaletteName = "palette"
)

// ghostAlpha is the opacity of the cursor's preview tile.
const ghostAlpha = 100

// Cursor is the grid cell the editor acts on. It follows the pointer until
// a movement key is pressed, and the pointer again once it moves.
type Cursor struct {
	Pos        tilemap.Key
	usePointer bool
	lastPtr    core.World
	seenPtr    bool
}

// Move steps the cursor one cell and detaches it from the pointer.
func (c *Cursor) Move(dx, dy int) {
	c.Pos = c.Pos.Add(dx, dy)
	c.usePointer = false
}

// Track follows the pointer when it has moved since the last call.
func (c *Cursor) Track(p core.World, tileWidth float64) {
	if !c.seenPtr || p != c.lastPtr {
		c.usePointer = true
	}
	c.lastPtr, c.seenPtr = p, true
	if c.usePointer {
		c.Pos = tilemap.KeyAt(p, tileWidth)
	}
}

// FollowsPointer reports whether the pointer drives the cursor.
func (c *Cursor) FollowsPointer() bool {
	return c.usePointer
}

// Palette is the list of tile styles, numbered from 1.
type Palette struct {
	Colors   []core.Color
	Selected int
}

// Select picks style n. Out-of-range styles are ignored.
func (p *Palette) Select(n int) bool {
	if n < 1 || n > len(p.Colors) {
		return false
	}
	p.Selected = n
	return true
}

// Color returns the selected style's color.
func (p *Palette) Color() core.Color {
	if p.Selected < 1 || p.Selected > len(p.Colors) {
		return core.ColorWhite
	}
	return p.Colors[p.Selected-1]
}

// Drawing lays the swatches out in a row, two tiles apart, one tile below
// top.
func (p *Palette) Drawing(tileWidth, top float64) draw.PaletteDrawing {
	swatches := make([]draw.Swatch, len(p.Colors))
	for i, c := range p.Colors {
		n := i + 1
		center := core.W(float64(2*n-1)*tileWidth, top-tileWidth)
		swatches[i] = draw.Swatch{
			Vertices: core.NewFRect(center, tileWidth, tileWidth).Vertices(),
			Color:    c,
			Selected: n == p.Selected,
		}
	}
	return draw.PaletteDrawing{Swatches: swatches}
}
