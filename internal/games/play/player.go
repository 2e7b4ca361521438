package play

import (
	"math"

	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
)

// DrawName is the frame entry the player publishes under.
const DrawName = "player"

// Direction is a movement command.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the unit grid offset of the direction (+y is up).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirDown:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// Player is a colored square in world space. Its hitbox is always derived
// from Pos and the current size, never stored.
type Player struct {
	Pos   core.World
	Color core.Color
	Debug bool

	side      float64
	tileWidth float64
	maxSide   float64 // 0 = unbounded
}

// NewPlayer creates a player sizeTiles tiles wide, kept within one tile and
// maxTiles. maxTiles of 0 leaves the size unbounded.
func NewPlayer(pos core.World, tileWidth float64, sizeTiles, maxTiles int, color core.Color) *Player {
	maxTiles = core.Max(maxTiles, 0)
	upper := math.MaxInt
	if maxTiles > 0 {
		upper = maxTiles
	}
	return &Player{
		Pos:       pos,
		Color:     color,
		side:      float64(core.Clamp(sizeTiles, 1, upper)) * tileWidth,
		tileWidth: tileWidth,
		maxSide:   float64(maxTiles) * tileWidth,
	}
}

// Size returns the player's width and height; they are always equal.
func (p *Player) Size() core.Size {
	return core.Size{W: p.side, H: p.side}
}

// Side returns the side length in world units.
func (p *Player) Side() float64 {
	return p.side
}

// Step returns the distance of one move: half a tile.
func (p *Player) Step() float64 {
	return p.tileWidth / 2
}

func (p *Player) Hitbox() core.FRect {
	return core.NewFRect(p.Pos, p.side, p.side)
}

// Vertices returns the hitbox corners: top-left, top-right, bottom-right,
// bottom-left.
func (p *Player) Vertices() []core.World {
	return p.Hitbox().Vertices()
}

// Move displaces the player by one step.
func (p *Player) Move(d Direction) {
	dx, dy := d.Delta()
	p.Pos = p.Pos.Add(float64(dx)*p.Step(), float64(dy)*p.Step())
}

// Grow adds one tile width to the side. It returns true if the configured
// maximum clamped the result.
func (p *Player) Grow() (clamped bool) {
	return p.resize(p.side + p.tileWidth)
}

// Shrink removes one tile width from the side, never going below one tile.
// It returns true if the minimum clamped the result.
func (p *Player) Shrink() (clamped bool) {
	return p.resize(p.side - p.tileWidth)
}

// resize sets the side to want, kept within one tile and the maximum.
func (p *Player) resize(want float64) (clamped bool) {
	upper := math.Inf(1)
	if p.maxSide > 0 {
		upper = p.maxSide
	}
	p.side = core.ClampF(want, p.tileWidth, upper)
	return p.side != want
}

// DebugTiles covers the player with an n x n grid of tile-sized quads,
// where n is the side in tiles. Rows run bottom to top.
func (p *Player) DebugTiles() [][]core.World {
	t := p.tileWidth
	n := int(math.Round(p.side / t))
	offset := t / 2 * float64(n-1)

	tiles := make([][]core.World, 0, n*n)
	for j := range n {
		for i := range n {
			c := p.Pos.Add(float64(i)*t-offset, float64(j)*t-offset)
			tiles = append(tiles, core.NewFRect(c, t, t).Vertices())
		}
	}
	return tiles
}

// Draw publishes the player's drawing.
func (p *Player) Draw(frame *draw.Frame) {
	d := draw.PlayerDrawing{
		Vertices: p.Vertices(),
		Color:    p.Color,
	}
	if p.Debug {
		d.Debug = &draw.DebugOverlay{
			Tiles: p.DebugTiles(),
			Color: core.ColorWhite,
		}
	}
	frame.Publish(DrawName, d)
}
