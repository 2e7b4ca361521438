// Package tilemap holds the level: colored tiles on an integer grid, their
// persisted file format, and the art the renderer draws for them.
package tilemap

import (
	"errors"
	"maps"
	"slices"

	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
)

var (
	ErrOccupied = errors.New("tilemap: cell is occupied")
	ErrNoTile   = errors.New("tilemap: no tile at cell")
)

// DrawName is the frame entry the tile map publishes under.
const DrawName = "tileMap"

// Tile is one grid cell with a color.
type Tile struct {
	Pos   Key
	Color core.Color
}

// TileMap stores at most one tile per cell.
type TileMap struct {
	tiles map[Key]core.Color
}

// New creates an empty tile map.
func New() *TileMap {
	return &TileMap{tiles: make(map[Key]core.Color)}
}

// FromTiles builds a map from a tile list. Later tiles replace earlier ones
// on the same cell.
func FromTiles(tiles ...Tile) *TileMap {
	m := New()
	for _, t := range tiles {
		m.Place(t.Pos, t.Color)
	}
	return m
}

func (m *TileMap) Len() int {
	return len(m.tiles)
}

func (m *TileMap) Get(k Key) (core.Color, bool) {
	c, ok := m.tiles[k]
	return c, ok
}

func (m *TileMap) Has(k Key) bool {
	_, ok := m.tiles[k]
	return ok
}

// Place puts a tile on a cell, replacing whatever was there.
func (m *TileMap) Place(k Key, c core.Color) {
	m.tiles[k] = c
}

// Erase removes the tile on a cell. It returns false if the cell was empty.
func (m *TileMap) Erase(k Key) bool {
	if _, ok := m.tiles[k]; !ok {
		return false
	}
	delete(m.tiles, k)
	return true
}

// Move relocates a tile. The target cell must be empty.
func (m *TileMap) Move(from, to Key) error {
	c, ok := m.tiles[from]
	if !ok {
		return ErrNoTile
	}
	if from == to {
		return nil
	}
	if _, taken := m.tiles[to]; taken {
		return ErrOccupied
	}
	delete(m.tiles, from)
	m.tiles[to] = c
	return nil
}

// Keys returns occupied cells sorted by row, then column.
func (m *TileMap) Keys() []Key {
	keys := slices.Collect(maps.Keys(m.tiles))
	slices.SortFunc(keys, func(a, b Key) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return keys
}

// Tiles derives the tile list in key order. It is rebuilt on every call,
// so it always reflects the latest edit.
func (m *TileMap) Tiles() []Tile {
	keys := m.Keys()
	out := make([]Tile, len(keys))
	for i, k := range keys {
		out[i] = Tile{Pos: k, Color: m.tiles[k]}
	}
	return out
}

// Equal reports whether both maps hold the same tiles.
func (m *TileMap) Equal(o *TileMap) bool {
	return maps.Equal(m.tiles, o.tiles)
}

func (m *TileMap) Clone() *TileMap {
	return &TileMap{tiles: maps.Clone(m.tiles)}
}

// Overlapping returns the tiles whose cell strictly overlaps r.
func (m *TileMap) Overlapping(r core.FRect, tileWidth float64) []Tile {
	var out []Tile
	for _, t := range m.Tiles() {
		if t.Pos.Rect(tileWidth).Overlaps(r) {
			out = append(out, t)
		}
	}
	return out
}

// Artwork builds the world-space drawing of every tile.
func (m *TileMap) Artwork(tileWidth float64, debug bool) draw.TileMapDrawing {
	tiles := m.Tiles()
	art := make([]draw.TileArt, len(tiles))
	for i, t := range tiles {
		art[i] = draw.TileArt{
			Vertices: t.Pos.Rect(tileWidth).Vertices(),
			Color:    t.Color,
		}
	}
	return draw.TileMapDrawing{Tiles: art, Debug: debug}
}

// Layer adapts a tile map to draw.Drawable.
type Layer struct {
	Map       *TileMap
	TileWidth float64
	Debug     bool
}

func (l Layer) Draw(frame *draw.Frame) {
	frame.Publish(DrawName, l.Map.Artwork(l.TileWidth, l.Debug))
}
