package tilemap

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/tilegame/internal/core"
)

// Key is an integer grid coordinate. Tile (x, y) is centered on world
// point (x*tileWidth, y*tileWidth).
type Key struct {
	X, Y int
}

// String returns the persisted key form, e.g. "(3, -1)".
func (k Key) String() string {
	return fmt.Sprintf("(%d, %d)", k.X, k.Y)
}

// Less orders keys by row, then column.
func (k Key) Less(o Key) bool {
	if k.Y != o.Y {
		return k.Y < o.Y
	}
	return k.X < o.X
}

// Add offsets the key by whole cells.
func (k Key) Add(dx, dy int) Key {
	return Key{X: k.X + dx, Y: k.Y + dy}
}

// Center returns the world-space center of the cell.
func (k Key) Center(tileWidth float64) core.World {
	return core.W(float64(k.X)*tileWidth, float64(k.Y)*tileWidth)
}

// Rect returns the cell as a world-space rectangle.
func (k Key) Rect(tileWidth float64) core.FRect {
	return core.NewFRect(k.Center(tileWidth), tileWidth, tileWidth)
}

// KeyAt snaps a world point to the nearest cell.
func KeyAt(p core.World, tileWidth float64) Key {
	return Key{
		X: int(math.Round(p.X / tileWidth)),
		Y: int(math.Round(p.Y / tileWidth)),
	}
}

// ParseKey parses "(x, y)". Whitespace around the numbers is optional.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return Key{}, fmt.Errorf("%w: %q", ErrBadKey, s)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		return Key{}, fmt.Errorf("%w: %q", ErrBadKey, s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return Key{}, fmt.Errorf("%w: %q", ErrBadKey, s)
	}
	return Key{X: x, Y: y}, nil
}
