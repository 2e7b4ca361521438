package play

import (
	"slices"

	"github.com/vovakirdan/tilegame/internal/config"
	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/tilemap"
)

// MoveResult reports what a move did.
type MoveResult struct {
	Blocked bool          // The player was put back where it started
	Hit     []tilemap.Key // Tiles the moved player overlapped
	Pushed  []tilemap.Key // Cells tiles were pushed out of
}

// moveAndCollide moves the player, then lets every overlapped tile react:
// stop puts the player back, pass ignores the tile, and push shifts the
// tile one cell in the move direction. If any pushed tile would land on an
// occupied cell, nothing is pushed and the player is put back.
func moveAndCollide(p *Player, d Direction, m *tilemap.TileMap, behavior string) MoveResult {
	old := p.Pos
	p.Move(d)

	var res MoveResult
	for _, t := range m.Overlapping(p.Hitbox(), p.tileWidth) {
		res.Hit = append(res.Hit, t.Pos)
	}
	if len(res.Hit) == 0 {
		return res
	}

	switch behavior {
	case config.BehaviorPass:
		return res
	case config.BehaviorPush:
		if pushAll(m, res.Hit, d) {
			res.Pushed = res.Hit
			return res
		}
	}
	p.Pos = old
	res.Blocked = true
	return res
}

// pushAll shifts every key one cell along d, farthest first so a tile never
// lands on one that is about to move. It changes m only if every move
// succeeds.
func pushAll(m *tilemap.TileMap, keys []tilemap.Key, d Direction) bool {
	dx, dy := d.Delta()
	order := slices.Clone(keys)
	slices.SortFunc(order, func(a, b tilemap.Key) int {
		return (b.X*dx + b.Y*dy) - (a.X*dx + a.Y*dy)
	})

	trial := m.Clone()
	for _, k := range order {
		if trial.Move(k, k.Add(dx, dy)) != nil {
			return false
		}
	}
	for _, k := range order {
		_ = m.Move(k, k.Add(dx, dy))
	}
	return true
}

// overlapsAny reports whether r overlaps a tile of m.
func overlapsAny(m *tilemap.TileMap, r core.FRect, tileWidth float64) bool {
	return len(m.Overlapping(r, tileWidth)) > 0
}
