// Package play implements the "play" mode: a player square that walks the
// tile map in half-tile steps, grows and shrinks by whole tiles, and bumps,
// passes through, or pushes tiles.
package play

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
	"github.com/vovakirdan/tilegame/internal/games/level"
	"github.com/vovakirdan/tilegame/internal/registry"
	"github.com/vovakirdan/tilegame/internal/tilemap"
)

// Game implements the play mode.
type Game struct {
	env registry.Env
	cfg core.RuntimeConfig

	player   *Player
	level    *level.Level
	behavior string

	clamped  bool
	lastMove MoveResult
	quit     bool
	status   string
}

// New creates a play mode. Call Reset before the first Step.
func New(env registry.Env) *Game {
	return &Game{env: env}
}

func init() {
	registry.Register("play", func(env registry.Env) registry.Game {
		return New(env)
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return "play"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Play"
}

// Reset places the player at its start and loads the tile map.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	if cfg.TileWidth <= 0 {
		return fmt.Errorf("play: tile width must be > 0, got %v", cfg.TileWidth)
	}
	g.cfg = cfg

	pc := g.env.Config.Player
	g.player = NewPlayer(
		core.W(pc.Start[0], pc.Start[1]),
		cfg.TileWidth,
		pc.SizeTiles,
		pc.MaxSizeTiles,
		g.env.Config.PlayerColor(),
	)
	g.player.Debug = cfg.Debug
	g.behavior = g.env.Config.Tiles.Behavior

	g.level = level.New(g.env.Maps, g.env.Log())
	g.level.ReadOnly = cfg.ReadOnly
	if err := g.level.Load(); err != nil {
		return err
	}
	if overlapsAny(g.level.Map, g.player.Hitbox(), cfg.TileWidth) {
		g.env.Log().Warn("player starts inside a tile", "pos", g.player.Pos)
	}

	g.clamped = false
	g.lastMove = MoveResult{}
	g.quit = false
	g.status = fmt.Sprintf("Loaded %s (%d tiles)", g.level.Name(), g.level.Map.Len())
	return nil
}

// Player returns the player entity.
func (g *Game) Player() *Player {
	return g.player
}

// Map returns the live tile map.
func (g *Game) Map() *tilemap.TileMap {
	return g.level.Map
}

// LastMove returns the result of the most recent move command.
func (g *Game) LastMove() MoveResult {
	return g.lastMove
}

// Step applies every queued action in order.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var errs []error
	g.clamped = false
	for _, a := range in.Actions() {
		if err := g.apply(a); err != nil {
			errs = append(errs, err)
		}
	}
	return core.StepResult{State: g.State(), Err: errors.Join(errs...)}
}

func (g *Game) apply(a core.Action) error {
	switch a {
	case core.ActionUp:
		g.move(DirUp)
	case core.ActionDown:
		g.move(DirDown)
	case core.ActionLeft:
		g.move(DirLeft)
	case core.ActionRight:
		g.move(DirRight)
	case core.ActionGrow:
		if g.player.Grow() {
			g.clamped = true
		}
		g.status = fmt.Sprintf("Size %v", g.player.Side())
	case core.ActionShrink:
		if g.player.Shrink() {
			g.clamped = true
		}
		g.status = fmt.Sprintf("Size %v", g.player.Side())
	case core.ActionToggleDebug:
		g.player.Debug = !g.player.Debug
	case core.ActionSave:
		if err := g.level.Save(); err != nil {
			g.status = "Save failed"
			return err
		}
		g.status = "Saved " + g.level.Name()
	case core.ActionLoad:
		if err := g.level.Load(); err != nil {
			g.status = "Load failed"
			return err
		}
		g.status = fmt.Sprintf("Loaded %s (%d tiles)", g.level.Name(), g.level.Map.Len())
	case core.ActionQuit:
		g.quit = true
	}
	return nil
}

func (g *Game) move(d Direction) {
	g.lastMove = moveAndCollide(g.player, d, g.level.Map, g.behavior)
	switch {
	case len(g.lastMove.Pushed) > 0:
		g.level.Changed()
		g.status = fmt.Sprintf("Pushed %d tile(s) %s", len(g.lastMove.Pushed), d)
		g.env.Log().Debug("pushed tiles", "from", g.lastMove.Pushed, "dir", d)
	case g.lastMove.Blocked:
		g.status = "Blocked " + d.String()
	default:
		g.status = "Pos " + g.player.Pos.String()
	}
}

// Publish writes the tile map and the player into the frame.
func (g *Game) Publish(frame *draw.Frame) {
	tilemap.Layer{Map: g.level.Map, TileWidth: g.cfg.TileWidth, Debug: g.player.Debug}.Draw(frame)
	g.player.Draw(frame)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := core.GameState{Status: g.status, Quit: g.quit, Clamped: g.clamped}
	if g.player != nil {
		s.Debug = g.player.Debug
	}
	if g.level != nil {
		s.Dirty = g.level.Dirty
	}
	return s
}
