// Package edit implements the "edit" mode, a level editor. A cursor picks
// a cell with the keyboard or the pointer, a palette picks the tile color,
// and tiles are placed, replaced, or erased one cell at a time.
package edit

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
	"github.com/vovakirdan/tilegame/internal/games/level"
	"github.com/vovakirdan/tilegame/internal/registry"
	"github.com/vovakirdan/tilegame/internal/tilemap"
)

// Game implements the editor.
type Game struct {
	env registry.Env
	cfg core.RuntimeConfig

	level   *level.Level
	cursor  Cursor
	palette Palette
	top     float64 // World y of the view's top edge

	debug  bool
	quit   bool
	status string
}

// New creates an editor. Call Reset before the first Step.
func New(env registry.Env) *Game {
	return &Game{env: env}
}

func init() {
	registry.Register("edit", func(env registry.Env) registry.Game {
		return New(env)
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return "edit"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Level Editor"
}

// Reset loads the tile map and puts the cursor at the origin.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	ext, err := cfg.Extent()
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	g.cfg = cfg
	g.top = ext.HalfSize().H

	g.palette = Palette{Colors: g.env.Config.PaletteColors(), Selected: 1}
	if len(g.palette.Colors) == 0 {
		g.palette.Colors = []core.Color{core.ColorWhite}
	}

	g.level = level.New(g.env.Maps, g.env.Log())
	g.level.ReadOnly = cfg.ReadOnly
	if err := g.level.Load(); err != nil {
		return err
	}

	g.cursor = Cursor{}
	g.debug = cfg.Debug
	g.quit = false
	g.status = fmt.Sprintf("Editing %s (%d tiles)", g.level.Name(), g.level.Map.Len())
	return nil
}

// Cursor returns the editor cursor.
func (g *Game) Cursor() Cursor {
	return g.cursor
}

// Map returns the live tile map.
func (g *Game) Map() *tilemap.TileMap {
	return g.level.Map
}

// Style returns the selected palette style, counting from 1.
func (g *Game) Style() int {
	return g.palette.Selected
}

// Step follows the pointer, then applies every queued action in order.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	ptr, hasPtr := in.Pointer()
	if hasPtr {
		g.cursor.Track(ptr, g.cfg.TileWidth)
	}

	var errs []error
	for _, a := range in.Actions() {
		if err := g.apply(a, in, ptr, hasPtr); err != nil {
			errs = append(errs, err)
		}
	}
	return core.StepResult{State: g.State(), Err: errors.Join(errs...)}
}

func (g *Game) apply(a core.Action, in core.InputFrame, ptr core.World, hasPtr bool) error {
	switch a {
	case core.ActionUp:
		g.cursor.Move(0, 1)
	case core.ActionDown:
		g.cursor.Move(0, -1)
	case core.ActionLeft:
		g.cursor.Move(-1, 0)
	case core.ActionRight:
		g.cursor.Move(1, 0)
	case core.ActionSelectStyle:
		if g.palette.Select(in.Style) {
			g.status = fmt.Sprintf("Style %d (%s)", in.Style, g.palette.Color().Name())
		}
	case core.ActionToggle:
		if g.level.Map.Has(g.cursor.Pos) {
			g.erase(g.cursor.Pos)
		} else {
			g.place(g.cursor.Pos)
		}
	case core.ActionPointerPlace:
		if hasPtr {
			g.place(tilemap.KeyAt(ptr, g.cfg.TileWidth))
		}
	case core.ActionPointerErase:
		if hasPtr {
			g.erase(tilemap.KeyAt(ptr, g.cfg.TileWidth))
		}
	case core.ActionToggleDebug:
		g.debug = !g.debug
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

// place puts the selected style on k, replacing any tile there.
func (g *Game) place(k tilemap.Key) {
	g.level.Map.Place(k, g.palette.Color())
	g.level.Changed()
	g.status = "Placed " + k.String()
}

func (g *Game) erase(k tilemap.Key) {
	if g.level.Map.Erase(k) {
		g.level.Changed()
		g.status = "Erased " + k.String()
	}
}

// Publish writes the tile map, the palette and the cursor into the frame.
func (g *Game) Publish(frame *draw.Frame) {
	tw := g.cfg.TileWidth
	tilemap.Layer{Map: g.level.Map, TileWidth: tw, Debug: g.debug}.Draw(frame)
	frame.Publish(PaletteName, g.palette.Drawing(tw, g.top))
	frame.Publish(CursorName, draw.CursorDrawing{
		Vertices: g.cursor.Pos.Rect(tw).Vertices(),
		Color:    g.palette.Color().WithAlpha(ghostAlpha),
		Border:   core.ColorWhite,
	})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := core.GameState{Status: g.status, Debug: g.debug, Quit: g.quit}
	if g.level != nil {
		s.Dirty = g.level.Dirty
	}
	return s
}
