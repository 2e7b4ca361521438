package edit

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilegame/internal/config"
	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
	"github.com/vovakirdan/tilegame/internal/registry"
	"github.com/vovakirdan/tilegame/internal/tilemap"
)

func newEditor(t *testing.T, tiles ...tilemap.Tile) (*Game, *tilemap.Memory) {
	t.Helper()
	cfg := config.Default()
	repo := tilemap.NewMemory("test", tilemap.FromTiles(tiles...))
	g := New(registry.Env{Config: cfg, Maps: repo, Logger: log.New(io.Discard)})
	if err := g.Reset(cfg.Runtime()); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g, repo
}

func frameWith(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("edit") {
		t.Error("edit mode is not registered")
	}
}

func TestCursorMovesByTile(t *testing.T) {
	g, _ := newEditor(t)
	g.Step(frameWith(core.ActionRight, core.ActionRight, core.ActionDown))

	if pos := g.Cursor().Pos; pos != (tilemap.Key{X: 2, Y: -1}) {
		t.Errorf("cursor = %v, expected (2, -1)", pos)
	}
}

func TestToggleAtCursor(t *testing.T) {
	g, _ := newEditor(t)

	g.Step(frameWith(core.ActionToggle))
	if c, ok := g.Map().Get(tilemap.Key{}); !ok || c != core.ColorWhite {
		t.Fatalf("toggle on an empty cell should place style 1, got %v %v", c, ok)
	}
	res := g.Step(frameWith(core.ActionToggle))
	if g.Map().Has(tilemap.Key{}) {
		t.Error("toggle on a tile should erase it")
	}
	if !res.State.Dirty {
		t.Error("edits should mark the map dirty")
	}
}

func TestSelectStyleAndPlaceReplaces(t *testing.T) {
	g, _ := newEditor(t, tilemap.Tile{Pos: tilemap.Key{X: 1, Y: 1}, Color: core.ColorWhite})

	in := core.NewInputFrame()
	in.SelectStyle(4)
	in.SetPointer(core.W(1.2, 0.8))
	in.Set(core.ActionPointerPlace)
	g.Step(in)

	if g.Style() != 4 {
		t.Errorf("Style() = %d, expected 4", g.Style())
	}
	if c, _ := g.Map().Get(tilemap.Key{X: 1, Y: 1}); c != core.ColorRed {
		t.Errorf("tile color = %v, expected red to replace white", c)
	}
	if g.Map().Len() != 1 {
		t.Errorf("Len() = %d, expected one tile per cell", g.Map().Len())
	}
}

func TestSelectStyleOutOfRange(t *testing.T) {
	g, _ := newEditor(t)
	in := core.NewInputFrame()
	in.SelectStyle(9)
	g.Step(in)
	if g.Style() != 1 {
		t.Errorf("Style() = %d, expected 1", g.Style())
	}
}

func TestPointerErase(t *testing.T) {
	g, _ := newEditor(t, tilemap.Tile{Pos: tilemap.Key{X: -2, Y: 3}, Color: core.ColorGrey})

	in := core.NewInputFrame()
	in.SetPointer(core.W(-2.4, 3.4))
	in.Set(core.ActionPointerErase)
	g.Step(in)

	if g.Map().Len() != 0 {
		t.Errorf("tiles = %v, expected the pointer cell erased", g.Map().Keys())
	}
}

func TestCursorFollowsPointerUntilKeyPress(t *testing.T) {
	g, _ := newEditor(t)

	in := core.NewInputFrame()
	in.SetPointer(core.W(3.1, -2.9))
	g.Step(in)
	if pos := g.Cursor().Pos; pos != (tilemap.Key{X: 3, Y: -3}) {
		t.Fatalf("cursor = %v, expected to snap to (3, -3)", pos)
	}

	// Same pointer position, keyboard takes over.
	in.Clear()
	in.Set(core.ActionUp)
	g.Step(in)
	if pos := g.Cursor().Pos; pos != (tilemap.Key{X: 3, Y: -2}) {
		t.Errorf("cursor = %v, expected (3, -2)", pos)
	}
	if g.Cursor().FollowsPointer() {
		t.Error("cursor still follows the pointer after a key press")
	}

	// The pointer moves again.
	in.Clear()
	in.SetPointer(core.W(0, 0))
	g.Step(in)
	if pos := g.Cursor().Pos; pos != (tilemap.Key{}) {
		t.Errorf("cursor = %v, expected (0, 0)", pos)
	}
}

func TestSaveWritesRepository(t *testing.T) {
	g, repo := newEditor(t)
	res := g.Step(frameWith(core.ActionToggle, core.ActionSave))
	if res.Err != nil {
		t.Fatalf("save failed: %v", res.Err)
	}
	saved, _ := repo.Load()
	if !saved.Has(tilemap.Key{}) {
		t.Error("saved map is missing the placed tile")
	}
	if res.State.Dirty {
		t.Error("map still dirty after save")
	}
}

func TestPublish(t *testing.T) {
	g, _ := newEditor(t)
	in := core.NewInputFrame()
	in.SelectStyle(2)
	g.Step(in)

	frame := draw.NewFrame()
	g.Publish(frame)

	names := frame.Names()
	expected := []string{CursorName, PaletteName, tilemap.DrawName}
	if len(names) != len(expected) {
		t.Fatalf("frame names = %v, expected %v", names, expected)
	}
	for _, e := range frame.Entries() {
		if err := e.Payload.Validate(); e.Name != tilemap.DrawName && err != nil {
			t.Errorf("%s: Validate() = %v", e.Name, err)
		}
	}

	p, _ := frame.Get(PaletteName)
	swatches := p.(draw.PaletteDrawing).Swatches
	if len(swatches) != 4 {
		t.Fatalf("palette has %d swatches, expected 4", len(swatches))
	}
	if !swatches[1].Selected || swatches[0].Selected {
		t.Error("swatch 2 should be the only selected one")
	}

	c, _ := frame.Get(CursorName)
	ghost := c.(draw.CursorDrawing)
	if ghost.Color != core.ColorGrey.WithAlpha(ghostAlpha) {
		t.Errorf("ghost color = %v, expected translucent grey", ghost.Color)
	}
}
