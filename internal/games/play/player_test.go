package play

import (
	"testing"

	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
)

func TestMoveIsHalfTile(t *testing.T) {
	// Tile width 32: one move is 16 units along one axis only.
	tests := []struct {
		dir      Direction
		expected core.World
	}{
		{DirRight, core.W(16, 0)},
		{DirLeft, core.W(-16, 0)},
		{DirUp, core.W(0, 16)},
		{DirDown, core.W(0, -16)},
	}
	for _, tc := range tests {
		p := NewPlayer(core.W(0, 0), 32, 1, 0, core.ColorRed)
		p.Move(tc.dir)
		if p.Pos != tc.expected {
			t.Errorf("Move(%v) pos = %v, expected %v", tc.dir, p.Pos, tc.expected)
		}
	}
}

func TestHitboxFollowsPos(t *testing.T) {
	p := NewPlayer(core.W(0, 0), 32, 1, 0, core.ColorRed)
	p.Move(DirRight)

	hb := p.Hitbox()
	if hb.BottomLeft() != core.W(0, -16) {
		t.Errorf("BottomLeft() = %v, expected (0, -16)", hb.BottomLeft())
	}
	if p.Size().W != 32 || p.Size().H != 32 {
		t.Errorf("Size() = %+v, expected 32x32", p.Size())
	}

	v := p.Vertices()
	expected := []core.World{core.W(0, 16), core.W(32, 16), core.W(32, -16), core.W(0, -16)}
	for i := range expected {
		if v[i] != expected[i] {
			t.Errorf("Vertices()[%d] = %v, expected %v", i, v[i], expected[i])
		}
	}
}

func TestShrinkClampsAtOneTile(t *testing.T) {
	p := NewPlayer(core.W(0, 0), 32, 2, 0, core.ColorRed)

	if p.Shrink() {
		t.Error("Shrink() from 2 tiles reported a clamp")
	}
	if p.Side() != 32 {
		t.Fatalf("Side() = %v, expected 32", p.Side())
	}
	if !p.Shrink() {
		t.Error("Shrink() at one tile should report a clamp")
	}
	if p.Side() != 32 {
		t.Errorf("Side() = %v after clamped shrink, expected 32", p.Side())
	}
	if s := p.Size(); s.W != s.H {
		t.Errorf("Size() = %+v is not square", s)
	}
}

func TestGrowClampsAtMax(t *testing.T) {
	p := NewPlayer(core.W(0, 0), 1, 2, 3, core.ColorRed)

	if p.Grow() {
		t.Error("Grow() to the maximum reported a clamp")
	}
	if !p.Grow() {
		t.Error("Grow() past the maximum should report a clamp")
	}
	if p.Side() != 3 {
		t.Errorf("Side() = %v, expected 3", p.Side())
	}
}

func TestNewPlayerKeepsStartWithinLimits(t *testing.T) {
	tests := []struct {
		name          string
		size, maxSize int
		expected      float64
	}{
		{"above max", 5, 3, 3},
		{"below one tile", 0, 3, 1},
		{"unbounded", 7, 0, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlayer(core.W(0, 0), 1, tc.size, tc.maxSize, core.ColorRed)
			if p.Side() != tc.expected {
				t.Errorf("Side() = %v, expected %v", p.Side(), tc.expected)
			}
		})
	}
}

func TestGrowUnbounded(t *testing.T) {
	p := NewPlayer(core.W(0, 0), 1, 1, 0, core.ColorRed)
	for range 50 {
		if p.Grow() {
			t.Fatal("Grow() clamped without a maximum")
		}
	}
	if p.Side() != 51 {
		t.Errorf("Side() = %v, expected 51", p.Side())
	}
}

func TestDebugTiles(t *testing.T) {
	p := NewPlayer(core.W(0, 0), 32, 2, 0, core.ColorRed)
	tiles := p.DebugTiles()
	if len(tiles) != 4 {
		t.Fatalf("DebugTiles() has %d tiles, expected 4", len(tiles))
	}

	// Bottom-left tile is centered at (-16, -16); its top-left is (-32, 0).
	if tiles[0][0] != core.W(-32, 0) {
		t.Errorf("first tile top-left = %v, expected (-32, 0)", tiles[0][0])
	}
	// Top-right tile spans (0, 0)..(32, 32).
	if tiles[3][1] != core.W(32, 32) {
		t.Errorf("last tile top-right = %v, expected (32, 32)", tiles[3][1])
	}

	p.Grow()
	if n := len(p.DebugTiles()); n != 9 {
		t.Errorf("DebugTiles() after Grow has %d tiles, expected 9", n)
	}
}

func TestDrawPublishesWorldSpace(t *testing.T) {
	p := NewPlayer(core.W(16, 0), 32, 1, 0, core.ColorRed)
	frame := draw.NewFrame()

	p.Draw(frame)
	got, ok := frame.Get(DrawName)
	if !ok {
		t.Fatal("player did not publish")
	}
	d := got.(draw.PlayerDrawing)
	if d.Debug != nil {
		t.Error("debug overlay published with debug off")
	}
	if d.Vertices[3] != core.W(0, -16) {
		t.Errorf("bottom-left vertex = %v, expected (0, -16)", d.Vertices[3])
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	p.Debug = true
	p.Draw(frame)
	got, _ = frame.Get(DrawName)
	d = got.(draw.PlayerDrawing)
	if d.Debug == nil || len(d.Debug.Tiles) != 1 {
		t.Errorf("debug overlay = %+v, expected one tile", d.Debug)
	}
	if frame.Len() != 1 {
		t.Errorf("frame has %d entries, expected the player to overwrite itself", frame.Len())
	}
}
