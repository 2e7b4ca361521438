package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tilegame/internal/core"
)

// inputSource is the slice of ebiten's input state the window polls.
type inputSource interface {
	KeyJustPressed(k ebiten.Key) bool
	KeyPressed(k ebiten.Key) bool
	MouseJustPressed(b ebiten.MouseButton) bool
	Cursor() (x, y int)
}

type ebitenInput struct{}

func (ebitenInput) KeyJustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

func (ebitenInput) KeyPressed(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

func (ebitenInput) MouseJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (ebitenInput) Cursor() (int, int) {
	return ebiten.CursorPosition()
}

// keyBindings maps keys to actions. With Ctrl held, S saves and L reloads.
var keyBindings = []struct {
	key    ebiten.Key
	action core.Action
}{
	{ebiten.KeyW, core.ActionUp},
	{ebiten.KeyS, core.ActionDown},
	{ebiten.KeyA, core.ActionLeft},
	{ebiten.KeyD, core.ActionRight},
	{ebiten.KeyArrowUp, core.ActionGrow},
	{ebiten.KeyArrowDown, core.ActionShrink},
	{ebiten.KeySpace, core.ActionToggle},
	{ebiten.KeyF2, core.ActionToggleDebug},
	{ebiten.KeyQ, core.ActionQuit},
	{ebiten.KeyEscape, core.ActionQuit},
}

var styleKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.Key4, ebiten.Key5, ebiten.Key6,
	ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// pollKeys queues this tick's key presses.
func pollKeys(src inputSource, in *core.InputFrame) {
	ctrl := src.KeyPressed(ebiten.KeyControl)
	if ctrl {
		if src.KeyJustPressed(ebiten.KeyS) {
			in.Set(core.ActionSave)
		}
		if src.KeyJustPressed(ebiten.KeyL) {
			in.Set(core.ActionLoad)
		}
	}

	for _, b := range keyBindings {
		if ctrl && b.key == ebiten.KeyS {
			continue
		}
		if src.KeyJustPressed(b.key) {
			in.Set(b.action)
		}
	}

	for i, k := range styleKeys {
		if src.KeyJustPressed(k) {
			in.SelectStyle(i + 1)
		}
	}
}

// pollPointer reports the cursor in world space while it is over the
// surface, with any click.
func pollPointer(src inputSource, in *core.InputFrame, xfm core.Transform) (core.Pixel, core.World, bool) {
	x, y := src.Cursor()
	w, h := xfm.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return core.Pixel{}, core.World{}, false
	}
	px := core.Pixel{X: x, Y: y}
	world := xfm.PixelToWorld(px)
	in.SetPointer(world)

	if src.MouseJustPressed(ebiten.MouseButtonLeft) {
		in.Set(core.ActionPointerPlace)
	}
	if src.MouseJustPressed(ebiten.MouseButtonRight) {
		in.Set(core.ActionPointerErase)
	}
	return px, world, true
}
