package tui

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
)

// stubGame publishes a one-tile player at the origin and records its input.
type stubGame struct {
	steps   [][]core.Action
	pointer []core.World
	state   core.GameState
	payload draw.Payload
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) error {
	g.state = core.GameState{Debug: cfg.Debug, Status: "ready"}
	if g.payload == nil {
		g.payload = draw.PlayerDrawing{
			Vertices: core.NewFRect(core.World{}, 1, 1).Vertices(),
			Color:    core.ColorRed,
		}
	}
	return nil
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, append([]core.Action(nil), in.Actions()...))
	if p, ok := in.Pointer(); ok {
		g.pointer = append(g.pointer, p)
	}
	for _, a := range in.Actions() {
		if a == core.ActionQuit {
			g.state.Quit = true
		}
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Publish(frame *draw.Frame) {
	frame.Publish("player", g.payload)
}

func (g *stubGame) State() core.GameState { return g.state }

func testOptions() Options {
	return Options{
		Runtime:    core.RuntimeConfig{TileWidth: 1, ViewW: 16, ViewH: 12, TickRate: 30},
		Scale:      4,
		Background: core.ColorGrey,
		Logger:     log.New(io.Discard),
		Width:      80,
		Height:     24,
	}
}

func newTestModel(t *testing.T, g *stubGame, opts Options) Model {
	t.Helper()
	m, err := NewModel(g, opts)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm, cmd
}

func TestModelSurfaceFollowsTerminal(t *testing.T) {
	m := newTestModel(t, &stubGame{}, testOptions())

	s := m.Surface()
	if s.Width() != 80 || s.Height() != (24-hudLines)*2 {
		t.Fatalf("surface = %dx%d, expected 80x40", s.Width(), s.Height())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 14})
	s = m.Surface()
	if s.Width() != 60 || s.Height() != 20 {
		t.Errorf("after resize surface = %dx%d, expected 60x20", s.Width(), s.Height())
	}
}

func TestModelRendersOnResize(t *testing.T) {
	m := newTestModel(t, &stubGame{}, testOptions())

	// A 1x1 world tile at scale 4 covers 4x4 pixels around (40, 20).
	s := m.Surface()
	if got := s.Get(40, 19); got != core.ColorRed {
		t.Errorf("pixel (40, 19) = %v, expected red", got)
	}
	if got := s.Count(core.ColorRed); got != 16 {
		t.Errorf("red pixels = %d, expected 16", got)
	}
	if !m.Report().Complete() {
		t.Errorf("report = %+v, expected everything drawn", m.Report())
	}
}

func TestModelKeysReachGameOnTick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, testOptions())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := update(t, m, TickMsg(time.Now()))

	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if len(g.steps) != 1 {
		t.Fatalf("Step() called %d times, expected 1", len(g.steps))
	}
	expected := []core.Action{core.ActionRight, core.ActionRight, core.ActionGrow}
	got := g.steps[0]
	if len(got) != len(expected) {
		t.Fatalf("actions = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("action %d = %v, expected %v", i, got[i], expected[i])
		}
	}

	// Input is cleared between ticks.
	update(t, m, TickMsg(time.Now()))
	if len(g.steps) != 2 || len(g.steps[1]) != 0 {
		t.Errorf("second tick actions = %v, expected none", g.steps[1:])
	}
}

func TestModelMouseBecomesWorldPointer(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, testOptions())

	// Cell (44, 5) is pixel (44, 10): one world unit right, 2.5 up.
	m, _ = update(t, m, tea.MouseMsg{X: 44, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	update(t, m, TickMsg(time.Now()))

	if len(g.pointer) != 1 {
		t.Fatalf("pointer reported %d times, expected 1", len(g.pointer))
	}
	if p := g.pointer[0]; p != core.W(1, 2.5) {
		t.Errorf("pointer = %v, expected (1, 2.5)", p)
	}
	if len(g.steps[0]) != 1 || g.steps[0][0] != core.ActionPointerPlace {
		t.Errorf("actions = %v, expected PointerPlace", g.steps[0])
	}
}

func TestModelMouseOnHUDIgnored(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, testOptions())

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 22, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	update(t, m, TickMsg(time.Now()))

	if len(g.pointer) != 0 || len(g.steps[0]) != 0 {
		t.Errorf("HUD click reached the game: pointer %v actions %v", g.pointer, g.steps[0])
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, &stubGame{}, testOptions())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m, cmd := update(t, m, TickMsg(time.Now()))

	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit action should end the program")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelEmbeddedQuitReportsDone(t *testing.T) {
	opts := testOptions()
	opts.Embedded = true
	m := newTestModel(t, &stubGame{}, opts)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m, cmd := update(t, m, TickMsg(time.Now()))

	if cmd != nil {
		t.Error("embedded model should not quit the program")
	}
	if !m.Done() {
		t.Error("Done() = false, expected true")
	}
}

func TestModelStrictContractErrorEndsSession(t *testing.T) {
	opts := testOptions()
	opts.Strict = true
	g := &stubGame{payload: draw.PlayerDrawing{Color: core.ColorRed}}

	m := newTestModel(t, g, opts)
	var ce *draw.ContractError
	if !errors.As(m.Err(), &ce) {
		t.Fatalf("Err() = %v, expected a contract error", m.Err())
	}

	_, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("strict render failure should end the program")
	}
}

func TestModelLenientContractErrorSkips(t *testing.T) {
	g := &stubGame{payload: draw.PlayerDrawing{Color: core.ColorRed}}
	m := newTestModel(t, g, testOptions())

	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("lenient mode should keep ticking")
	}
	if m.Report().Complete() {
		t.Error("report should list the skipped player")
	}
}

func TestModelTooSmall(t *testing.T) {
	opts := testOptions()
	opts.Height = hudLines
	m := newTestModel(t, &stubGame{}, opts)

	if !strings.Contains(m.View(), "too small") {
		t.Errorf("View() = %q, expected a too-small notice", m.View())
	}

	// Ticks still run so the quit key works.
	_, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick loop stopped")
	}
}

func TestModelBadRuntime(t *testing.T) {
	opts := testOptions()
	opts.Runtime.TileWidth = 0
	if _, err := NewModel(&stubGame{}, opts); !errors.Is(err, core.ErrInvalidTransform) {
		t.Errorf("NewModel() = %v, expected ErrInvalidTransform", err)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, &stubGame{}, testOptions())
	view := m.View()

	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Errorf("View() has %d lines, expected 24", len(lines))
	}
	if !strings.Contains(view, "Stub") || !strings.Contains(view, "ready") {
		t.Error("HUD is missing the title or status")
	}
}
