package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilegame/internal/config"
	"github.com/vovakirdan/tilegame/internal/core"
	_ "github.com/vovakirdan/tilegame/internal/games/edit"
	_ "github.com/vovakirdan/tilegame/internal/games/play"
	"github.com/vovakirdan/tilegame/internal/registry"
	"github.com/vovakirdan/tilegame/internal/render"
	"github.com/vovakirdan/tilegame/internal/storage"
	"github.com/vovakirdan/tilegame/internal/tilemap"
)

func TestHUDLines(t *testing.T) {
	h := HUD{Title: "Play", State: core.GameState{Status: "Moved", Dirty: true}}
	lines := h.Lines()
	if len(lines) != 3 {
		t.Fatalf("Lines() returned %d lines, expected 3", len(lines))
	}
	if !strings.Contains(lines[0], "Moved") || !strings.Contains(lines[0], "unsaved") {
		t.Errorf("status line = %q", lines[0])
	}
	if lines[1] != "" || lines[2] != "" {
		t.Error("debug lines should be blank with debug off")
	}

	h.State.Debug = true
	h.TickRate = 29.6
	h.Pointer = &PointerInfo{Pixel: core.Pixel{X: 3, Y: 4}, World: core.W(-1, 2)}
	h.Report = render.Report{Drawn: []string{"tileMap"}, Skipped: []render.Skip{{Name: "player"}}}
	lines = h.Lines()
	if !strings.Contains(lines[1], "30 ticks/s") || !strings.Contains(lines[1], "world") {
		t.Errorf("debug line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Drew: tileMap") || !strings.Contains(lines[2], "Forgot to draw: player") {
		t.Errorf("report line = %q", lines[2])
	}
}

func testSession(t *testing.T) SessionModel {
	t.Helper()
	cfg := config.Default()
	opts := OptionsFrom(cfg)
	opts.Logger = log.New(io.Discard)
	opts.Width, opts.Height = 80, 24
	opts.Embedded = true
	env := registry.Env{
		Config: cfg,
		Maps:   tilemap.NewMemory("test", nil),
		Logger: opts.Logger,
	}
	return newSessionModel(env, opts, nil)
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := testSession(t)

	if !strings.Contains(m.View(), "Select a mode") {
		t.Fatalf("session should start at the menu, got %q", m.View())
	}

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.InGame() {
		t.Fatal("enter should start the selected mode")
	}
	if cmd == nil {
		t.Error("starting a mode should start its tick loop")
	}
	if m.stats.games != 1 || m.stats.lastMode == "" {
		t.Errorf("stats = %+v", m.stats)
	}

	m, _ = sessionUpdate(t, m, runeKey('q'))
	m, _ = sessionUpdate(t, m, TickMsg(time.Now()))
	if m.InGame() {
		t.Error("quitting a mode should return to the menu")
	}
	if m.stats.quit {
		t.Error("leaving a mode is not leaving the session")
	}
}

func TestSessionCtrlCQuits(t *testing.T) {
	m := testSession(t)
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should end the session")
	}
	if !m.stats.quit {
		t.Error("stats should record the quit")
	}
}

func TestSessionTracksResize(t *testing.T) {
	m := testSession(t)
	m, _ = sessionUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if s := m.game.Surface(); s.Width() != 100 || s.Height() != (30-hudLines)*2 {
		t.Errorf("surface = %dx%d, expected 100x52", s.Width(), s.Height())
	}
}

func TestHistoryModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := range 3 {
		if _, err := store.SaveSnapshot("level1.json", []byte("{}"), i); err != nil {
			t.Fatal(err)
		}
	}

	m, err := NewHistoryModel(store, "level1.json", 80, 24)
	if err != nil {
		t.Fatalf("NewHistoryModel() failed: %v", err)
	}
	if !strings.Contains(m.View(), "level1.json") {
		t.Error("View() should name the map")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	hm := next.(HistoryModel)

	if cmd == nil {
		t.Fatal("enter should quit the browser")
	}
	chosen := hm.Chosen()
	if chosen == nil {
		t.Fatal("Chosen() = nil after enter")
	}
	// Newest first: the second row is the second-newest snapshot.
	if chosen.Tiles != 1 {
		t.Errorf("Chosen().Tiles = %d, expected 1", chosen.Tiles)
	}
}

func TestHistoryModelCancel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m, err := NewHistoryModel(store, "empty.json", 80, 24)
	if err != nil {
		t.Fatalf("NewHistoryModel() failed: %v", err)
	}
	if !strings.Contains(m.View(), "No snapshots") {
		t.Error("empty history should say so")
	}
	next, _ := m.Update(runeKey('q'))
	if next.(HistoryModel).Chosen() != nil {
		t.Error("cancel should choose nothing")
	}
}
