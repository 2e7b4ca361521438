package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilegame/internal/config"
	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
	"github.com/vovakirdan/tilegame/internal/registry"
	"github.com/vovakirdan/tilegame/internal/render"
)

// Options configures a game session in the terminal.
type Options struct {
	Runtime    core.RuntimeConfig
	Scale      float64 // Pixels per world unit; a cell is 1x2 pixels
	Background core.Color
	Strict     bool
	Logger     *log.Logger

	// Width and Height are the terminal size in cells, if already known.
	Width, Height int

	// Lipgloss renders the surface colors. Nil means the local terminal.
	Lipgloss *lipgloss.Renderer

	// Embedded models report Done instead of quitting the program.
	Embedded bool
}

// OptionsFrom builds session options from the configuration.
func OptionsFrom(cfg config.Config) Options {
	rt := cfg.Runtime()
	rt.TickRate = cfg.Display.TUI.FPS
	return Options{
		Runtime:    rt,
		Scale:      cfg.Display.TUI.Scale,
		Background: cfg.BackgroundColor(),
		Strict:     cfg.Render.Strict,
	}
}

// Model is the Bubble Tea model that runs one game mode.
// Every tick runs the frame in order: input, Step, Publish, Render.
type Model struct {
	game      registry.Game
	opts      Options
	logger    *log.Logger
	renderer  *render.Renderer // Nil until the terminal size is known
	surface   *core.Surface
	frame     *draw.Frame
	presenter *Presenter

	input  core.InputFrame
	state  core.GameState
	report render.Report

	keys KeyMap
	help help.Model

	width, height int
	pointer       *PointerInfo
	lastTick      time.Time
	tickRate      float64

	err      error
	quitting bool
	done     bool
}

// NewModel resets the game and creates a model for it.
func NewModel(game registry.Game, opts Options) (Model, error) {
	if _, err := opts.Runtime.Extent(); err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}
	if err := game.Reset(opts.Runtime); err != nil {
		return Model{}, fmt.Errorf("tui: cannot start %s: %w", game.ID(), err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	m := Model{
		game:      game,
		opts:      opts,
		logger:    logger,
		surface:   core.NewSurface(0, 0),
		frame:     draw.NewFrame(),
		presenter: NewPresenter(opts.Lipgloss),
		input:     core.NewInputFrame(),
		state:     game.State(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
	if opts.Width > 0 && opts.Height > 0 {
		m = m.resize(opts.Width, opts.Height)
	}
	return m, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Keys are queued and applied on the
// next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	m.keys.Apply(msg, &m.input)
	return m, nil
}

// handleMouse converts the pointer cell to world space. Clicks on the HUD
// are ignored.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if m.renderer == nil {
		return m
	}
	px := core.Pixel{X: msg.X, Y: msg.Y * 2}
	if !m.surface.InBounds(px.X, px.Y) {
		return m
	}
	world := m.renderer.Transform().PixelToWorld(px)
	m.pointer = &PointerInfo{Pixel: px, World: world}
	m.input.SetPointer(world)

	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.input.Set(core.ActionPointerPlace)
		case tea.MouseButtonRight:
			m.input.Set(core.ActionPointerErase)
		}
	}
	return m
}

// resize rebuilds the transform for the new surface. The renderer is
// dropped while the terminal is too small to draw in.
func (m Model) resize(width, height int) Model {
	m.width, m.height = width, height
	m.help.Width = width

	pw, ph := width, (height-hudLines)*2
	ext, _ := m.opts.Runtime.Extent()
	xfm, err := core.NewTransform(m.opts.Runtime.TileWidth, m.opts.Scale, pw, ph, ext)
	if err != nil {
		m.logger.Warn("cannot draw at this size", "width", width, "height", height, "error", err)
		m.renderer = nil
		return m
	}

	m.renderer = render.New(xfm, render.Options{
		Background: m.opts.Background,
		Strict:     m.opts.Strict,
		Debug:      m.state.Debug,
		Logger:     m.logger,
	})
	m.surface.Resize(pw, ph)
	m.pointer = nil
	if err := m.draw(); err != nil {
		m.err = err
	}
	m.logger.Debug("resized", "cells", fmt.Sprintf("%dx%d", width, height), "pixels", fmt.Sprintf("%dx%d", pw, ph))
	return m
}

// handleTick runs one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastTick.IsZero() {
		dt := now.Sub(m.lastTick).Seconds()
		switch {
		case dt <= 0:
		case m.tickRate == 0:
			m.tickRate = 1 / dt
		default:
			// Exponential moving average
			m.tickRate = 0.9*m.tickRate + 0.1/dt
		}
	}
	m.lastTick = now

	result := m.game.Step(m.input)
	m.state = result.State
	if result.Err != nil {
		m.logger.Error("command failed", "game", m.game.ID(), "error", result.Err)
	}

	// Clear input for next frame
	m.input.Clear()

	if m.state.Quit {
		return m.finish()
	}

	if err := m.draw(); err != nil {
		m.err = err
		m.logger.Error("render failed", "error", err)
		return m.finish()
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	if m.opts.Embedded {
		m.done = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// draw publishes the game's drawings into a fresh frame and renders them.
func (m *Model) draw() error {
	if m.renderer == nil {
		return nil
	}
	m.frame.Reset()
	m.game.Publish(m.frame)
	m.renderer.SetDebug(m.state.Debug)
	report, err := m.renderer.Render(m.frame, m.surface)
	m.report = report
	return err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.renderer == nil {
		return fmt.Sprintf("Terminal too small (%dx%d).\nPress q to quit.", m.width, m.height)
	}

	hud := HUD{
		Title:    m.game.Title(),
		State:    m.state,
		TickRate: m.tickRate,
		Pointer:  m.pointer,
		Report:   m.report,
	}

	var b strings.Builder
	b.WriteString(m.presenter.Present(m.surface))
	for _, line := range hud.Lines() {
		b.WriteString("\n")
		b.WriteString(line)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Surface returns the last rendered frame.
func (m Model) Surface() *core.Surface {
	return m.surface
}

// Report returns the last render report.
func (m Model) Report() render.Report {
	return m.report
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Done reports whether an embedded session has ended.
func (m Model) Done() bool {
	return m.done
}

// Run starts the Bubble Tea program for the game.
func Run(game registry.Game, opts Options) error {
	model, err := NewModel(game, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // The editor cursor follows the pointer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
