// Package window runs a game mode in a native window with Ebitengine.
// The renderer draws into a core.Surface exactly as in the terminal; the
// window only uploads its pixels.
package window

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/vovakirdan/tilegame/internal/config"
	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
	"github.com/vovakirdan/tilegame/internal/registry"
	"github.com/vovakirdan/tilegame/internal/render"
)

// Options configures the window.
type Options struct {
	Runtime       core.RuntimeConfig
	Scale         float64 // Pixels per world unit
	Width, Height int
	Background    core.Color
	Strict        bool
	Logger        *log.Logger
}

// OptionsFrom builds window options from the configuration.
func OptionsFrom(cfg config.Config) Options {
	rt := cfg.Runtime()
	rt.TickRate = cfg.Display.Window.TPS
	return Options{
		Runtime:    rt,
		Scale:      cfg.Display.Window.Scale,
		Width:      cfg.Display.Window.Width,
		Height:     cfg.Display.Window.Height,
		Background: cfg.BackgroundColor(),
		Strict:     cfg.Render.Strict,
	}
}

// Game adapts a game mode to ebiten.Game.
type Game struct {
	game     registry.Game
	opts     Options
	logger   *log.Logger
	renderer *render.Renderer
	surface  *core.Surface
	frame    *draw.Frame
	img      *ebiten.Image
	src      inputSource

	input   core.InputFrame
	state   core.GameState
	report  render.Report
	pointer string
}

// New resets the game and builds the transform for the window size.
// The logical size is fixed; ebiten scales it to the window.
func New(game registry.Game, opts Options) (*Game, error) {
	ext, err := opts.Runtime.Extent()
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	xfm, err := core.NewTransform(opts.Runtime.TileWidth, opts.Scale, opts.Width, opts.Height, ext)
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	if err := game.Reset(opts.Runtime); err != nil {
		return nil, fmt.Errorf("window: cannot start %s: %w", game.ID(), err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	g := &Game{
		game:    game,
		opts:    opts,
		logger:  logger,
		surface: core.NewSurface(opts.Width, opts.Height),
		frame:   draw.NewFrame(),
		src:     ebitenInput{},
		input:   core.NewInputFrame(),
		state:   game.State(),
	}
	g.renderer = render.New(xfm, render.Options{
		Background: opts.Background,
		Strict:     opts.Strict,
		Debug:      g.state.Debug,
		Logger:     logger,
	})
	return g, nil
}

// Update runs one frame: input, Step, Publish, Render.
func (g *Game) Update() error {
	pollKeys(g.src, &g.input)
	g.pointer = "none"
	if px, world, ok := pollPointer(g.src, &g.input, g.renderer.Transform()); ok {
		g.pointer = fmt.Sprintf("render %s world %s", px, world)
	}

	result := g.game.Step(g.input)
	g.state = result.State
	if result.Err != nil {
		g.logger.Error("command failed", "game", g.game.ID(), "error", result.Err)
	}
	g.input.Clear()

	if g.state.Quit {
		return ebiten.Termination
	}

	g.frame.Reset()
	g.game.Publish(g.frame)
	g.renderer.SetDebug(g.state.Debug)
	report, err := g.renderer.Render(g.frame, g.surface)
	g.report = report
	return err
}

// Draw uploads the rendered surface and prints the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(g.surface.Width(), g.surface.Height())
	}
	g.img.WritePixels(g.surface.Pix())
	screen.DrawImage(g.img, nil)
	ebitenutil.DebugPrint(screen, g.hud())
}

// Layout returns the fixed logical size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}

func (g *Game) hud() string {
	lines := []string{g.game.Title()}
	if g.state.Status != "" {
		lines[0] += ": " + g.state.Status
	}
	if g.state.Dirty {
		lines[0] += " [unsaved]"
	}
	if g.state.Debug {
		lines = append(lines,
			fmt.Sprintf("%.0f ticks/s  pointer: %s", ebiten.ActualTPS(), g.pointer),
		)
		lines = append(lines, g.report.Summary()...)
	}
	return strings.Join(lines, "\n")
}

// Surface returns the last rendered frame.
func (g *Game) Surface() *core.Surface {
	return g.surface
}

// Report returns the last render report.
func (g *Game) Report() render.Report {
	return g.report
}

// Run opens the window and blocks until the mode quits or the window is
// closed.
func Run(game registry.Game, opts Options) error {
	g, err := New(game, opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle("tilegame - " + game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.Runtime.TickRate > 0 {
		ebiten.SetTPS(opts.Runtime.TickRate)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
