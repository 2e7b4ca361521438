// Package render turns a draw.Frame into pixels. It knows nothing about game
// rules: it only knows how to map world coordinates through a Transform and
// rasterize the payload kinds it has routines for.
package render

import (
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
)

// Context is what a routine gets to draw with.
type Context struct {
	Canvas *Canvas
	Dst    *core.Surface
	Xfm    core.Transform
	Debug  bool
}

// Pixels converts world-space vertices for this frame's surface.
func (c *Context) Pixels(vs []core.World) []core.Pixel {
	return c.Xfm.WorldToPixels(vs)
}

// Routine rasterizes one payload kind.
type Routine func(ctx *Context, p draw.Payload) error

// Options configures a Renderer.
type Options struct {
	Background core.Color
	// Strict makes Render fail on the first contract violation. Lenient
	// mode logs the violation and skips the entry.
	Strict bool
	Debug  bool
	Logger *log.Logger
}

// Renderer draws frames onto a surface. It holds no state besides the
// Transform and its routine table, so it is cheap to rebuild on resize.
type Renderer struct {
	xfm      core.Transform
	opts     Options
	routines map[draw.Kind]Routine
	logger   *log.Logger
}

// New creates a renderer with routines for every built-in kind.
func New(xfm core.Transform, opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	r := &Renderer{
		xfm:      xfm,
		opts:     opts,
		routines: make(map[draw.Kind]Routine),
		logger:   logger,
	}
	r.Register(draw.KindTileMap, renderTileMap)
	r.Register(draw.KindPlayer, renderPlayer)
	r.Register(draw.KindPalette, renderPalette)
	r.Register(draw.KindCursor, renderCursor)
	return r
}

// Register adds or replaces the routine for a kind. A nil routine removes it.
func (r *Renderer) Register(k draw.Kind, fn Routine) {
	if fn == nil {
		delete(r.routines, k)
		return
	}
	r.routines[k] = fn
}

// Transform returns the transform the renderer draws with.
func (r *Renderer) Transform() core.Transform {
	return r.xfm
}

// SetDebug toggles debug styling (thicker borders).
func (r *Renderer) SetDebug(on bool) {
	r.opts.Debug = on
}

// Skip records an entry that was not drawn.
type Skip struct {
	Name string
	Err  error
}

// Report says what happened to each entry of a frame.
type Report struct {
	Drawn   []string
	Skipped []Skip
}

// Complete returns true if every entry was drawn.
func (r Report) Complete() bool {
	return len(r.Skipped) == 0
}

// Summary returns HUD lines listing drawn and forgotten entries.
func (r Report) Summary() []string {
	lines := []string{"Drew: " + strings.Join(r.Drawn, ",")}
	if r.Complete() {
		return append(lines, "Drew all drawings.")
	}
	names := make([]string, len(r.Skipped))
	for i, s := range r.Skipped {
		names[i] = s.Name
	}
	return append(lines, "Forgot to draw: "+strings.Join(names, ","))
}

// Render clears dst to the background color and draws every entry of the
// frame in priority order.
func (r *Renderer) Render(frame *draw.Frame, dst *core.Surface) (Report, error) {
	var report Report
	dst.Fill(r.opts.Background)

	canvas := NewCanvas(dst)
	defer canvas.Close()

	ctx := &Context{Canvas: canvas, Dst: dst, Xfm: r.xfm, Debug: r.opts.Debug}
	for _, e := range frame.Entries() {
		if err := r.drawEntry(ctx, e); err != nil {
			report.Skipped = append(report.Skipped, Skip{Name: e.Name, Err: err})
			if r.opts.Strict {
				return report, err
			}
			r.logger.Warn("skipped drawing", "name", e.Name, "kind", e.Payload.Kind(), "error", err)
			continue
		}
		report.Drawn = append(report.Drawn, e.Name)
	}
	return report, nil
}

func (r *Renderer) drawEntry(ctx *Context, e draw.Entry) error {
	kind := e.Payload.Kind()
	fn, ok := r.routines[kind]
	if !ok {
		return &draw.ContractError{Name: e.Name, Kind: kind, Reason: "has no render routine"}
	}
	if err := e.Payload.Validate(); err != nil {
		return named(err, e.Name)
	}
	if err := fn(ctx, e.Payload); err != nil {
		return named(err, e.Name)
	}
	return nil
}

// named fills in the entry name on contract errors.
func named(err error, name string) error {
	var ce *draw.ContractError
	if errors.As(err, &ce) && ce.Name == "" {
		ce.Name = name
	}
	return err
}
