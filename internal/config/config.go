// Package config provides YAML-based configuration for the tile game:
// world geometry, the player, tile behavior, rendering and the displays.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/vovakirdan/tilegame/internal/core"
)

// ErrInvalid marks a configuration value the game cannot start with.
var ErrInvalid = errors.New("config: invalid")

// Config is the whole configuration file.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Player  PlayerConfig  `yaml:"player"`
	Tiles   TilesConfig   `yaml:"tiles"`
	Render  RenderConfig  `yaml:"render"`
	Display DisplayConfig `yaml:"display"`
	Map     MapConfig     `yaml:"map"`
	Palette []string      `yaml:"palette"` // Editor styles, in key order 1..n

	// Source is where the config was read from ("embedded" for the default).
	Source string `yaml:"-"`
}

// WorldConfig defines world-space geometry.
type WorldConfig struct {
	TileWidth float64   `yaml:"tile_width"`
	ViewTiles ViewTiles `yaml:"view_tiles"` // Span of normalized space [-1, 1]
}

// ViewTiles is a size measured in tiles.
type ViewTiles struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// PlayerConfig defines the player square.
type PlayerConfig struct {
	Start        [2]float64 `yaml:"start"`          // World units
	SizeTiles    int        `yaml:"size_tiles"`     // Starting side, in tiles
	MaxSizeTiles int        `yaml:"max_size_tiles"` // 0 = unbounded
	Color        string     `yaml:"color"`
}

// Collision behaviors for tiles the player runs into.
const (
	BehaviorStop = "stop"
	BehaviorPass = "pass"
	BehaviorPush = "push"
)

// TilesConfig defines how tiles react to the player.
type TilesConfig struct {
	Behavior string `yaml:"behavior"`
}

// RenderConfig defines renderer options.
type RenderConfig struct {
	Background string `yaml:"background"`
	Debug      bool   `yaml:"debug"`  // Start with the debug overlay on
	Strict     bool   `yaml:"strict"` // Fail on contract violations instead of skipping
}

// DisplayConfig holds per-display settings.
type DisplayConfig struct {
	TUI    TUIConfig    `yaml:"tui"`
	Window WindowConfig `yaml:"window"`
}

// TUIConfig defines the terminal display. One terminal cell is one pixel
// wide and two pixels tall.
type TUIConfig struct {
	Scale float64 `yaml:"scale"` // Pixels per world unit
	FPS   int     `yaml:"fps"`
}

// WindowConfig defines the native window display.
type WindowConfig struct {
	Scale  float64 `yaml:"scale"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	TPS    int     `yaml:"tps"`
}

// MapConfig defines where the level lives.
type MapConfig struct {
	Path    string `yaml:"path"`
	History string `yaml:"history"` // SQLite snapshot database, empty to disable
}

// Runtime returns the game-side settings.
func (c Config) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		TileWidth: c.World.TileWidth,
		ViewW:     c.World.ViewTiles.W,
		ViewH:     c.World.ViewTiles.H,
		TickRate:  c.Display.TUI.FPS,
		Debug:     c.Render.Debug,
	}
}

// PlayerColor returns the parsed player color.
func (c Config) PlayerColor() core.Color {
	col, err := ParseColor(c.Player.Color)
	if err != nil {
		return core.ColorRed
	}
	return col
}

// BackgroundColor returns the parsed background color.
func (c Config) BackgroundColor() core.Color {
	col, err := ParseColor(c.Render.Background)
	if err != nil {
		return core.ColorGrey
	}
	return col
}

// PaletteColors returns the parsed editor palette. Unparseable entries are
// dropped; Validate reports them.
func (c Config) PaletteColors() []core.Color {
	out := make([]core.Color, 0, len(c.Palette))
	for _, s := range c.Palette {
		if col, err := ParseColor(s); err == nil {
			out = append(out, col)
		}
	}
	return out
}

// Validate reports every value the game cannot start with.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.World.TileWidth <= 0 {
		bad("world.tile_width must be > 0, got %v", c.World.TileWidth)
	}
	if c.World.ViewTiles.W <= 0 || c.World.ViewTiles.H <= 0 {
		bad("world.view_tiles must be positive, got %vx%v", c.World.ViewTiles.W, c.World.ViewTiles.H)
	}
	if c.Player.SizeTiles < 1 {
		bad("player.size_tiles must be >= 1, got %d", c.Player.SizeTiles)
	}
	if c.Player.MaxSizeTiles != 0 && c.Player.MaxSizeTiles < c.Player.SizeTiles {
		bad("player.max_size_tiles (%d) is below player.size_tiles (%d)", c.Player.MaxSizeTiles, c.Player.SizeTiles)
	}
	if _, err := ParseColor(c.Player.Color); err != nil {
		bad("player.color: %v", err)
	}
	if !slices.Contains([]string{BehaviorStop, BehaviorPass, BehaviorPush}, c.Tiles.Behavior) {
		bad("tiles.behavior must be stop, pass or push, got %q", c.Tiles.Behavior)
	}
	if _, err := ParseColor(c.Render.Background); err != nil {
		bad("render.background: %v", err)
	}
	if c.Display.TUI.Scale <= 0 {
		bad("display.tui.scale must be > 0, got %v", c.Display.TUI.Scale)
	}
	if c.Display.TUI.FPS <= 0 {
		bad("display.tui.fps must be > 0, got %d", c.Display.TUI.FPS)
	}
	w := c.Display.Window
	if w.Scale <= 0 {
		bad("display.window.scale must be > 0, got %v", w.Scale)
	}
	if w.Width <= 0 || w.Height <= 0 {
		bad("display.window size must be positive, got %dx%d", w.Width, w.Height)
	}
	if w.TPS <= 0 {
		bad("display.window.tps must be > 0, got %d", w.TPS)
	}
	if c.Map.Path == "" {
		bad("map.path is empty")
	}
	if len(c.Palette) == 0 {
		bad("palette is empty")
	}
	for i, s := range c.Palette {
		if _, err := ParseColor(s); err != nil {
			bad("palette[%d]: %v", i, err)
		}
	}
	return errors.Join(errs...)
}

var namedColors = map[string]core.Color{
	"white":      core.ColorWhite,
	"grey":       core.ColorGrey,
	"med_grey":   core.ColorMedGrey,
	"light_grey": core.ColorLightGrey,
	"red":        core.ColorRed,
	"black":      core.RGB(0, 0, 0),
}

// ParseColor accepts a palette name, #rrggbb or #rrggbbaa.
func ParseColor(s string) (core.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return core.Color{}, fmt.Errorf("unknown color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return core.Color{}, fmt.Errorf("bad hex color %q", s)
	}
	return core.Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
