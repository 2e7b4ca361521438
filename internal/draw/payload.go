package draw

import (
	"fmt"

	"github.com/vovakirdan/tilegame/internal/core"
)

// Payload is one entity's drawing for the current frame.
// Implementations are the *Drawing types in this package.
type Payload interface {
	Kind() Kind
	// Validate reports a *ContractError if a field the renderer needs is
	// missing or malformed.
	Validate() error
}

// ContractError describes a payload that breaks the renderer contract,
// or a kind the renderer has no routine for.
type ContractError struct {
	Name   string // Entry name in the frame, filled in by the renderer
	Kind   Kind
	Field  string
	Reason string
}

func (e *ContractError) Error() string {
	name := e.Name
	if name == "" {
		name = e.Kind.String()
	}
	if e.Field == "" {
		return fmt.Sprintf("draw: %s (%s): %s", name, e.Kind, e.Reason)
	}
	return fmt.Sprintf("draw: %s (%s): field %q %s", name, e.Kind, e.Field, e.Reason)
}

func missing(k Kind, field string) error {
	return &ContractError{Kind: k, Field: field, Reason: "is missing"}
}

// polygon checks a vertex list is drawable.
func polygon(k Kind, field string, vs []core.World) error {
	if len(vs) == 0 {
		return missing(k, field)
	}
	if len(vs) < 3 {
		return &ContractError{Kind: k, Field: field, Reason: fmt.Sprintf("has %d vertices, need at least 3", len(vs))}
	}
	return nil
}

// DebugOverlay is optional debug art attached to a player drawing.
type DebugOverlay struct {
	Tiles [][]core.World // Outlined quads, one per tile the player covers
	Color core.Color
}

// PlayerDrawing is the player's filled polygon.
type PlayerDrawing struct {
	Vertices []core.World
	Color    core.Color
	Debug    *DebugOverlay // nil when debug is off
}

// Kind returns KindPlayer.
func (PlayerDrawing) Kind() Kind { return KindPlayer }

// Validate requires a drawable polygon and a color. When the debug overlay
// is present, it needs at least one tile quad and its own color.
func (d PlayerDrawing) Validate() error {
	if err := polygon(KindPlayer, "vertices", d.Vertices); err != nil {
		return err
	}
	if d.Color.IsZero() {
		return missing(KindPlayer, "color")
	}
	if d.Debug != nil {
		if len(d.Debug.Tiles) == 0 {
			return missing(KindPlayer, "debug.tiles_overlay")
		}
		for _, tile := range d.Debug.Tiles {
			if err := polygon(KindPlayer, "debug.tiles_overlay", tile); err != nil {
				return err
			}
		}
		if d.Debug.Color.IsZero() {
			return missing(KindPlayer, "debug.color")
		}
	}
	return nil
}

// TileArt is one tile of a tile map drawing.
type TileArt struct {
	Vertices []core.World
	Color    core.Color
}

// TileMapDrawing is every tile of the map. An empty map is valid.
type TileMapDrawing struct {
	Tiles []TileArt
	Debug bool // Thicker borders
}

// Kind returns KindTileMap.
func (TileMapDrawing) Kind() Kind { return KindTileMap }

// Validate checks that every tile is a drawable polygon.
func (d TileMapDrawing) Validate() error {
	for _, tile := range d.Tiles {
		if err := polygon(KindTileMap, "tile_list", tile.Vertices); err != nil {
			return err
		}
	}
	return nil
}

// Swatch is one selectable style in the editor palette.
type Swatch struct {
	Vertices []core.World
	Color    core.Color
	Selected bool
}

// PaletteDrawing is the editor's row of tile styles.
type PaletteDrawing struct {
	Swatches []Swatch
}

// Kind returns KindPalette.
func (PaletteDrawing) Kind() Kind { return KindPalette }

// Validate requires at least one swatch, each a drawable polygon.
func (d PaletteDrawing) Validate() error {
	if len(d.Swatches) == 0 {
		return missing(KindPalette, "swatches")
	}
	for _, s := range d.Swatches {
		if err := polygon(KindPalette, "swatches", s.Vertices); err != nil {
			return err
		}
	}
	return nil
}

// CursorDrawing is the editor's translucent ghost tile.
type CursorDrawing struct {
	Vertices []core.World
	Color    core.Color // Alpha is honored
	Border   core.Color
}

// Kind returns KindCursor.
func (CursorDrawing) Kind() Kind { return KindCursor }

// Validate requires a drawable polygon and a fill color. A zero border
// is allowed; the renderer picks one.
func (d CursorDrawing) Validate() error {
	if err := polygon(KindCursor, "vertices", d.Vertices); err != nil {
		return err
	}
	if d.Color.IsZero() {
		return missing(KindCursor, "color")
	}
	return nil
}
