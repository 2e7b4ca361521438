package render

import (
	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
)

const (
	borderWidth      = 1
	debugBorderWidth = 2
	selectedBorder   = 5
)

func wrongType(want draw.Kind) error {
	return &draw.ContractError{Kind: want, Reason: "payload has the wrong type for this routine"}
}

func (c *Context) border() int {
	if c.Debug {
		return debugBorderWidth
	}
	return borderWidth
}

func renderPlayer(ctx *Context, p draw.Payload) error {
	d, ok := p.(draw.PlayerDrawing)
	if !ok {
		return wrongType(draw.KindPlayer)
	}
	if err := ctx.Canvas.FillPolygon(ctx.Pixels(d.Vertices), d.Color); err != nil {
		return err
	}
	if d.Debug != nil {
		for _, tile := range d.Debug.Tiles {
			if err := ctx.Canvas.StrokePolygon(ctx.Pixels(tile), d.Debug.Color, debugBorderWidth); err != nil {
				return err
			}
		}
	}
	return nil
}

// tileBorder keeps white tiles outlined against a white border.
func tileBorder(c core.Color) core.Color {
	if c.Name() == "white" {
		return core.ColorLightGrey
	}
	return core.ColorWhite
}

func renderTileMap(ctx *Context, p draw.Payload) error {
	d, ok := p.(draw.TileMapDrawing)
	if !ok {
		return wrongType(draw.KindTileMap)
	}
	width := ctx.border()
	if d.Debug {
		width = debugBorderWidth
	}
	for _, tile := range d.Tiles {
		pts := ctx.Pixels(tile.Vertices)
		if err := ctx.Canvas.FillPolygon(pts, tile.Color); err != nil {
			return err
		}
		if err := ctx.Canvas.StrokePolygon(pts, tileBorder(tile.Color), width); err != nil {
			return err
		}
	}
	return nil
}

func renderPalette(ctx *Context, p draw.Payload) error {
	d, ok := p.(draw.PaletteDrawing)
	if !ok {
		return wrongType(draw.KindPalette)
	}
	for _, s := range d.Swatches {
		pts := ctx.Pixels(s.Vertices)
		if err := ctx.Canvas.FillPolygon(pts, s.Color); err != nil {
			return err
		}
		width := borderWidth
		if s.Selected {
			width = selectedBorder
		}
		if err := ctx.Canvas.StrokePolygon(pts, tileBorder(s.Color), width); err != nil {
			return err
		}
	}
	return nil
}

func renderCursor(ctx *Context, p draw.Payload) error {
	d, ok := p.(draw.CursorDrawing)
	if !ok {
		return wrongType(draw.KindCursor)
	}
	pts := ctx.Pixels(d.Vertices)
	if err := ctx.Canvas.FillPolygon(pts, d.Color); err != nil {
		return err
	}
	border := d.Border
	if border.IsZero() {
		border = core.ColorWhite
	}
	return ctx.Canvas.StrokePolygon(pts, border, ctx.border())
}
