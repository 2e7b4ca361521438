// Package draw is the handoff between game entities and the renderer.
//
// Entities publish typed payloads, expressed only in world space, into a
// Frame under their own name. The renderer walks the Frame and picks a
// routine by the payload's Kind. Entities never see pixels, the scale or
// the output surface.
package draw

// Kind tags a payload variant. The set is closed: a new drawable kind is a
// new constant plus a payload type, never a string lookup.
type Kind uint8

const (
	KindTileMap Kind = iota
	KindPlayer
	KindPalette
	KindCursor
	kindCount // Sentinel value for iteration
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindTileMap:
		return "tileMap"
	case KindPlayer:
		return "player"
	case KindPalette:
		return "palette"
	case KindCursor:
		return "cursor"
	default:
		return "unknown"
	}
}

// Priority determines render order. Lower values render first, so the
// player is painted over the tiles and the cursor over everything.
func (k Kind) Priority() int {
	return int(k)
}

// Kinds returns every defined kind in priority order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
