package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use it to size entities in world units; it carries nothing about
// pixels, so entities stay ignorant of the output surface.
type RuntimeConfig struct {
	TileWidth float64 // Tile side length in world units
	ViewW     float64 // Normalized view width in tiles
	ViewH     float64 // Normalized view height in tiles
	TickRate  int     // Simulation ticks per second (default 60)
	Debug     bool    // Start with the debug overlay enabled
	ReadOnly  bool    // Refuse to save the tile map (SSH sessions)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TileWidth: 1,
		ViewW:     16,
		ViewH:     12,
		TickRate:  60,
		Debug:     true,
	}
}

// Extent builds the world<->normalized mapping for this config.
func (c RuntimeConfig) Extent() (Extent, error) {
	return NewExtent(c.TileWidth, c.ViewW, c.ViewH)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Status  string // One-line status for the HUD
	Debug   bool   // Whether the debug overlay is on
	Dirty   bool   // Whether the tile map has unsaved edits
	Quit    bool   // Whether the game asked to end the session
	Clamped bool   // Whether the last scale command hit a size limit
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Err   error // Non-fatal error from a command (e.g. a failed save)
}
