// Package registry provides a global registry for game mode factories.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilegame/internal/config"
	"github.com/vovakirdan/tilegame/internal/core"
	"github.com/vovakirdan/tilegame/internal/draw"
	"github.com/vovakirdan/tilegame/internal/tilemap"
)

// Game is the interface every game mode implements.
// Modes contain pure logic with no display dependencies: they mutate their
// entities in Step and describe them in world space in Publish. The platform
// handles input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier for this mode (e.g., "play", "edit").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset (re)creates the entities and loads the tile map.
	Reset(cfg core.RuntimeConfig) error

	// Step applies one tick of input, in order.
	Step(in core.InputFrame) core.StepResult

	// Publish writes every entity's drawing into the frame.
	Publish(frame *draw.Frame)

	// State returns the current game state.
	State() core.GameState
}

// Env is what a factory gets to build a mode with.
type Env struct {
	Config config.Config
	Maps   tilemap.Repository
	Logger *log.Logger
}

// Log returns the env logger, or the default one.
func (e Env) Log() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a mode.
type Factory func(env Env) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory to the registry.
// Typically called from a mode's init() function.
// Panics if a mode with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f(Env{Config: config.Default()})
	titles[id] = g.Title()
}

// List returns information about all registered modes, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a mode by its ID.
// Returns an error if the ID is not registered.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(env), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
