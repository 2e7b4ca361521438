package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tilegame/internal/config"
	"github.com/vovakirdan/tilegame/internal/logging"
	"github.com/vovakirdan/tilegame/internal/registry"
	"github.com/vovakirdan/tilegame/internal/render"
	"github.com/vovakirdan/tilegame/internal/storage"
	"github.com/vovakirdan/tilegame/internal/tilemap"
)

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the config, applies the global flags and validates it.
// Invalid configuration is fatal.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("Error loading config: %v", err)
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		fail("Invalid config (%s):\n%v", cfg.Source, err)
	}
	return cfg
}

func applyFlags(cfg *config.Config) {
	if flagMap != "" {
		cfg.Map.Path = flagMap
	}
	if flagDBPath != "" {
		cfg.Map.History = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Display.TUI.FPS = flagFPS
		cfg.Display.Window.TPS = flagFPS
	}
	if flagStrict {
		cfg.Render.Strict = true
	}
}

// openLogger builds the command's logger. Logs go to --log-file when set,
// otherwise to stderr, except for terminal sessions, which own the screen
// and discard them.
func openLogger(terminal bool) (*log.Logger, io.Closer) {
	if flagLogFile != "" || terminal {
		logger, closer, err := logging.OpenFile(flagLogFile, "tilegame", flagLogLevel)
		if err != nil {
			fail("Error opening log: %v", err)
		}
		render.SetLogger(logger)
		return logger, closer
	}
	logger, err := logging.New(os.Stderr, "tilegame", flagLogLevel)
	if err != nil {
		fail("Error: %v", err)
	}
	render.SetLogger(logger)
	return logger, nopCloser{}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore opens the snapshot history, if one is configured. A store that
// cannot be opened only disables history.
func openStore(cfg config.Config) *storage.Store {
	if cfg.Map.History == "" {
		return nil
	}
	store, err := storage.Open(cfg.Map.History)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return nil
	}
	return store
}

// requireStore opens the snapshot history or exits.
func requireStore(cfg config.Config) *storage.Store {
	if cfg.Map.History == "" {
		fail("Error: no history database; set map.history in the config or pass --db")
	}
	store, err := storage.Open(cfg.Map.History)
	if err != nil {
		fail("Error opening history database: %v", err)
	}
	return store
}

func mapRepository(cfg config.Config, store *storage.Store, logger *log.Logger) *tilemap.File {
	repo := &tilemap.File{Path: cfg.Map.Path, Logger: logger}
	if store != nil {
		repo.Snapshots = store
	}
	return repo
}

// createMode builds a registered mode or exits.
func createMode(id string, env registry.Env) registry.Game {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'tilegame list' to see available modes.")
		os.Exit(1)
	}
	game, err := registry.Create(id, env)
	if err != nil {
		fail("Error creating mode: %v", err)
	}
	return game
}

func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
