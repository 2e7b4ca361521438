package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilegame/internal/config"
	"github.com/vovakirdan/tilegame/internal/platform/tui"
	"github.com/vovakirdan/tilegame/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Run a mode in the terminal",
	Long: `Run the specified mode in the terminal. Each cell shows two pixels.

Controls:
  W/A/S/D      - Move the player (play) or the cursor (edit)
  Up/Down      - Grow/shrink the player
  Space        - Place or erase a tile at the cursor
  1-9          - Pick a palette style
  Mouse        - Left click places, right click erases
  F2           - Toggle the debug overlay
  Ctrl+S       - Save the map
  Ctrl+L       - Reload the map
  ?            - Help
  Q/Ctrl+C     - Quit

Logs are discarded unless --log-file is given.

Examples:
  tilegame play play
  tilegame play edit --map level2.json
  tilegame play edit --db ~/.tilegame/history.db
  tilegame play play --fps 60 --log-file tilegame.log`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if err := playInTerminal(cfg, args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error running mode: %v\n", err)
		os.Exit(1)
	}
}

// runMenu is the root command: pick a mode, play it, and return to the
// menu until the user quits.
func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	for {
		width, height := terminalSize()
		id, err := tui.RunMenu(width, height)
		if err != nil {
			fail("Error: %v", err)
		}
		if id == "" {
			return
		}
		if err := playInTerminal(cfg, id); err != nil {
			fmt.Fprintf(os.Stderr, "Error running mode: %v\n", err)
		}
	}
}

func playInTerminal(cfg config.Config, id string) error {
	logger, logCloser := openLogger(true)
	defer logCloser.Close()

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	game := createMode(id, registry.Env{
		Config: cfg,
		Maps:   mapRepository(cfg, store, logger),
		Logger: logger,
	})

	opts := tui.OptionsFrom(cfg)
	opts.Logger = logger
	opts.Width, opts.Height = terminalSize()

	logger.Info("starting", "mode", id, "map", cfg.Map.Path, "config", cfg.Source)
	return tui.Run(game, opts)
}
