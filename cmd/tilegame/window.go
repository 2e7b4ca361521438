package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilegame/internal/platform/window"
	"github.com/vovakirdan/tilegame/internal/registry"
)

var (
	flagWindowScale  float64
	flagWindowWidth  int
	flagWindowHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window <mode>",
	Short: "Run a mode in a native window",
	Long: `Run the specified mode in a native window.

The window uses the same renderer as the terminal; only the pixel size
differs. Controls match 'tilegame play', plus Esc to quit.

Examples:
  tilegame window play
  tilegame window edit --scale 40 --width 800 --height 600`,
	Args: cobra.ExactArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagWindowScale, "scale", 0, "Pixels per world unit (0 = from config)")
	windowCmd.Flags().IntVar(&flagWindowWidth, "width", 0, "Window width in pixels (0 = from config)")
	windowCmd.Flags().IntVar(&flagWindowHeight, "height", 0, "Window height in pixels (0 = from config)")
}

func runWindow(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if flagWindowScale > 0 {
		cfg.Display.Window.Scale = flagWindowScale
	}
	if flagWindowWidth > 0 {
		cfg.Display.Window.Width = flagWindowWidth
	}
	if flagWindowHeight > 0 {
		cfg.Display.Window.Height = flagWindowHeight
	}

	logger, logCloser := openLogger(false)
	defer logCloser.Close()

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	game := createMode(args[0], registry.Env{
		Config: cfg,
		Maps:   mapRepository(cfg, store, logger),
		Logger: logger,
	})

	opts := window.OptionsFrom(cfg)
	opts.Logger = logger

	logger.Info("starting", "mode", game.ID(), "map", cfg.Map.Path, "config", cfg.Source)
	if err := window.Run(game, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running mode: %v\n", err)
		os.Exit(1)
	}
}
