// tilegame is a small tile game: walk a player square around a tile map,
// or edit the map, in the terminal, in a native window, or over SSH.
//
// Usage:
//
//	tilegame                    - Pick a mode from a menu
//	tilegame list               - List available modes
//	tilegame play <mode>        - Run a mode in the terminal
//	tilegame window <mode>      - Run a mode in a native window
//	tilegame serve              - Start SSH server for remote play
//	tilegame history            - List saved snapshots of the map
//	tilegame restore [id]       - Restore the map from a snapshot
//	tilegame snapshot <mode>    - Render one frame to a PNG file
//	tilegame validate [map]     - Check the config and a map file
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.tilegame, ./configs, embedded)
//	--map <path>        - Map file to load and save (overrides map.path)
//	--db <path>         - Snapshot history database (overrides map.history)
//	--fps <rate>        - Tick rate for both displays
//	--log-file <path>   - Write logs to a file
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/tilegame/internal/games/edit"
	_ "github.com/vovakirdan/tilegame/internal/games/play"
)

var (
	// Global flags
	flagConfig   string
	flagMap      string
	flagDBPath   string
	flagFPS      int
	flagStrict   bool
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilegame",
	Short: "Tile game - walk and edit a tile map",
	Long: `Tile game draws a player square and a tile map through a small
software renderer. It runs in the terminal (two pixels per cell), in a
native window, or over SSH.

Run without a command to pick a mode from a menu.

Available commands:
  list      - Show all modes
  play      - Run a mode in the terminal
  window    - Run a mode in a native window
  serve     - Start SSH server for remote play
  history   - List saved snapshots of the map
  restore   - Restore the map from a snapshot
  snapshot  - Render one frame to a PNG file
  validate  - Check the config and a map file

Examples:
  tilegame
  tilegame play edit --map level2.json
  tilegame window play
  tilegame serve --ssh :2222
  tilegame history --db ~/.tilegame/history.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagMap, "map", "", "Path to the map file (overrides map.path)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to snapshot history database (overrides map.history)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "Fail on draw contract violations instead of skipping")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(validateCmd)
}
