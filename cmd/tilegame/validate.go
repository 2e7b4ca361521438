package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilegame/internal/config"
	"github.com/vovakirdan/tilegame/internal/tilemap"
)

var validateCmd = &cobra.Command{
	Use:   "validate [map]",
	Short: "Check the config and a map file",
	Long: `Load the configuration and a map file and report any problem.
The map defaults to map.path. Exits non-zero if either is invalid.

Examples:
  tilegame validate
  tilegame validate level2.json --config ./my-config.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("Error loading config: %v", err)
	}
	applyFlags(&cfg)

	path := cfg.Map.Path
	if len(args) == 1 {
		path = args[0]
	}

	if !validate(os.Stdout, cfg, path) {
		os.Exit(1)
	}
}

// validate reports on the config and the map at path, and whether both
// are usable.
func validate(w io.Writer, cfg config.Config, path string) bool {
	ok := true

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(w, "config %s: invalid\n%v\n", cfg.Source, err)
		ok = false
	} else {
		fmt.Fprintf(w, "config %s: ok\n", cfg.Source)
	}

	m, err := tilemap.Load(path)
	var loadErr *tilemap.LoadError
	switch {
	case err == nil:
		fmt.Fprintf(w, "map %s: ok, %d tiles\n", path, m.Len())
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(w, "map %s: does not exist; modes start with an empty map\n", path)
	case errors.As(err, &loadErr):
		fmt.Fprintf(w, "map %s: invalid: %v\n", path, loadErr.Err)
		ok = false
	default:
		fmt.Fprintf(w, "map %s: %v\n", path, err)
		ok = false
	}
	return ok
}
