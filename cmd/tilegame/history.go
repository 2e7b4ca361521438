package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilegame/internal/platform/tui"
	"github.com/vovakirdan/tilegame/internal/storage"
	"github.com/vovakirdan/tilegame/internal/tilemap"
)

var (
	flagHistoryLimit int
	flagSessions     bool
	flagPrune        int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved snapshots of the map",
	Long: `Every successful save of the map file is recorded in the history
database (map.history or --db). This lists the newest snapshots first.

Examples:
  tilegame history --db ~/.tilegame/history.db
  tilegame history --map level2.json --limit 5
  tilegame history --prune 10      # Keep the 10 newest snapshots
  tilegame history --sessions      # Show recent SSH sessions`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore the map from a snapshot",
	Long: `Write a snapshot back to the map file. Without an id, pick one from
an interactive list. The restore is itself recorded as a new snapshot.

Examples:
  tilegame restore
  tilegame restore 42 --map level1.json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRestore,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of entries to show")
	historyCmd.Flags().BoolVar(&flagSessions, "sessions", false, "Show recent SSH sessions instead of snapshots")
	historyCmd.Flags().IntVar(&flagPrune, "prune", 0, "Delete all but the newest N snapshots of the map")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	store := requireStore(cfg)
	defer store.Close()

	if flagSessions {
		printSessions(store, flagHistoryLimit)
		return
	}

	name := filepath.Base(cfg.Map.Path)

	if flagPrune > 0 {
		n, err := store.PruneSnapshots(name, flagPrune)
		if err != nil {
			fail("Error pruning snapshots: %v", err)
		}
		fmt.Printf("Deleted %d snapshot(s) of %s\n", n, name)
		return
	}

	snapshots, err := store.ListSnapshots(name, flagHistoryLimit)
	if err != nil {
		fail("Error retrieving snapshots: %v", err)
	}

	fmt.Printf("History - %s\n", name)
	fmt.Println()

	if len(snapshots) == 0 {
		fmt.Println("No snapshots recorded yet.")
		fmt.Println()
		fmt.Println("Press Ctrl+S in 'tilegame play edit' to save one.")
		return
	}

	fmt.Printf("  %-6s  %-6s  %s\n", "ID", "Tiles", "Saved")
	fmt.Printf("  %-6s  %-6s  %s\n", "--", "-----", "-----")

	for _, s := range snapshots {
		fmt.Printf("  %-6d  %-6d  %s\n", s.ID, s.Tiles, s.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printSessions(store *storage.Store, limit int) {
	sessions, err := store.RecentSessions(limit)
	if err != nil {
		fail("Error retrieving sessions: %v", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-6s  %-5s  %-10s  %-8s  %s\n", "User", "Mode", "Modes", "Ended", "Duration", "Date")
	fmt.Printf("  %-16s  %-6s  %-5s  %-10s  %-8s  %s\n", "----", "----", "-----", "-----", "--------", "----")

	for _, s := range sessions {
		fmt.Printf("  %-16s  %-6s  %-5d  %-10s  %-8s  %s\n",
			s.User, s.Mode, s.Games, s.EndReason,
			(time.Duration(s.Duration) * time.Second).String(),
			s.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}

func runRestore(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	store := requireStore(cfg)
	defer store.Close()

	logger, logCloser := openLogger(false)
	defer logCloser.Close()

	var id int64
	if len(args) == 1 {
		parsed, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fail("Error: snapshot id %q is not a number", args[0])
		}
		id = parsed
	} else {
		width, height := terminalSize()
		chosen, err := tui.RunHistory(store, filepath.Base(cfg.Map.Path), width, height)
		if err != nil {
			fail("Error: %v", err)
		}
		if chosen == nil {
			return
		}
		id = chosen.ID
	}

	snap, err := store.Snapshot(id)
	if err != nil {
		fail("Error retrieving snapshot: %v", err)
	}
	if snap == nil {
		fail("Error: no snapshot with id %d", id)
	}

	m, err := tilemap.Decode(snap.Data, tilemap.FormatFor(snap.MapName))
	if err != nil {
		fail("Error: snapshot %d is unreadable: %v", id, err)
	}

	// Encoded for the target path's format; recorded as a new snapshot.
	if err := mapRepository(cfg, store, logger).Save(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", cfg.Map.Path, err)
		os.Exit(1)
	}
	fmt.Printf("Restored snapshot %d (%d tiles) to %s\n", id, m.Len(), cfg.Map.Path)
}
