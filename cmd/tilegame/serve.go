package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilegame/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagWritable    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a mode picker menu. The map
is read once at startup and every session edits its own copy; the file on
disk is never written. Sessions are read-only unless --writable is given,
in which case Ctrl+S keeps edits for the rest of the session.

Finished sessions are recorded in the history database when one is
configured (map.history or --db).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tilegame/host_key

Examples:
  tilegame serve                           # Listen on :23234 with auto-generated key
  tilegame serve --ssh :2222               # Listen on port 2222
  tilegame serve --host-key ./my_host_key  # Use specific host key
  tilegame serve --map level2.json --writable

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagWritable, "writable", false, "Let sessions save edits to their own copy of the map")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	logger, logCloser := openLogger(false)
	defer logCloser.Close()

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = flagSSHAddr
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	serverCfg.Game = cfg
	serverCfg.ReadOnly = !flagWritable
	serverCfg.Store = store
	serverCfg.Logger = logger

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting tilegame SSH server on %s\n", serverCfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(serverCfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
