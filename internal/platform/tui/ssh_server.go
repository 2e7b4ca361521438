package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tilegame/internal/config"
	"github.com/vovakirdan/tilegame/internal/registry"
	"github.com/vovakirdan/tilegame/internal/storage"
	"github.com/vovakirdan/tilegame/internal/tilemap"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tilegame/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the game configuration. The map at Game.Map.Path is read
	// once at startup; every session edits its own copy.
	Game config.Config

	// ReadOnly refuses saves. Otherwise a save only replaces the session's
	// copy, which Ctrl+L reloads.
	ReadOnly bool

	// Store records finished sessions. May be nil.
	Store *storage.Store

	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.Default(),
		ReadOnly:    true,
	}
}

// SSHServer wraps a Wish SSH server for the tile game.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	base   *tilemap.TileMap // Map every session starts from
	logger *log.Logger
}

// sessionStatsKey is the ssh.Context key of a session's *sessionStats.
type sessionStatsKey struct{}

// sessionStats is filled by the session model and read when the
// connection ends.
type sessionStats struct {
	games    int
	lastMode string
	quit     bool
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tilegame-ssh",
		})
	}

	base, err := tilemap.LoadOrEmpty(&tilemap.File{Path: cfg.Game.Map.Path})
	if err != nil {
		return nil, fmt.Errorf("cannot load map: %w", err)
	}
	logger.Info("loaded map", "path", cfg.Game.Map.Path, "tiles", base.Len())

	srv := &SSHServer{
		config: cfg,
		base:   base,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".tilegame", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	stats := &sessionStats{}
	sshSession.Context().SetValue(sessionStatsKey{}, stats)

	opts := OptionsFrom(s.config.Game)
	opts.Runtime.ReadOnly = s.config.ReadOnly
	opts.Width, opts.Height = pty.Window.Width, pty.Window.Height
	opts.Lipgloss = bubbletea.MakeRenderer(sshSession)
	opts.Logger = s.logger.With("user", sshSession.User())
	opts.Embedded = true

	env := registry.Env{
		Config: s.config.Game,
		Maps:   tilemap.NewMemory(filepath.Base(s.config.Game.Map.Path), s.base),
		Logger: opts.Logger,
	}

	model := newSessionModel(env, opts, stats)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// loggingMiddleware logs SSH session events and records finished sessions.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		started := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)

		stats, ok := sshSession.Context().Value(sessionStatsKey{}).(*sessionStats)
		if !ok || s.config.Store == nil {
			return
		}
		reason := "disconnect"
		if stats.quit {
			reason = "quit"
		}
		if _, err := s.config.Store.SaveSession(storage.SessionRecord{
			User:      sshSession.User(),
			Mode:      stats.lastMode,
			Games:     stats.games,
			EndReason: reason,
			Duration:  int(time.Since(started).Seconds()),
		}); err != nil {
			s.logger.Warn("could not record session", "error", err)
		}
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages the session flow: menu -> mode -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	env      registry.Env
	opts     Options
	stats    *sessionStats
	menu     MenuModel
	game     *Model
	quitting bool
}

// newSessionModel creates a new session model. stats may be nil.
func newSessionModel(env registry.Env, opts Options, stats *sessionStats) SessionModel {
	if stats == nil {
		stats = &sessionStats{}
	}
	return SessionModel{
		env:   env,
		opts:  opts,
		stats: stats,
		menu:  NewMenuModel(opts.Width, opts.Height, ""),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Width, m.opts.Height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			m.stats.quit = true
			return m, tea.Quit
		}
	}

	if m.game != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		m.stats.quit = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	game, err := registry.Create(selected.GameID, m.env)
	if err == nil {
		var gm Model
		gm, err = NewModel(game, m.opts)
		if err == nil {
			m.game = &gm
			m.stats.games++
			m.stats.lastMode = selected.GameID
			return m, gm.Init()
		}
	}

	m.env.Log().Error("cannot start mode", "mode", selected.GameID, "error", err)
	m.menu = NewMenuModel(m.opts.Width, m.opts.Height, "Could not start "+selected.Title)
	return m, nil
}

// updateGame handles updates when a mode is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = &gm
	}

	// Back to menu
	if m.game.Done() {
		m.game = nil
		m.menu = NewMenuModel(m.opts.Width, m.opts.Height, "")
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.game != nil {
		return m.game.View()
	}
	return m.menu.View()
}

// InGame reports whether a mode is running.
func (m SessionModel) InGame() bool {
	return m.game != nil
}
