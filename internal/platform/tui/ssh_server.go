package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tictactoe/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves one independent hot-seat match per SSH connection.
// Sessions share nothing but the round ledger.
type SSHServer struct {
	config   SSHServerConfig
	game     config.Config
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
	sessions *sessionRegistry
}

// NewSSHServer creates a new SSH server. store may be nil; the caller keeps
// ownership of it.
func NewSSHServer(cfg SSHServerConfig, game config.Config, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tictactoe-ssh",
		})
	}

	srv := &SSHServer{
		config:   cfg,
		game:     game,
		store:    store,
		logger:   logger,
		sessions: newSessionRegistry(),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".tictactoe", "host_key")
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

type sessionIDKey struct{}

// teaHandler creates a fresh match for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	id, _ := sess.Context().Value(sessionIDKey{}).(string)

	model := NewSessionModel(Options{
		Config: s.game,
		Runtime: core.RuntimeConfig{
			ScreenW: pty.Window.Width,
			ScreenH: pty.Window.Height,
			Seed:    time.Now().UnixNano(),
		},
		Store:  s.store,
		Logger: s.logger.With("session", id),
		Sound:  NewBell(sess, s.game.Sound),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// sessionMiddleware tags each connection with an ID and tracks it while
// it is open.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		info := SessionInfo{
			ID:      uuid.NewString(),
			User:    sess.User(),
			Remote:  sess.RemoteAddr().String(),
			Started: time.Now(),
		}
		sess.Context().SetValue(sessionIDKey{}, info.ID)

		s.sessions.add(info)
		s.logger.Info("session started",
			"session", info.ID,
			"user", info.User,
			"remote", info.Remote,
			"active", s.sessions.Len(),
		)

		next(sess)

		s.sessions.remove(info.ID)
		s.logger.Info("session ended",
			"session", info.ID,
			"user", info.User,
			"duration", time.Since(info.Started).Round(time.Second),
			"active", s.sessions.Len(),
		)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)

	errg.Go(func() error {
		s.logger.Info("starting SSH server", "address", s.config.Address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh: %w", err)
		}
		return nil
	})

	errg.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down...", "active", s.sessions.Len())
		for _, info := range s.Sessions() {
			s.logger.Info("closing session", "session", info.ID, "user", info.User)
		}
		return s.Shutdown()
	})

	return errg.Wait()
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

// Sessions lists the open sessions, oldest first.
func (s *SSHServer) Sessions() []SessionInfo {
	return s.sessions.list()
}

// SessionInfo describes one open SSH connection.
type SessionInfo struct {
	ID      string
	User    string
	Remote  string
	Started time.Time
}

// sessionRegistry tracks open sessions. Handlers run on their own
// goroutines, so it is backed by a concurrent map.
type sessionRegistry struct {
	m *xsync.MapOf[string, SessionInfo]
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{m: xsync.NewMapOf[string, SessionInfo]()}
}

func (r *sessionRegistry) add(info SessionInfo) {
	r.m.Store(info.ID, info)
}

func (r *sessionRegistry) remove(id string) {
	r.m.Delete(id)
}

// Len returns the number of open sessions.
func (r *sessionRegistry) Len() int {
	return r.m.Size()
}

func (r *sessionRegistry) list() []SessionInfo {
	out := make([]SessionInfo, 0, r.m.Size())
	r.m.Range(func(_ string, info SessionInfo) bool {
		out = append(out, info)
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Started.Before(out[j].Started)
	})
	return out
}
