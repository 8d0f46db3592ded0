// tictactoe is two-player tic-tac-toe for one terminal, or for many over SSH.
//
// Usage:
//
//	tictactoe play           - Play on this terminal
//	tictactoe serve          - Start SSH server, one match per connection
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--fps <rate>        - Effect tick rate (overrides display.tick_rate)
//	--log-level <level> - debug, info, warn or error (default: info)
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Tic-tac-toe for two players in your terminal",
	Long: `Two players take turns on one keyboard (or one mouse). The starting
player is picked at random every round; scores carry over until reset.

Available commands:
  play     - Play on this terminal
  serve    - Start SSH server, every connection gets its own match

Configuration is read from --config, ~/.tictactoe/config.yaml or
./configs/tictactoe.yaml, in that order, and TICTACTOE_* environment
variables override single keys (e.g. TICTACTOE_HIGHLIGHT_MS=500).

Examples:
  tictactoe play
  tictactoe play --seed 42 --log-file /tmp/ttt.log --log-level debug
  tictactoe serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Effect tick rate (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the game config and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS != 0 {
		cfg.Display.TickRate = flagFPS
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// newLogger builds a logger at the --log-level threshold.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), nil
}

// openLedger opens the in-memory round history. The game runs without
// history when it cannot be opened.
func openLedger(logger *log.Logger) *storage.Store {
	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("round history unavailable", "err", err)
		return nil
	}
	return store
}

// closeLedger reports the ledger size and closes it. A nil store is a no-op.
func closeLedger(store *storage.Store, logger *log.Logger) {
	if store == nil {
		return
	}
	if n, err := store.TotalRounds(context.Background()); err == nil {
		logger.Info("round history closed", "rounds", n)
	}
	if err := store.Close(); err != nil {
		logger.Warn("cannot close round history", "err", err)
	}
}
