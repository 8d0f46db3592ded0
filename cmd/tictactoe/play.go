package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/platform/tui"
)

var (
	flagSeed    int64
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on this terminal",
	Long: `Start a hot-seat match on this terminal.

Controls:
  1-9          - Place a mark (cells numbered left to right, top to bottom)
  Arrows/hjkl  - Move the cursor, Enter/Space to place
  Mouse        - Click a cell
  C            - Continue with the next round (scores kept)
  R            - Reset scores and start over
  Tab          - Round history
  ?            - Full help
  Q/Ctrl+C     - Quit

The round history lives in memory and is gone when the program exits.

Examples:
  tictactoe play
  tictactoe play --seed 7
  tictactoe play --config ./quiet.yaml --log-file ./ttt.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed for starters and confetti (0 = random based on time)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	var logFile *os.File
	if flagLogFile != "" {
		logFile, err = os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", err)
			os.Exit(1)
		}
		logOut = logFile
	}
	logger, err := newLogger(logOut, "tictactoe")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Continue without storage if it fails - the game still works
	store := openLedger(logger)
	if store == nil {
		fmt.Fprintln(os.Stderr, "Warning: round history unavailable")
	}

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		Store:  store,
		Logger: logger,
		Sound:  tui.NewBell(os.Stdout, cfg.Sound),
	})

	// Close store and log file before potential exit
	closeLedger(store, logger)
	if logFile != nil {
		logFile.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
