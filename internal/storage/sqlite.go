// Package storage provides the SQLite round ledger behind the history panel.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The ledger only ever lives in memory, so finished rounds last exactly as
// long as the process.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tictactoe/internal/tictactoe"
)

// memoryDSN opens a private in-memory database.
const memoryDSN = ":memory:"

// Store manages the SQLite connection for the round ledger.
// It is safe for concurrent use; every SSH session shares one Store.
type Store struct {
	db *sql.DB
}

// RoundEntry is one finished round as read back from the ledger.
type RoundEntry struct {
	ID         int64
	MatchID    string
	Round      int
	Starter    tictactoe.Mark
	Outcome    tictactoe.Outcome
	Moves      []tictactoe.Move
	Scores     tictactoe.Scores
	FinishedAt time.Time
}

// Tally aggregates the rounds of one match.
type Tally struct {
	MatchID string
	Rounds  int
	WinsX   int
	WinsO   int
	Draws   int
}

// OpenMemory opens an empty in-memory ledger and runs migrations.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL,
			round_no INTEGER NOT NULL,
			starter TEXT NOT NULL,
			status TEXT NOT NULL,
			winner TEXT NOT NULL DEFAULT '',
			line TEXT NOT NULL DEFAULT '',
			moves TEXT NOT NULL,
			score_x INTEGER NOT NULL DEFAULT 0,
			score_o INTEGER NOT NULL DEFAULT 0,
			finished_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_match_id ON rounds(match_id, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRound appends a finished round to the ledger.
func (s *Store) RecordRound(ctx context.Context, rec tictactoe.RoundRecord) error {
	if !rec.Outcome.Terminal() {
		return fmt.Errorf("storage: round %d of match %s is still in progress", rec.Round, rec.MatchID)
	}

	var winner, line string
	if rec.Outcome.Status == tictactoe.Won {
		winner = rec.Outcome.Winner.String()
		line = formatCells(rec.Outcome.Line[:])
	}

	cells := make([]int, len(rec.Moves))
	for i, m := range rec.Moves {
		cells[i] = m.Index
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds
		 (match_id, round_no, starter, status, winner, line, moves, score_x, score_o, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.Round,
		rec.Starter.String(),
		rec.Outcome.Status.String(),
		winner,
		line,
		formatCells(cells),
		rec.Scores.X,
		rec.Scores.O,
		rec.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save round: %w", err)
	}
	return nil
}

// Ensure Store implements the controller's Recorder
var _ tictactoe.Recorder = (*Store)(nil)

// RecentRounds retrieves the last rounds of a match, newest first.
func (s *Store) RecentRounds(ctx context.Context, matchID string, limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, match_id, round_no, starter, status, winner, line, moves, score_x, score_o, finished_at
		 FROM rounds
		 WHERE match_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		matchID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var (
			e                       RoundEntry
			starter, status, winner string
			line, moves             string
			finishedAt              int64
		)
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Round, &starter, &status, &winner, &line, &moves,
			&e.Scores.X, &e.Scores.O, &finishedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if err := e.decode(starter, status, winner, line, moves); err != nil {
			return nil, fmt.Errorf("storage: round %d: %w", e.ID, err)
		}
		e.FinishedAt = time.UnixMilli(finishedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Tally counts wins and draws for a match. An unknown match yields zeros.
func (s *Store) Tally(ctx context.Context, matchID string) (Tally, error) {
	t := Tally{MatchID: matchID}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = 'X' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 'O' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status = 'draw' THEN 1 ELSE 0 END), 0)
		 FROM rounds WHERE match_id = ?`,
		matchID,
	).Scan(&t.Rounds, &t.WinsX, &t.WinsO, &t.Draws)
	if err != nil {
		return t, fmt.Errorf("storage: cannot tally match: %w", err)
	}

	return t, nil
}

// TotalRounds counts every round in the ledger across all matches.
func (s *Store) TotalRounds(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rounds").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count rounds: %w", err)
	}
	return n, nil
}

// decode rebuilds the typed fields from their stored text form.
// Marks in the move list alternate from the starter.
func (e *RoundEntry) decode(starter, status, winner, line, moves string) error {
	var err error
	if e.Starter, err = parseMark(starter); err != nil {
		return err
	}

	switch status {
	case tictactoe.Won.String():
		e.Outcome.Status = tictactoe.Won
		if e.Outcome.Winner, err = parseMark(winner); err != nil {
			return err
		}
		cells, err := parseCells(line)
		if err != nil {
			return err
		}
		if len(cells) != len(e.Outcome.Line) {
			return fmt.Errorf("bad winning line %q", line)
		}
		copy(e.Outcome.Line[:], cells)
	case tictactoe.Drawn.String():
		e.Outcome.Status = tictactoe.Drawn
	default:
		return fmt.Errorf("unknown status %q", status)
	}

	cells, err := parseCells(moves)
	if err != nil {
		return err
	}
	mark := e.Starter
	e.Moves = make([]tictactoe.Move, len(cells))
	for i, c := range cells {
		e.Moves[i] = tictactoe.Move{Index: c, Mark: mark}
		mark = mark.Other()
	}
	return nil
}

func parseMark(s string) (tictactoe.Mark, error) {
	switch s {
	case tictactoe.X.String():
		return tictactoe.X, nil
	case tictactoe.O.String():
		return tictactoe.O, nil
	default:
		return tictactoe.Empty, fmt.Errorf("unknown mark %q", s)
	}
}

func formatCells(cells []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

func parseCells(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	cells := make([]int, len(parts))
	for i, p := range parts {
		c, err := strconv.Atoi(p)
		if err != nil || !tictactoe.ValidIndex(c) {
			return nil, errors.Join(fmt.Errorf("bad cell %q", p), err)
		}
		cells[i] = c
	}
	return cells, nil
}
