package tictactoe

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Renderer reflects board state changes visually.
type Renderer interface {
	// SetCellMark shows m in cell index. Empty clears the cell.
	SetCellMark(index int, m Mark)

	// SetCurrentPlayerIndicator emphasizes whose turn it is.
	SetCurrentPlayerIndicator(m Mark)

	// DisableInput makes the board non-interactive until the next ClearBoard.
	DisableInput()

	// ClearBoard empties all cells and re-enables input.
	ClearBoard()
}

// Presenter plays the transient end-of-round effects.
//
// AnnounceRoundResult starts the effects that must finish before the result
// is shown (the winning-line highlight). When they are done the presenter
// calls Controller.ResultReady with the result's token, and the controller
// answers with ShowResult. Neither call may block.
type Presenter interface {
	AnnounceRoundResult(res Result)
	ShowResult(res Result)
}

// Recorder receives every finished round. Errors are logged and otherwise
// ignored.
type Recorder interface {
	RecordRound(ctx context.Context, rec RoundRecord) error
}

// RandomSource produces uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Token identifies a round within a controller. Tokens increase with every
// new round, so a completion signal carrying an older token is stale.
type Token uint64

// Phase is where the controller is in the round lifecycle.
type Phase uint8

const (
	PhaseIdle      Phase = iota // no round started yet
	PhasePlaying                // accepting moves
	PhaseFinished               // round over, waiting for the presenter
	PhaseAnnounced              // result shown, waiting for continue or reset
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	case PhaseAnnounced:
		return "announced"
	default:
		return "unknown"
	}
}

// Scores holds the match score for both marks.
type Scores struct {
	X int
	O int
}

// Get returns the score for m.
func (s Scores) Get(m Mark) int {
	switch m {
	case X:
		return s.X
	case O:
		return s.O
	default:
		return 0
	}
}

func (s *Scores) add(m Mark) {
	switch m {
	case X:
		s.X++
	case O:
		s.O++
	}
}

// Result is handed to the presenter when a round ends.
type Result struct {
	Token   Token
	MatchID string
	Round   int
	Outcome Outcome
	// Score is the winner's score including this round; zero on a draw.
	Score  int
	Scores Scores
}

// RoundRecord is the ledger entry for a finished round.
type RoundRecord struct {
	MatchID    string
	Round      int
	Starter    Mark
	Outcome    Outcome
	Moves      []Move
	Scores     Scores
	FinishedAt time.Time
}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	MatchID       string
	Round         int
	Token         Token
	Phase         Phase
	Board         Board
	CurrentPlayer Mark
	Starter       Mark
	MoveCount     int
	OccupiedX     Cells
	OccupiedO     Cells
	Outcome       Outcome
	Scores        Scores
}

// Option configures a Controller.
type Option func(*Controller)

// WithRandomSource sets the source used to pick the starting mark.
func WithRandomSource(rng RandomSource) Option {
	return func(c *Controller) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithRecorder sets the ledger that receives finished rounds.
func WithRecorder(rec Recorder) Option {
	return func(c *Controller) {
		c.recorder = rec
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for round records.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// Controller owns a match: it runs rounds, keeps score and drives the
// renderer and presenter. It is not safe for concurrent use; the UI loop
// that owns it serializes every call.
type Controller struct {
	renderer  Renderer
	presenter Presenter
	recorder  Recorder
	rng       RandomSource
	logger    *log.Logger
	now       func() time.Time

	matchID string
	scores  Scores
	round   *Round
	roundNo int
	token   Token
	phase   Phase
	result  Result
}

// NewController creates a controller in PhaseIdle. A nil renderer or
// presenter is replaced with one that does nothing.
func NewController(r Renderer, p Presenter, opts ...Option) *Controller {
	if r == nil {
		r = nopRenderer{}
	}
	if p == nil {
		p = nopPresenter{}
	}

	c := &Controller{
		renderer:  r,
		presenter: p,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // starter choice only
		logger:    log.New(io.Discard),
		now:       time.Now,
		matchID:   uuid.NewString(),
		round:     NewRound(X),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartRound begins a fresh round with a randomly chosen starting mark.
// Scores are kept. Any round in progress is discarded.
func (c *Controller) StartRound() {
	starter := O
	if c.rng.Float64() < 0.5 {
		starter = X
	}

	c.round = NewRound(starter)
	c.roundNo++
	c.token++
	c.phase = PhasePlaying
	c.result = Result{}

	c.renderer.ClearBoard()
	c.renderer.SetCurrentPlayerIndicator(starter)

	c.logger.Debug("round started",
		"match", c.matchID,
		"round", c.roundNo,
		"token", c.token,
		"starter", starter,
	)
}

// PlayMove places the current player's mark on cell i. It reports whether
// the move was accepted; stale or invalid clicks are silently ignored.
func (c *Controller) PlayMove(i int) bool {
	if c.phase != PhasePlaying {
		c.logger.Debug("move ignored", "cell", i, "phase", c.phase)
		return false
	}

	player := c.round.CurrentPlayer()
	if err := c.round.ApplyMove(i, player); err != nil {
		c.logger.Debug("move ignored", "cell", i, "player", player, "err", err)
		return false
	}

	c.renderer.SetCellMark(i, player)

	outcome := c.round.Outcome()
	if !outcome.Terminal() {
		c.renderer.SetCurrentPlayerIndicator(c.round.CurrentPlayer())
		return true
	}

	c.finishRound(outcome)
	return true
}

// finishRound scores the outcome and hands it to the presenter.
func (c *Controller) finishRound(outcome Outcome) {
	score := 0
	if outcome.Status == Won {
		c.scores.add(outcome.Winner)
		score = c.scores.Get(outcome.Winner)
	}

	c.phase = PhaseFinished
	c.result = Result{
		Token:   c.token,
		MatchID: c.matchID,
		Round:   c.roundNo,
		Outcome: outcome,
		Score:   score,
		Scores:  c.scores,
	}

	c.renderer.DisableInput()

	c.logger.Info("round finished",
		"match", c.matchID,
		"round", c.roundNo,
		"outcome", outcome,
		"x", c.scores.X,
		"o", c.scores.O,
	)

	c.record()
	c.presenter.AnnounceRoundResult(c.result)
}

func (c *Controller) record() {
	if c.recorder == nil {
		return
	}

	rec := RoundRecord{
		MatchID:    c.matchID,
		Round:      c.roundNo,
		Starter:    c.round.Starter(),
		Outcome:    c.round.Outcome(),
		Moves:      c.round.Moves(),
		Scores:     c.scores,
		FinishedAt: c.now(),
	}
	if err := c.recorder.RecordRound(context.Background(), rec); err != nil {
		c.logger.Warn("could not record round", "match", c.matchID, "round", c.roundNo, "err", err)
	}
}

// ResultReady is the presenter's signal that the end-of-round effects are
// done. It reports whether the signal was accepted; tokens from earlier
// rounds and repeated signals are ignored.
func (c *Controller) ResultReady(token Token) bool {
	if c.phase != PhaseFinished || token != c.token {
		c.logger.Debug("stale result signal", "token", token, "current", c.token, "phase", c.phase)
		return false
	}

	c.phase = PhaseAnnounced
	c.presenter.ShowResult(c.result)
	return true
}

// ContinueRound starts the next round and keeps the scores.
func (c *Controller) ContinueRound() {
	c.StartRound()
}

// ResetMatch zeroes both scores, opens a new match and starts a round.
func (c *Controller) ResetMatch() {
	c.scores = Scores{}
	c.roundNo = 0
	c.matchID = uuid.NewString()

	c.logger.Debug("match reset", "match", c.matchID)

	c.StartRound()
}

// Score returns m's score in the current match.
func (c *Controller) Score(m Mark) int {
	return c.scores.Get(m)
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Token returns the current round token.
func (c *Controller) Token() Token {
	return c.token
}

// MatchID returns the current match identifier.
func (c *Controller) MatchID() string {
	return c.matchID
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		MatchID:       c.matchID,
		Round:         c.roundNo,
		Token:         c.token,
		Phase:         c.phase,
		Board:         c.round.Board(),
		CurrentPlayer: c.round.CurrentPlayer(),
		Starter:       c.round.Starter(),
		MoveCount:     c.round.MoveCount(),
		OccupiedX:     c.round.Occupied(X),
		OccupiedO:     c.round.Occupied(O),
		Outcome:       c.round.Outcome(),
		Scores:        c.scores,
	}
}

type nopRenderer struct{}

func (nopRenderer) SetCellMark(int, Mark)          {}
func (nopRenderer) SetCurrentPlayerIndicator(Mark) {}
func (nopRenderer) DisableInput()                  {}
func (nopRenderer) ClearBoard()                    {}

type nopPresenter struct{}

func (nopPresenter) AnnounceRoundResult(Result) {}
func (nopPresenter) ShowResult(Result)          {}
