package tui

import (
	"io"

	"github.com/vovakirdan/tui-tictactoe/internal/config"
)

// Cue names a sound event.
type Cue uint8

const (
	CueClick Cue = iota // start, continue, reset
	CueMark             // a mark was placed
	CueWin              // a round was won
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueClick:
		return "click"
	case CueMark:
		return "mark"
	case CueWin:
		return "win"
	default:
		return "unknown"
	}
}

// Sounder plays sound cues.
type Sounder interface {
	Ring(c Cue)
}

// bellByte is written with a single Write call. The renderer also flushes
// each frame with one Write, so the byte lands between frames, never inside
// an escape sequence.
var bellByte = []byte{'\a'}

// bell rings the terminal bell for every enabled cue. A terminal has one
// sound, so the cues differ only in whether they ring at all.
type bell struct {
	w   io.Writer
	cfg config.SoundConfig
}

// NewBell returns a Sounder that writes BEL to w.
func NewBell(w io.Writer, cfg config.SoundConfig) Sounder {
	if w == nil {
		return silent{}
	}
	return bell{w: w, cfg: cfg}
}

func (b bell) Ring(c Cue) {
	if !b.enabled(c) {
		return
	}
	//nolint:errcheck // a missed bell is not worth surfacing
	b.w.Write(bellByte)
}

func (b bell) enabled(c Cue) bool {
	switch c {
	case CueClick:
		return b.cfg.ClickOn()
	case CueMark:
		return b.cfg.MarkOn()
	case CueWin:
		return b.cfg.WinOn()
	default:
		return false
	}
}

type silent struct{}

func (silent) Ring(Cue) {}
