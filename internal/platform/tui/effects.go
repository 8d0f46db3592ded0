package tui

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
	"github.com/vovakirdan/tui-tictactoe/internal/tictactoe"
)

// Result dialog size at full scale.
const (
	modalWidth  = 30
	modalHeight = 8
)

// effects plays the end-of-round sequence: the winning line flashes, then
// the controller is told the result may be shown, then the dialog grows in
// and confetti falls. All timing is counted in ticks of the UI loop.
type effects struct {
	rt    core.RuntimeConfig
	cfg   config.Config
	sound Sounder
	rng   *rand.Rand

	// highlight phase, between AnnounceRoundResult and ResultReady
	pending bool
	token   tictactoe.Token
	line    tictactoe.Line
	hasLine bool
	elapsed int
	length  int

	// result phase, after ShowResult
	shown     bool
	result    tictactoe.Result
	modalTick int
	modalLen  int
	burst     *confetti

	width, height int
}

var _ tictactoe.Presenter = (*effects)(nil)

func newEffects(rt core.RuntimeConfig, cfg config.Config, sound Sounder) *effects {
	if sound == nil {
		sound = silent{}
	}
	return &effects{
		rt:     rt,
		cfg:    cfg,
		sound:  sound,
		rng:    rand.New(rand.NewSource(rt.Seed + 1)), //nolint:gosec // visual randomness only
		width:  rt.ScreenW,
		height: rt.ScreenH,
	}
}

// AnnounceRoundResult starts the winning-line flash. A draw has nothing to
// flash, so its result is released on the next tick.
func (e *effects) AnnounceRoundResult(res tictactoe.Result) {
	e.dismiss()
	e.pending = true
	e.token = res.Token
	e.result = res
	if res.Outcome.Status == tictactoe.Won {
		e.hasLine = true
		e.line = res.Outcome.Line
		e.length = e.rt.Ticks(e.cfg.Effects.HighlightMS)
	}
}

// ShowResult rings the win sound, opens the dialog and fires confetti on a win.
func (e *effects) ShowResult(res tictactoe.Result) {
	e.pending = false
	e.shown = true
	e.result = res
	e.modalTick = 0
	e.modalLen = e.rt.Ticks(e.cfg.Effects.ModalMS)

	if res.Outcome.Status != tictactoe.Won {
		return
	}
	e.sound.Ring(CueWin)
	if e.cfg.Confetti.Enabled && e.cfg.Confetti.Particles > 0 {
		ticks := e.rt.Ticks(e.cfg.Confetti.DurationMS)
		e.burst = newConfetti(e.rng, e.cfg.Confetti, ticks, float64(e.width)/2, float64(e.height)*0.6)
	}
}

// step advances every running effect by one tick. It returns the token to
// hand to Controller.ResultReady once the highlight has run its course.
func (e *effects) step() (tictactoe.Token, bool) {
	if e.burst != nil && !e.burst.step() {
		e.burst = nil
	}
	if e.shown && e.modalTick < e.modalLen {
		e.modalTick++
	}

	if !e.pending {
		return 0, false
	}
	e.elapsed++
	if e.elapsed < e.length {
		return 0, false
	}
	e.pending = false
	return e.token, true
}

// dismiss drops every effect, for a new round.
func (e *effects) dismiss() {
	*e = effects{
		rt:     e.rt,
		cfg:    e.cfg,
		sound:  e.sound,
		rng:    e.rng,
		width:  e.width,
		height: e.height,
	}
}

func (e *effects) resize(w, h int) {
	e.width, e.height = w, h
}

// lineState reports the winning line and whether it is lit this tick.
// The line blinks while the highlight runs and stays lit afterwards.
func (e *effects) lineState() (line tictactoe.Line, show, lit bool) {
	if !e.hasLine {
		return line, false, false
	}
	if !e.pending {
		return e.line, true, true
	}
	flash := core.Max(1, e.rt.Ticks(e.cfg.Effects.FlashMS))
	return e.line, true, (e.elapsed/flash)%2 == 0
}

// highlighting reports whether the flash is still running.
func (e *effects) highlighting() bool {
	return e.pending
}

// modalScale is the dialog size from 0 to 1 on an ease-in curve.
func (e *effects) modalScale() float64 {
	if !e.shown {
		return 0
	}
	if e.modalLen == 0 {
		return 1
	}
	return core.EaseInQuart(float64(e.modalTick) / float64(e.modalLen))
}

// draw paints confetti and then the result dialog centered on (cx, cy).
func (e *effects) draw(s *core.Screen, cx, cy int) {
	if e.burst != nil {
		e.burst.draw(s)
	}
	if !e.shown {
		return
	}

	full := core.NewRect(cx-modalWidth/2, cy-modalHeight/2, modalWidth, modalHeight)
	r := full.Scale(e.modalScale())
	if r.W < 2 || r.H < 2 {
		s.SetColored(r.X, r.Y, '·', core.ColorBrightWhite)
		return
	}

	s.DrawRect(r, ' ', core.ColorDefault)
	s.DrawBox(r, core.ColorBrightWhite)
	if r != full {
		return
	}

	title, score, color := resultText(e.result)
	s.DrawText(centerX(r, title), r.Y+2, title, color)
	s.DrawText(centerX(r, score), r.Y+4, score, core.ColorBrightWhite)
	hint := "c continue · r reset"
	s.DrawText(centerX(r, hint), r.Bottom()-2, hint, core.ColorGray)
}

// resultText returns the dialog headline, score line and headline color.
func resultText(res tictactoe.Result) (title, score string, color core.Color) {
	if res.Outcome.Status == tictactoe.Drawn {
		return "IT'S A DRAW!", "-", core.ColorBrightYellow
	}
	w := res.Outcome.Winner
	return fmt.Sprintf("PLAYER %s WON", w), fmt.Sprintf("SCORE %d", res.Score), markColor(w)
}

func centerX(r core.Rect, text string) int {
	return r.X + (r.W-len([]rune(text)))/2
}
