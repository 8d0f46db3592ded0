package tui

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-tictactoe/internal/config"
	"github.com/vovakirdan/tui-tictactoe/internal/core"
)

// Terminal cells are about twice as tall as they are wide.
const cellAspect = 2.0

var confettiGlyphs = []rune{'*', '•', '◆', '▪', '+'}

type particle struct {
	x, y   float64
	vx, vy float64
	glyph  rune
	color  core.Color
}

// confetti is a burst of particles fired upward from a point, fanning out
// over a configured spread and falling back under gravity.
type confetti struct {
	particles []particle
	gravity   float64
	ticksLeft int
}

// newConfetti fires cfg.Particles particles from (ox, oy).
func newConfetti(rng *rand.Rand, cfg config.ConfettiConfig, ticks int, ox, oy float64) *confetti {
	c := &confetti{
		particles: make([]particle, cfg.Particles),
		gravity:   cfg.Gravity,
		ticksLeft: ticks,
	}

	spread := cfg.Spread * math.Pi / 180
	for i := range c.particles {
		angle := math.Pi/2 + (rng.Float64()-0.5)*spread
		speed := 0.4 + rng.Float64()*0.6
		c.particles[i] = particle{
			x:     ox,
			y:     oy,
			vx:    math.Cos(angle) * speed * cellAspect,
			vy:    -math.Sin(angle) * speed,
			glyph: confettiGlyphs[rng.Intn(len(confettiGlyphs))],
			color: core.ConfettiColors[rng.Intn(len(core.ConfettiColors))],
		}
	}
	return c
}

// step advances the burst by one tick and reports whether it is still alive.
func (c *confetti) step() bool {
	if c.ticksLeft <= 0 {
		return false
	}
	c.ticksLeft--
	for i := range c.particles {
		p := &c.particles[i]
		p.x += p.vx
		p.y += p.vy
		p.vy += c.gravity
		p.vx *= 0.97
	}
	return c.ticksLeft > 0
}

func (c *confetti) draw(s *core.Screen) {
	for _, p := range c.particles {
		s.SetColored(int(math.Round(p.x)), int(math.Round(p.y)), p.glyph, p.color)
	}
}
