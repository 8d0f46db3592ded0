package core

// RuntimeConfig contains configuration passed to the board view at startup.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Effect ticks per second (default 30)
	Seed     int64 // RNG seed for the starting player and confetti
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Ticks converts a duration in milliseconds to a tick count at this rate.
// Any positive duration lasts at least one tick.
func (c RuntimeConfig) Ticks(ms int) int {
	if ms <= 0 {
		return 0
	}
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultConfig().TickRate
	}
	return Max(1, ms*rate/1000)
}
