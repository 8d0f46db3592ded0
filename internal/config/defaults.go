package config

import (
	_ "embed"
)

//go:embed defaults/tictactoe.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when neither a file
// nor the embedded default can be parsed.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			TickRate: 30,
		},
		Effects: EffectsConfig{
			HighlightMS: 1000,
			FlashMS:     150,
			ModalMS:     400,
		},
		Confetti: ConfettiConfig{
			Enabled:    true,
			Particles:  100,
			Spread:     70,
			Gravity:    0.04,
			DurationMS: 2500,
		},
		Sound: SoundConfig{
			Enabled: true,
			Click:   true,
			Mark:    true,
			Win:     true,
		},
		History: HistoryConfig{
			Limit: 10,
		},
	}
}
