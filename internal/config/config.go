// Package config provides YAML-based settings for the tic-tac-toe front end:
// effect timings, confetti, sounds and the history panel. Values come from a
// YAML file (or the embedded default) and can be overridden by TICTACTOE_*
// environment variables.
package config

// Config contains all tunable settings for a play session.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Effects  EffectsConfig  `yaml:"effects"`
	Confetti ConfettiConfig `yaml:"confetti"`
	Sound    SoundConfig    `yaml:"sound"`
	History  HistoryConfig  `yaml:"history"`
}

// DisplayConfig defines frame pacing.
type DisplayConfig struct {
	TickRate int `yaml:"tick_rate" env:"TICTACTOE_TICK_RATE"`
}

// EffectsConfig defines how long each end-of-round effect runs, in milliseconds.
type EffectsConfig struct {
	HighlightMS int `yaml:"highlight_ms" env:"TICTACTOE_HIGHLIGHT_MS"`
	FlashMS     int `yaml:"flash_ms" env:"TICTACTOE_FLASH_MS"`
	ModalMS     int `yaml:"modal_ms" env:"TICTACTOE_MODAL_MS"`
}

// ConfettiConfig defines the confetti burst shown after a win.
type ConfettiConfig struct {
	Enabled    bool    `yaml:"enabled" env:"TICTACTOE_CONFETTI"`
	Particles  int     `yaml:"particles" env:"TICTACTOE_CONFETTI_PARTICLES"`
	Spread     float64 `yaml:"spread" env:"TICTACTOE_CONFETTI_SPREAD"` // degrees around straight up
	Gravity    float64 `yaml:"gravity"`
	DurationMS int     `yaml:"duration_ms" env:"TICTACTOE_CONFETTI_MS"`
}

// SoundConfig toggles the terminal bell for each sound cue.
type SoundConfig struct {
	Enabled bool `yaml:"enabled" env:"TICTACTOE_SOUND"`
	Click   bool `yaml:"click"`
	Mark    bool `yaml:"mark"`
	Win     bool `yaml:"win"`
}

// HistoryConfig defines the round history panel.
type HistoryConfig struct {
	Limit int `yaml:"limit" env:"TICTACTOE_HISTORY_LIMIT"`
}
