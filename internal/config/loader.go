package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the user and local directories.
const FileName = "tictactoe.yaml"

// Load reads the configuration, applies environment overrides and validates it.
// Search order: customPath -> ~/.tictactoe/config.yaml -> ./configs/tictactoe.yaml
// -> embedded default -> hardcoded default.
// Files only need the keys they change; the rest keep their defaults.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("config: read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			candidate := Default()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns ~/.tictactoe/config.yaml, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tictactoe", "config.yaml")
}

// Validate rejects values the front end cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Display.TickRate < 1 || c.Display.TickRate > 120 {
		errs = append(errs, fmt.Errorf("display.tick_rate must be in [1, 120], got %d", c.Display.TickRate))
	}
	if c.Effects.HighlightMS < 0 || c.Effects.ModalMS < 0 {
		errs = append(errs, errors.New("effects durations must not be negative"))
	}
	if c.Effects.FlashMS <= 0 {
		errs = append(errs, fmt.Errorf("effects.flash_ms must be positive, got %d", c.Effects.FlashMS))
	}
	if c.Confetti.Particles < 0 || c.Confetti.Particles > 1000 {
		errs = append(errs, fmt.Errorf("confetti.particles must be in [0, 1000], got %d", c.Confetti.Particles))
	}
	if c.Confetti.Spread < 0 || c.Confetti.Spread > 360 {
		errs = append(errs, fmt.Errorf("confetti.spread must be in [0, 360], got %v", c.Confetti.Spread))
	}
	if c.Confetti.DurationMS < 0 {
		errs = append(errs, fmt.Errorf("confetti.duration_ms must not be negative, got %d", c.Confetti.DurationMS))
	}
	if c.History.Limit < 1 || c.History.Limit > 100 {
		errs = append(errs, fmt.Errorf("history.limit must be in [1, 100], got %d", c.History.Limit))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// ClickOn reports whether start, continue and reset ring the bell.
func (s SoundConfig) ClickOn() bool { return s.Enabled && s.Click }

// MarkOn reports whether placing a mark rings the bell.
func (s SoundConfig) MarkOn() bool { return s.Enabled && s.Mark }

// WinOn reports whether a win rings the bell.
func (s SoundConfig) WinOn() bool { return s.Enabled && s.Win }
