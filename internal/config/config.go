// Package config loads pomoclock's startup options from an optional YAML
// file and merges command-line overrides on top. It never stores timer
// state: every run starts from these options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/pomoclock/internal/domain"
	"github.com/hammamikhairi/pomoclock/internal/logger"
)

const (
	appName        = "pomoclock"
	configFileName = "config.yaml"
	defaultToneHz  = 880
)

// Config holds the startup options.
type Config struct {
	LogLevel       string  `yaml:"log_level"`
	LogFile        string  `yaml:"log_file"`
	Sound          string  `yaml:"sound"`
	ToneHz         float64 `yaml:"tone_hz"`
	Volume         float64 `yaml:"volume"`
	NoSound        bool    `yaml:"no_sound"`
	SessionMinutes int     `yaml:"session_minutes"`
	BreakMinutes   int     `yaml:"break_minutes"`
}

// Default returns the options used when no file or flag says otherwise.
func Default() Config {
	return Config{
		LogLevel:       "normal",
		LogFile:        filepath.Join(".pomoclock", "pomoclock.log"),
		ToneHz:         defaultToneHz,
		Volume:         0.8,
		SessionMinutes: domain.DefaultSessionMinutes,
		BreakMinutes:   domain.DefaultBreakMinutes,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pomoclock/config.yaml, or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config yaml %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Overrides are command-line values. Zero values leave the loaded option
// untouched.
type Overrides struct {
	LogLevel       string
	LogFile        string
	Sound          string
	ToneHz         float64
	Volume         float64
	NoSound        bool
	SessionMinutes int
	BreakMinutes   int
}

// Apply merges o into c and validates the result.
func (c Config) Apply(o Overrides) (Config, error) {
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
	if o.Sound != "" {
		c.Sound = o.Sound
	}
	if o.ToneHz > 0 {
		c.ToneHz = o.ToneHz
	}
	if o.Volume > 0 {
		c.Volume = o.Volume
	}
	if o.NoSound {
		c.NoSound = true
	}
	if o.SessionMinutes != 0 {
		c.SessionMinutes = o.SessionMinutes
	}
	if o.BreakMinutes != 0 {
		c.BreakMinutes = o.BreakMinutes
	}
	return c, c.Validate()
}

// Validate reports the first invalid option.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.ToneHz < 20 || c.ToneHz > 20000 {
		return fmt.Errorf("tone_hz: %v is outside 20-20000", c.ToneHz)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume: %v is outside 0-1", c.Volume)
	}
	if !domain.ValidLength(c.SessionMinutes) {
		return fmt.Errorf("session_minutes: %d is outside %d-%d", c.SessionMinutes, domain.MinLength, domain.MaxLength)
	}
	if !domain.ValidLength(c.BreakMinutes) {
		return fmt.Errorf("break_minutes: %d is outside %d-%d", c.BreakMinutes, domain.MinLength, domain.MaxLength)
	}
	return nil
}

// TimerConfig returns the starting session and break lengths.
func (c Config) TimerConfig() domain.TimerConfig {
	return domain.TimerConfig{
		SessionMinutes: c.SessionMinutes,
		BreakMinutes:   c.BreakMinutes,
	}
}
