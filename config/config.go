// Package config holds the firmware's tunable parameters. Targets embed a
// JSON document and load it at boot; missing values fall back to defaults.
package config

import (
	"encoding/json"
	"errors"
)

// Config controls the mode state machine and diagnostics.
type Config struct {
	// InitialMode is informational: the store always boots in standalone.
	// Accepted for compatibility with board files that spell it out.
	InitialMode string `json:"initial_mode,omitempty"`

	// ActivityPresses presses within ActivityWindowMS count as sustained
	// activity and move standalone to continuous.
	ActivityPresses  uint32 `json:"activity_presses"`
	ActivityWindowMS uint32 `json:"activity_window_ms"`

	// InactivityTimeoutMS without a press moves continuous to sleep.
	InactivityTimeoutMS uint32 `json:"inactivity_timeout_ms"`

	// Debug turns on per-press diagnostic lines.
	Debug bool `json:"debug"`

	// BaudRate of the debug UART on targets that configure one.
	BaudRate uint32 `json:"baud_rate"`
}

var (
	ErrBadInitialMode = errors.New("initial_mode must be standalone")
	ErrBadWindow      = errors.New("activity_window_ms must be shorter than inactivity_timeout_ms")
)

// LoadConfig parses a JSON configuration and applies defaults.
func LoadConfig(jsonData []byte) (*Config, error) {
	var cfg Config

	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the configuration used when a board embeds none.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in missing configuration values
func applyDefaults(cfg *Config) {
	if cfg.InitialMode == "" {
		cfg.InitialMode = "standalone"
	}
	if cfg.ActivityPresses == 0 {
		cfg.ActivityPresses = 5
	}
	if cfg.ActivityWindowMS == 0 {
		cfg.ActivityWindowMS = 2000
	}
	if cfg.InactivityTimeoutMS == 0 {
		cfg.InactivityTimeoutMS = 30000
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 115200
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.InitialMode != "standalone" {
		return ErrBadInitialMode
	}
	if c.ActivityWindowMS >= c.InactivityTimeoutMS {
		return ErrBadWindow
	}
	return nil
}
