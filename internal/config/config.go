// Package config loads butterfly.toml, the project level configuration of
// the instrumentation pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/mouse-blink/butterfly/internal/domain"
	"github.com/mouse-blink/butterfly/internal/domain/tracking"
	m "github.com/mouse-blink/butterfly/internal/model"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "butterfly.toml"

// Config mirrors butterfly.toml.
type Config struct {
	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`

	// Enabled switches the pipeline on. Unset means NODE_ENV=development.
	Enabled *bool `toml:"enabled"`

	Overlay OverlayConfig `toml:"overlay"`
	Track   TrackConfig   `toml:"track"`
	Runtime RuntimeConfig `toml:"runtime"`
	Logging LoggingConfig `toml:"logging"`
	Cache   CacheConfig   `toml:"cache"`
	Reports ReportsConfig `toml:"reports"`
}

// OverlayConfig is the [overlay] table.
type OverlayConfig struct {
	Theme          string `toml:"theme" validate:"required"`
	ShowStatus     bool   `toml:"show_status"`
	AnimationSpeed int    `toml:"animation_speed" validate:"gte=0"`
	MaxButterflies int    `toml:"max_butterflies" validate:"gte=0"`
}

// TrackConfig is the [track] table.
type TrackConfig struct {
	Effect         bool `toml:"effect"`
	State          bool `toml:"state"`
	FirstMatchOnly bool `toml:"first_match_only"`
}

// RuntimeConfig is the [runtime] table.
type RuntimeConfig struct {
	Module        string `toml:"module" validate:"required"`
	OverlayImport string `toml:"overlay_import" validate:"required"`
}

// LoggingConfig is the [logging] table.
type LoggingConfig struct {
	Level  string `toml:"level" validate:"oneof=trace debug info warn error"`
	Format string `toml:"format" validate:"oneof=console json"`
}

// CacheConfig is the [cache] table.
type CacheConfig struct {
	Dir     string `toml:"dir" validate:"required"`
	Enabled bool   `toml:"enabled"`
}

// ReportsConfig is the [reports] table.
type ReportsConfig struct {
	Dir string `toml:"dir" validate:"required"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Overlay: OverlayConfig{
			Theme:          "default",
			ShowStatus:     false,
			AnimationSpeed: 1000,
			MaxButterflies: 10,
		},
		Track: TrackConfig{
			Effect: true,
			State:  true,
		},
		Runtime: RuntimeConfig{
			Module:        tracking.DefaultRuntimeModule,
			OverlayImport: domain.DefaultOverlayImport,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Cache: CacheConfig{
			Dir:     ".butterfly-cache",
			Enabled: true,
		},
		Reports: ReportsConfig{Dir: ".butterfly-reports"},
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}

		dir = parent
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Resolve loads explicit when set, otherwise the nearest FileName above
// startDir, otherwise the defaults.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}

	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}

	if !ok {
		return Default(), nil
	}

	return Load(path)
}

// Validate checks the struct tags of every table.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// IsEnabled reports whether the pipeline is active. An explicit value wins;
// otherwise nodeEnv must be "development".
func (c Config) IsEnabled(nodeEnv string) bool {
	if c.Enabled != nil {
		return *c.Enabled
	}

	return nodeEnv == "development"
}

// ForceEnable overrides the enabled switch.
func (c *Config) ForceEnable() {
	enabled := true
	c.Enabled = &enabled
}

// PipelineOptions converts the configuration to pipeline options.
func (c Config) PipelineOptions(nodeEnv string) m.PipelineOptions {
	return m.PipelineOptions{
		Enabled:       c.IsEnabled(nodeEnv),
		OverlayImport: c.Runtime.OverlayImport,
		Overlay:       c.OverlayConfig(),
		Transform: m.TransformOptions{
			TrackState:     c.Track.State,
			TrackEffect:    c.Track.Effect,
			RuntimeModule:  c.Runtime.Module,
			FirstMatchOnly: c.Track.FirstMatchOnly,
		},
	}
}

// OverlayConfig returns the overlay bootstrap settings.
func (c Config) OverlayConfig() m.OverlayConfig {
	return m.OverlayConfig{
		Theme:          c.Overlay.Theme,
		ShowStatus:     c.Overlay.ShowStatus,
		AnimationSpeed: c.Overlay.AnimationSpeed,
		MaxButterflies: c.Overlay.MaxButterflies,
		TrackEffect:    c.Track.Effect,
		TrackState:     c.Track.State,
	}
}
