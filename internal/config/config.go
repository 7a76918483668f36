// Package config loads bow's optional configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/bow/internal/engine"
	"github.com/Dicklesworthstone/bow/internal/termcap"
	"github.com/Dicklesworthstone/bow/internal/util"
)

// Config is the full bow configuration.
type Config struct {
	// Color is one of "auto", "always" or "never".
	Color string `toml:"color" yaml:"color"`

	// Width overrides the detected terminal width when positive.
	Width int `toml:"width" yaml:"width"`

	// Animation controls the layout of the live drawing region.
	Animation AnimationConfig `toml:"animation" yaml:"animation"`
}

// AnimationConfig holds the drawing geometry.
type AnimationConfig struct {
	// Rows is the number of trail rows (and the region height).
	Rows int `toml:"rows" yaml:"rows"`

	// MarginWidth is the width reserved for the scoreboard.
	MarginWidth int `toml:"margin_width" yaml:"margin_width"`

	// OverlayWidth is the width reserved for the figure.
	OverlayWidth int `toml:"overlay_width" yaml:"overlay_width"`

	// WidthRatio is the share of the terminal the animation may use.
	WidthRatio float64 `toml:"width_ratio" yaml:"width_ratio"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Color: termcap.ColorAuto,
		Animation: AnimationConfig{
			Rows:         engine.DefaultRows,
			MarginWidth:  engine.DefaultMarginWidth,
			OverlayWidth: engine.DefaultOverlayWidth,
			WidthRatio:   engine.DefaultWidthRatio,
		},
	}
}

// DefaultPath returns the config file looked up when --config is not given.
func DefaultPath() string {
	return filepath.Join(util.ConfigDir(), "config.toml")
}

// Load reads the file at path on top of the defaults. TOML is assumed unless
// the extension is .yaml or .yml. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	path = util.ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cfg for values the engine cannot draw with.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if !termcap.ValidColorMode(cfg.Color) {
		return fmt.Errorf("color must be one of auto, always, never, got %q", cfg.Color)
	}
	if cfg.Width < 0 {
		return fmt.Errorf("width must be non-negative, got %d", cfg.Width)
	}
	if err := validateAnimation(&cfg.Animation); err != nil {
		return fmt.Errorf("animation: %w", err)
	}
	return nil
}

func validateAnimation(cfg *AnimationConfig) error {
	if cfg.Rows < engine.MinRows {
		return fmt.Errorf("rows must be at least %d, got %d", engine.MinRows, cfg.Rows)
	}
	if cfg.MarginWidth < 1 {
		return fmt.Errorf("margin_width must be at least 1, got %d", cfg.MarginWidth)
	}
	if cfg.OverlayWidth < 1 {
		return fmt.Errorf("overlay_width must be at least 1, got %d", cfg.OverlayWidth)
	}
	if cfg.WidthRatio <= 0 || cfg.WidthRatio > 1 {
		return fmt.Errorf("width_ratio must be in (0, 1], got %f", cfg.WidthRatio)
	}
	return nil
}

// Geometry converts the animation settings for the engine.
func (c *Config) Geometry() engine.Geometry {
	return engine.Geometry{
		MarginWidth:  c.Animation.MarginWidth,
		OverlayWidth: c.Animation.OverlayWidth,
		Rows:         c.Animation.Rows,
		WidthRatio:   c.Animation.WidthRatio,
	}
}
