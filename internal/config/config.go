// Package config holds the persistent settings of the viewer
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Color is an RGB triple
type Color [3]uint8

// Config holds the viewer settings. It is read from a YAML file; fields
// missing from the file keep their defaults.
type Config struct {
	// Editing
	CatchRadius  float64  `yaml:"catch_radius"`
	DefaultClass int      `yaml:"default_class"`
	ClassNames   []string `yaml:"class_names,omitempty"`
	AutoSave     bool     `yaml:"auto_save"`
	WatchLabels  bool     `yaml:"watch_labels"`

	// Navigation
	WrapFolder bool `yaml:"wrap_folder"`
	KeepView   bool `yaml:"keep_view"`
	MaxCache   int  `yaml:"max_cache"`

	// Display
	AccentColor     Color `yaml:"accent_color,flow"`
	BackgroundColor Color `yaml:"background_color,flow"`
	ShowCrosshair   bool  `yaml:"show_crosshair"`
	MaxTextureSize  int   `yaml:"max_texture_size"`
	WindowWidth     int   `yaml:"window_width"`
	WindowHeight    int   `yaml:"window_height"`

	LogLevel string `yaml:"log_level"`
}

// Default returns a Config populated with standard defaults
func Default() *Config {
	return &Config{
		CatchRadius:     20,
		DefaultClass:    0,
		AutoSave:        true,
		WatchLabels:     true,
		WrapFolder:      true,
		KeepView:        false,
		MaxCache:        30,
		AccentColor:     Color{255, 0, 75},
		BackgroundColor: Color{51, 51, 51},
		MaxTextureSize:  8192,
		WindowWidth:     1400,
		WindowHeight:    900,
		LogLevel:        "info",
	}
}

// DefaultPath returns the config file location below the user's config directory
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "golabel", "config.yaml")
}

// Validate clamps values to safe ranges. An unknown log level is reset to
// "info" and reported.
func (c *Config) Validate() error {
	d := Default()
	if c.CatchRadius <= 0 {
		c.CatchRadius = d.CatchRadius
	}
	if c.DefaultClass < 0 {
		c.DefaultClass = 0
	}
	if c.MaxCache < 0 {
		c.MaxCache = 0
	}
	if c.MaxTextureSize < 256 {
		c.MaxTextureSize = d.MaxTextureSize
	}
	if c.WindowWidth < 320 {
		c.WindowWidth = d.WindowWidth
	}
	if c.WindowHeight < 240 {
		c.WindowHeight = d.WindowHeight
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		c.LogLevel = d.LogLevel
		return err
	}
	return nil
}

// ClassName returns the configured name of a class, or its number
func (c *Config) ClassName(classID int) string {
	if classID >= 0 && classID < len(c.ClassNames) && c.ClassNames[classID] != "" {
		return c.ClassNames[classID]
	}
	return strconv.Itoa(classID)
}

// Level returns the configured log level
func (c *Config) Level() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// ParseLevel parses debug, info, warn or error. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Load reads the configuration from path. A missing file yields the
// defaults. On a parse error the defaults are returned with the error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory. An
// invalid log level is reported and nothing is written.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
