// Package config handles hdate configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/hdate/internal/holidays"
	"github.com/aidanlsb/hdate/internal/normalize"
	"github.com/aidanlsb/hdate/internal/resolver"
)

// Config represents the hdate configuration.
type Config struct {
	// Region is the holiday region code (defaults to IN).
	Region string `toml:"region"`

	// FallbackToNow returns the current time instead of failing when nothing
	// resolves.
	FallbackToNow bool `toml:"fallback_to_now"`

	// Prefer forces a direction ("past" or "future"). Empty lets the text decide.
	Prefer string `toml:"prefer"`

	// Strict disables the free-text search fallback.
	Strict bool `toml:"strict"`

	// TimezoneAware keeps the zone the parser produced.
	TimezoneAware bool `toml:"timezone_aware"`

	// HolidaysFile is an extra YAML dataset layered over the built-in one.
	// Relative paths are resolved against the config file's directory.
	HolidaysFile string `toml:"holidays_file"`

	// Log controls diagnostic output on stderr.
	Log LogConfig `toml:"log"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`

	// Terms are extra informal-term rewrites.
	Terms []normalize.Rule `toml:"terms"`

	path string
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// RegionOrDefault returns the configured region, upper-cased.
func (c *Config) RegionOrDefault() string {
	if r := strings.TrimSpace(c.Region); r != "" {
		return strings.ToUpper(r)
	}
	return holidays.DefaultRegion
}

// PreferredDirection returns the configured direction, or nil when the text
// should decide.
func (c *Config) PreferredDirection() (*resolver.Direction, error) {
	if strings.TrimSpace(c.Prefer) == "" {
		return nil, nil
	}
	d, err := resolver.ParseDirection(c.Prefer)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Override returns the settings override implied by the config. Boolean keys
// only override when set to true.
func (c *Config) Override() (resolver.SettingsOverride, error) {
	var o resolver.SettingsOverride
	dir, err := c.PreferredDirection()
	if err != nil {
		return o, err
	}
	o.PreferredDirection = dir
	if c.Strict {
		strict := true
		o.Strict = &strict
	}
	if c.TimezoneAware {
		aware := true
		o.TimezoneAware = &aware
	}
	return o, nil
}

// Validate checks values that TOML decoding cannot.
func (c *Config) Validate() error {
	if _, err := c.PreferredDirection(); err != nil {
		return fmt.Errorf("prefer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: invalid level %q (use debug, info, warn or error)", c.Log.Level)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: invalid format %q (use text or json)", c.Log.Format)
	}
	if _, err := normalize.NewTable(c.Terms); err != nil {
		return fmt.Errorf("terms: %w", err)
	}
	return nil
}

// HolidaysPath resolves HolidaysFile. Relative paths are taken relative to the
// config file's directory; "~/" expands to the home directory.
func (c *Config) HolidaysPath() string {
	p := strings.TrimSpace(c.HolidaysFile)
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) || c.path == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// Calendar returns the built-in holiday calendar with HolidaysFile layered
// over it.
func (c *Config) Calendar() (*holidays.Calendar, error) {
	cal, err := holidays.Builtin()
	if err != nil {
		return nil, err
	}
	if p := c.HolidaysPath(); p != "" {
		extra, err := holidays.LoadFile(p)
		if err != nil {
			return nil, err
		}
		cal = cal.Merge(extra)
	}
	return cal, nil
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadOrDefault(DefaultPath())
}

// LoadOrDefault loads path, or returns an empty config when it doesn't exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	config.path = path
	return &config, nil
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/hdate/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if xdgPath, err := XDGPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "hdate", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/hdate/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hdate", "config.toml"), nil
}
