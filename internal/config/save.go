package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/hdate/internal/atomicfile"
	"github.com/aidanlsb/hdate/internal/normalize"
)

type persistedConfig struct {
	Region        *string              `toml:"region,omitempty"`
	FallbackToNow *bool                `toml:"fallback_to_now,omitempty"`
	Prefer        *string              `toml:"prefer,omitempty"`
	Strict        *bool                `toml:"strict,omitempty"`
	TimezoneAware *bool                `toml:"timezone_aware,omitempty"`
	HolidaysFile  *string              `toml:"holidays_file,omitempty"`
	Log           *persistedLogConfig  `toml:"log,omitempty"`
	UI            *persistedUISettings `toml:"ui,omitempty"`
	Terms         []normalize.Rule     `toml:"terms,omitempty"`
}

type persistedLogConfig struct {
	Level  *string `toml:"level,omitempty"`
	Format *string `toml:"format,omitempty"`
}

type persistedUISettings struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func truePtr(value bool) *bool {
	if !value {
		return nil
	}
	return &value
}

// Marshal encodes the config as TOML, omitting unset keys.
func Marshal(cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		Region:        nonEmptyPtr(cfg.Region),
		FallbackToNow: truePtr(cfg.FallbackToNow),
		Prefer:        nonEmptyPtr(cfg.Prefer),
		Strict:        truePtr(cfg.Strict),
		TimezoneAware: truePtr(cfg.TimezoneAware),
		HolidaysFile:  nonEmptyPtr(cfg.HolidaysFile),
		Terms:         cfg.Terms,
	}

	level := nonEmptyPtr(cfg.Log.Level)
	format := nonEmptyPtr(cfg.Log.Format)
	if level != nil || format != nil {
		out.Log = &persistedLogConfig{Level: level, Format: format}
	}
	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUISettings{Accent: accent}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveTo writes the config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

const defaultConfig = `# hdate configuration

# Holiday region used for phrases like "the day after diwali".
# region = "IN"

# Return the current time instead of failing when nothing resolves.
# fallback_to_now = false

# Force a direction for ambiguous phrases ("past" or "future").
# Leave unset to infer it from words like "ago" and "last".
# prefer = "past"

# Only accept text the grammar parser understands completely.
# strict = false

# Keep the zone the parser produced instead of the base time's zone.
# timezone_aware = false

# Extra holidays in the same YAML format as the built-in dataset.
# holidays_file = "holidays.yaml"

# Diagnostics on stderr.
# [log]
# level = "warn"
# format = "text"

# Optional UI accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"

# Extra informal terms. Built-in terms win on duplicates.
# [[terms]]
# pattern = "eod"
# canonical = "today 17:00"
`

// CreateDefault creates a commented default config file at path if nothing
// exists there. It reports whether a file was written.
func CreateDefault(path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, fmt.Errorf("config path is required")
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := atomicfile.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}
