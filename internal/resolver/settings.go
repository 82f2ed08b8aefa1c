package resolver

import (
	"fmt"
	"strings"
	"time"
)

// Direction is the preferred side of "now" for ambiguous expressions such as
// "friday" said on a Friday.
type Direction int

const (
	// Future prefers the next occurrence.
	Future Direction = iota
	// Past prefers the previous occurrence.
	Past
)

func (d Direction) String() string {
	if d == Past {
		return "past"
	}
	return "future"
}

// ParseDirection parses "past" or "future" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "past":
		return Past, nil
	case "future":
		return Future, nil
	default:
		return Future, fmt.Errorf("invalid direction %q (use past or future)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Settings are handed to the grammar parser and date search for one call.
type Settings struct {
	PreferredDirection Direction `json:"preferred_direction"`
	BaseInstant        time.Time `json:"base_instant"`
	// TimezoneAware keeps whatever zone the parser produced. When false the
	// result is re-expressed as a wall clock in BaseInstant's location.
	TimezoneAware bool `json:"timezone_aware"`
	// Strict disables the free-text search fallback.
	Strict bool `json:"strict"`
}

// SettingsOverride holds caller-supplied values; non-nil fields win over the
// assembled settings.
type SettingsOverride struct {
	PreferredDirection *Direction
	BaseInstant        *time.Time
	TimezoneAware      *bool
	Strict             *bool
}

// Merge returns s with every non-nil field of o applied.
func (s Settings) Merge(o SettingsOverride) Settings {
	if o.PreferredDirection != nil {
		s.PreferredDirection = *o.PreferredDirection
	}
	if o.BaseInstant != nil {
		s.BaseInstant = *o.BaseInstant
	}
	if o.TimezoneAware != nil {
		s.TimezoneAware = *o.TimezoneAware
	}
	if o.Strict != nil {
		s.Strict = *o.Strict
	}
	return s
}
