package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidanlsb/hdate/internal/resolver"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `region = "us"
fallback_to_now = true
prefer = "past"
strict = true
holidays_file = "extra.yaml"

[log]
level = "debug"
format = "json"

[ui]
accent = "39"

[[terms]]
pattern = "eod"
canonical = "today 17:00"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RegionOrDefault() != "US" {
		t.Errorf("expected region US, got %q", cfg.RegionOrDefault())
	}
	if !cfg.FallbackToNow || !cfg.Strict || cfg.TimezoneAware {
		t.Errorf("unexpected booleans: %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("expected ui.accent '39', got %q", cfg.UI.Accent)
	}
	if len(cfg.Terms) != 1 || cfg.Terms[0].Pattern != "eod" || cfg.Terms[0].Canonical != "today 17:00" {
		t.Errorf("unexpected terms: %+v", cfg.Terms)
	}
	if cfg.Path() != path {
		t.Errorf("expected path %q, got %q", path, cfg.Path())
	}
	if want := filepath.Join(filepath.Dir(path), "extra.yaml"); cfg.HolidaysPath() != want {
		t.Errorf("expected holidays path %q, got %q", want, cfg.HolidaysPath())
	}
}

func TestLoadFromInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad toml", `this is not valid toml {{{{`, "failed to parse config"},
		{"bad prefer", `prefer = "sideways"`, "prefer"},
		{"bad level", "[log]\nlevel = \"loud\"", "log.level"},
		{"bad format", "[log]\nformat = \"xml\"", "log.format"},
		{"empty term", "[[terms]]\npattern = \"\"\ncanonical = \"x\"", "terms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadOrDefaultMissing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RegionOrDefault() != "IN" {
		t.Errorf("expected default region IN, got %q", cfg.RegionOrDefault())
	}
	if cfg.Path() != "" {
		t.Errorf("expected no path for default config, got %q", cfg.Path())
	}
}

func TestOverride(t *testing.T) {
	cfg := &Config{Prefer: "Past", Strict: true}
	o, err := cfg.Override()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.PreferredDirection == nil || *o.PreferredDirection != resolver.Past {
		t.Errorf("expected past direction, got %v", o.PreferredDirection)
	}
	if o.Strict == nil || !*o.Strict {
		t.Errorf("expected strict override")
	}
	if o.TimezoneAware != nil || o.BaseInstant != nil {
		t.Errorf("unexpected overrides: %+v", o)
	}

	empty, err := (&Config{}).Override()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.PreferredDirection != nil || empty.Strict != nil {
		t.Errorf("empty config should not override: %+v", empty)
	}
}

func TestCalendarWithHolidaysFile(t *testing.T) {
	dir := t.TempDir()
	extra := `regions:
  - code: IN
    holidays:
      - { name: "Company Offsite", date: "2024-05-10" }
`
	if err := os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(extra), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte(`holidays_file = "extra.yaml"`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFrom(cfgPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	cal, err := cfg.Calendar()
	if err != nil {
		t.Fatalf("Calendar: %v", err)
	}
	if _, ok := cal.Lookup("IN", "company offsite", 2024); !ok {
		t.Error("expected extra holiday in calendar")
	}
	if _, ok := cal.Lookup("IN", "diwali", 2024); !ok {
		t.Error("expected built-in holidays to remain")
	}

	cfg.HolidaysFile = "missing.yaml"
	if _, err := cfg.Calendar(); err == nil {
		t.Error("expected error for missing holidays file")
	}
}

func TestResolveConfigPath(t *testing.T) {
	if got := ResolveConfigPath("/tmp/custom.toml"); got != "/tmp/custom.toml" {
		t.Errorf("explicit path ignored: %q", got)
	}
	if got := ResolveConfigPath("  "); got != DefaultPath() {
		t.Errorf("expected default path, got %q", got)
	}
}

func TestXDGPath(t *testing.T) {
	path, err := XDGPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(path) != "config.toml" || filepath.Base(filepath.Dir(path)) != "hdate" {
		t.Errorf("expected .../hdate/config.toml, got %s", path)
	}
}
