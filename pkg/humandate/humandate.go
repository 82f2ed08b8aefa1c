// Package humandate resolves informal date phrases ("tmrw", "2 weeks ago",
// "the day after diwali") to timestamps.
//
// The zero-configuration entry point is Resolve, which uses the built-in term
// table and holiday calendar. Use New to build a Resolver with custom terms, a
// different calendar or a logger.
package humandate

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aidanlsb/hdate/internal/engine"
	"github.com/aidanlsb/hdate/internal/holidays"
	"github.com/aidanlsb/hdate/internal/normalize"
	"github.com/aidanlsb/hdate/internal/resolver"
)

type (
	// Options are per-call settings.
	Options = resolver.Options
	// SettingsOverride replaces individual parser settings for one call.
	SettingsOverride = resolver.SettingsOverride
	// Direction is the preferred side of "now" for ambiguous expressions.
	Direction = resolver.Direction
	// Trace records every decision of one resolution.
	Trace = resolver.Trace
	// Resolver is a configured resolution pipeline.
	Resolver = resolver.Resolver
)

const (
	Future = resolver.Future
	Past   = resolver.Past
)

// Config configures New.
type Config struct {
	// Terms are extra informal-term rules layered over the defaults.
	Terms []normalize.Rule
	// Calendar supplies holidays. Nil disables holiday anchoring.
	Calendar *holidays.Calendar
	// Region is the default holiday region (holidays.DefaultRegion if empty).
	Region string
	Logger *slog.Logger
	Now    func() time.Time
}

// New builds a Resolver backed by go-naturaldate and olebedev/when.
func New(cfg Config) (*Resolver, error) {
	terms := normalize.Default()
	if len(cfg.Terms) > 0 {
		var err error
		terms, err = terms.With(cfg.Terms...)
		if err != nil {
			return nil, err
		}
	}

	rc := resolver.Config{
		Terms:  terms,
		Region: cfg.Region,
		Parser: engine.NaturalDate{},
		Search: engine.NewWhen(),
		Logger: cfg.Logger,
		Now:    cfg.Now,
	}
	if cfg.Calendar != nil {
		rc.Holidays = cfg.Calendar
	}
	return resolver.New(rc), nil
}

var defaultResolver = sync.OnceValue(func() *Resolver {
	cal, err := holidays.Builtin()
	if err != nil {
		slog.Warn("humandate: builtin holiday calendar unavailable", "error", err)
		cal = nil
	}
	r, _ := New(Config{Calendar: cal})
	return r
})

// Resolve converts text to a timestamp using the built-in terms and holiday
// calendar. It returns false when nothing matched and opts.FallbackToNow is
// off.
func Resolve(text string, opts Options) (time.Time, bool) {
	return defaultResolver().Resolve(text, opts)
}

// Explain is Resolve with the full decision trace.
func Explain(text string, opts Options) Trace {
	return defaultResolver().Explain(text, opts)
}

// Normalize applies the built-in informal-term rewrites to text.
func Normalize(text string) string {
	return normalize.Normalize(text)
}
