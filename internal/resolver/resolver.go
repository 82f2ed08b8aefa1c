// Package resolver turns informal date text into a timestamp.
//
// The pipeline is: normalize the text, infer a past/future bias, look for a
// holiday reference, then run the grammar parser with a free-text date search
// as fallback. When nothing matches, the caller's fallback policy decides
// between "now" and no result.
package resolver

import (
	"log/slog"
	"strings"
	"time"

	"github.com/aidanlsb/hdate/internal/dates"
	"github.com/aidanlsb/hdate/internal/holidays"
	"github.com/aidanlsb/hdate/internal/normalize"
)

// GrammarParser parses a whole string as a date expression.
type GrammarParser interface {
	Parse(text string, s Settings) (time.Time, bool)
}

// DateSearcher finds date-like spans anywhere in a string, left to right.
type DateSearcher interface {
	SearchDates(text string, s Settings) []Match
}

// Match is a date span found by a DateSearcher.
type Match struct {
	Text  string    `json:"text"`
	Index int       `json:"index"`
	Time  time.Time `json:"time"`
}

// Options are per-call settings.
type Options struct {
	// FallbackToNow returns the call's start instant instead of no result
	// when nothing could be parsed.
	FallbackToNow bool
	// Debug logs every pipeline stage at slog.LevelDebug. It never changes
	// the result.
	Debug bool
	// Region overrides the resolver's holiday region for this call.
	Region string
	// Override is merged over the assembled settings.
	Override SettingsOverride
}

// Config wires a Resolver's collaborators. Nil fields get defaults, except
// Parser, Search and Holidays, which are simply skipped when nil.
type Config struct {
	Terms    *normalize.Table
	Holidays holidays.Source
	Region   string
	Parser   GrammarParser
	Search   DateSearcher
	Logger   *slog.Logger
	Now      func() time.Time
}

// Resolver holds read-only collaborators and is safe for concurrent use.
type Resolver struct {
	terms    *normalize.Table
	holidays holidays.Source
	region   string
	parser   GrammarParser
	search   DateSearcher
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Resolver.
func New(cfg Config) *Resolver {
	r := &Resolver{
		terms:    cfg.Terms,
		holidays: cfg.Holidays,
		region:   cfg.Region,
		parser:   cfg.Parser,
		search:   cfg.Search,
		logger:   cfg.Logger,
		now:      cfg.Now,
	}
	if r.terms == nil {
		r.terms = normalize.Default()
	}
	if r.region == "" {
		r.region = holidays.DefaultRegion
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Resolve returns the timestamp for text, or false when nothing matched and
// FallbackToNow is off.
func (r *Resolver) Resolve(text string, opts Options) (time.Time, bool) {
	tr := r.Explain(text, opts)
	return tr.Result, tr.OK
}

// Normalize exposes the resolver's normalization step.
func (r *Resolver) Normalize(text string) string {
	return r.terms.Normalize(text)
}

// Explain runs the pipeline and returns every intermediate decision.
func (r *Resolver) Explain(text string, opts Options) Trace {
	now := r.now()
	log := r.logger
	if !opts.Debug {
		log = slog.New(discardHandler{})
	}

	tr := Trace{Input: text, Now: now}

	if strings.TrimSpace(text) == "" {
		tr.Invalid = true
		log.Debug("resolve: blank input", "fallback_to_now", opts.FallbackToNow)
		return r.finish(tr, now, opts, log)
	}

	tr.Normalized = r.terms.Normalize(text)
	log.Debug("resolve: normalized", "input", text, "normalized", tr.Normalized)

	tr.Bias = ResolveBias(tr.Normalized)
	log.Debug("resolve: bias", "direction", tr.Bias.String())

	tr.Settings = Settings{
		PreferredDirection: tr.Bias,
		BaseInstant:        now,
	}.Merge(opts.Override)

	region := opts.Region
	if region == "" {
		region = r.region
	}
	tr.Text = tr.Normalized

	if anchor, ok := holidays.ResolveAnchor(r.holidays, region, tr.Normalized, tr.Settings.BaseInstant); ok {
		tr.Anchor = &anchor
		log.Debug("resolve: holiday anchor",
			"holiday", anchor.Holiday.Name,
			"kind", anchor.Kind.String(),
			"anchor", anchor.ISO(),
			"clause", anchor.Clause(),
			"lead", anchor.Lead,
		)
		return r.finish(r.resolveAnchored(tr, anchor, opts, log), now, opts, log)
	}

	if t, ok := r.parseChain(&tr, tr.Text, tr.Settings, log); ok {
		tr.Result, tr.OK = t, true
	}
	return r.finish(tr, now, opts, log)
}

// resolveAnchored parses the lead phrase relative to the holiday. With no
// lead, or when the lead does not parse, the anchor date is the result. The
// cue word sets the direction unless the caller fixed one.
func (r *Resolver) resolveAnchored(tr Trace, anchor holidays.Anchor, opts Options, log *slog.Logger) Trace {
	loc := tr.Settings.BaseInstant.Location()

	if anchor.Lead != "" {
		s := tr.Settings
		s.BaseInstant = onDate(anchor.Holiday.Date, loc)
		if opts.Override.PreferredDirection == nil {
			switch anchor.Kind {
			case holidays.AnchorAfter:
				s.PreferredDirection = Future
			case holidays.AnchorBefore:
				s.PreferredDirection = Past
			}
		}
		tr.Text = leadPhrase(anchor)
		tr.Settings = s
		if t, ok := r.parseChain(&tr, tr.Text, s, log); ok {
			tr.Result, tr.OK = t, true
			return tr
		}
	}

	tr.Path = PathAnchor
	tr.Result, tr.OK = onDate(anchor.Date, loc), true
	log.Debug("resolve: anchor date", "result", tr.Result)
	return tr
}

// parseChain runs the grammar parser and then, unless strict, the date search.
func (r *Resolver) parseChain(tr *Trace, text string, s Settings, log *slog.Logger) (time.Time, bool) {
	if r.parser != nil {
		if t, ok := r.parser.Parse(text, s); ok {
			tr.Path = PathPrimary
			log.Debug("resolve: primary parse", "text", text, "result", t)
			return t, true
		}
	}
	log.Debug("resolve: primary parse failed", "text", text, "strict", s.Strict)

	if s.Strict || r.search == nil {
		return time.Time{}, false
	}

	matches := r.search.SearchDates(text, s)
	tr.Matches = matches
	if len(matches) == 0 {
		log.Debug("resolve: search found nothing", "text", text)
		return time.Time{}, false
	}
	tr.Path = PathSearch
	log.Debug("resolve: search fallback", "span", matches[0].Text, "matches", len(matches), "result", matches[0].Time)
	return matches[0].Time, true
}

func (r *Resolver) finish(tr Trace, now time.Time, opts Options, log *slog.Logger) Trace {
	switch {
	case tr.OK:
		if !tr.Settings.TimezoneAware {
			tr.Result = dates.InLocation(tr.Result, tr.Settings.BaseInstant.Location())
		}
	case opts.FallbackToNow:
		tr.Path = PathFallbackNow
		tr.Result, tr.OK = now, true
	default:
		tr.Path = PathNone
		tr.Result = time.Time{}
	}
	log.Debug("resolve: done", "path", string(tr.Path), "ok", tr.OK, "result", tr.Result)
	return tr
}

// leadPhrase turns the offset in front of a cue into a relative phrase:
// "2 weeks" after -> "in 2 weeks", "3 days" before -> "3 days ago".
func leadPhrase(a holidays.Anchor) string {
	lead := a.Lead
	switch a.Kind {
	case holidays.AnchorAfter:
		if strings.HasPrefix(lead, "in ") || strings.HasSuffix(lead, " later") || strings.HasSuffix(lead, " from now") {
			return lead
		}
		return "in " + lead
	case holidays.AnchorBefore:
		if strings.HasSuffix(lead, " ago") || strings.HasSuffix(lead, " earlier") {
			return lead
		}
		return lead + " ago"
	default:
		return lead
	}
}

// onDate places a calendar date at midnight in loc.
func onDate(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
