// Package engine adapts third-party date parsers to the resolver's
// GrammarParser and DateSearcher interfaces.
package engine

import (
	"regexp"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"

	"github.com/aidanlsb/hdate/internal/dates"
	"github.com/aidanlsb/hdate/internal/resolver"
)

// presentWords are expressions whose correct answer is the reference instant
// itself.
var presentWords = regexp.MustCompile(`\b(now|today|this|current|right now)\b`)

// isoPrefix matches text that starts like an ISO date. Normalized text is
// lowercase, so the "T" separator and "Z" zone need restoring before parsing.
var isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// NaturalDate parses whole expressions with go-naturaldate. ISO dates and
// datetimes are accepted before the grammar is tried.
type NaturalDate struct{}

// Parse implements resolver.GrammarParser.
func (NaturalDate) Parse(text string, s resolver.Settings) (time.Time, bool) {
	ref := s.BaseInstant
	if ref.IsZero() {
		ref = time.Now()
	}

	if iso := strings.TrimSpace(text); isoPrefix.MatchString(iso) {
		iso = strings.ToUpper(iso)
		if d, err := dates.ParseDate(iso); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, ref.Location()), true
		}
		if t, err := dates.ParseDatetime(iso, ref.Location()); err == nil {
			return t, true
		}
	}

	t, err := naturaldate.Parse(text, ref, naturaldate.WithDirection(direction(s.PreferredDirection)))
	if err != nil {
		return time.Time{}, false
	}
	// The grammar tolerates words it does not understand and then hands back
	// the reference unchanged.
	if t.Equal(ref) && !presentWords.MatchString(text) {
		return time.Time{}, false
	}
	return t, true
}

func direction(d resolver.Direction) naturaldate.Direction {
	if d == resolver.Past {
		return naturaldate.Past
	}
	return naturaldate.Future
}
