package holidays

import (
	"strings"
	"time"

	"github.com/aidanlsb/hdate/internal/dates"
)

// AnchorKind is the relation between a date phrase and the holiday it names.
type AnchorKind int

const (
	// AnchorOn is a bare holiday reference ("diwali").
	AnchorOn AnchorKind = iota
	// AnchorBefore is a reference containing "before".
	AnchorBefore
	// AnchorAfter is a reference containing "after".
	AnchorAfter
)

func (k AnchorKind) String() string {
	switch k {
	case AnchorBefore:
		return "before"
	case AnchorAfter:
		return "after"
	default:
		return "on"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k AnchorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Offset is the day adjustment applied to the holiday date.
func (k AnchorKind) Offset() int {
	switch k {
	case AnchorBefore:
		return -1
	case AnchorAfter:
		return 1
	default:
		return 0
	}
}

// Source supplies holiday entries for a region and year.
type Source interface {
	EntriesForYear(region string, year int) []Entry
}

// Anchor is a holiday reference found in date text.
type Anchor struct {
	// Holiday is the matched calendar entry.
	Holiday Entry `json:"holiday"`
	// Kind is the before/after/on relation.
	Kind AnchorKind `json:"kind"`
	// Date is the holiday date shifted by Kind.Offset().
	Date time.Time `json:"date"`
	// Lead is the offset phrase in front of the cue ("2 weeks" in
	// "2 weeks after diwali"). Empty when the phrase only says "the day
	// before/after" or names the holiday bare.
	Lead string `json:"lead,omitempty"`
}

// ISO returns the anchor date as YYYY-MM-DD.
func (a Anchor) ISO() string {
	return dates.FormatISO(a.Date)
}

// Clause renders the anchor as a relative clause, e.g. "1 day after 2024-11-01".
func (a Anchor) Clause() string {
	switch a.Kind {
	case AnchorAfter:
		return "1 day after " + a.ISO()
	case AnchorBefore:
		return "1 day before " + a.ISO()
	default:
		return a.ISO()
	}
}

// Words that carry no offset of their own in front of a cue: "the day after",
// "just before", "a day before", "on".
var fillerWords = map[string]struct{}{
	"just": {}, "right": {}, "shortly": {}, "immediately": {},
	"the": {}, "a": {}, "an": {}, "one": {}, "1": {},
	"day": {}, "on": {}, "of": {},
}

// ResolveAnchor scans normalized text for the first holiday of region in the
// base year whose lowercase name occurs in the text. The first entry in
// calendar order wins; co-occurring holidays are not compared.
func ResolveAnchor(src Source, region, text string, base time.Time) (Anchor, bool) {
	if src == nil || text == "" {
		return Anchor{}, false
	}

	for _, entry := range src.EntriesForYear(region, base.Year()) {
		name := strings.ToLower(entry.Name)
		if name == "" || !strings.Contains(text, name) {
			continue
		}

		kind := AnchorOn
		lead := text
		if i := strings.Index(text, "after"); i >= 0 {
			kind = AnchorAfter
			lead = text[:i]
		} else if i := strings.Index(text, "before"); i >= 0 {
			kind = AnchorBefore
			lead = text[:i]
		}

		return Anchor{
			Holiday: entry,
			Kind:    kind,
			Date:    dates.AddDays(entry.Date, kind.Offset()),
			Lead:    cleanLead(strings.Replace(lead, name, " ", 1)),
		}, true
	}

	return Anchor{}, false
}

func cleanLead(lead string) string {
	fields := strings.Fields(lead)
	for _, f := range fields {
		if _, ok := fillerWords[f]; !ok {
			return strings.Join(fields, " ")
		}
	}
	return ""
}
