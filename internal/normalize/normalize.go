// Package normalize rewrites informal date phrases into canonical wording.
//
// A Table holds an ordered list of rules. Normalization folds the input
// (NFKC, lower case, collapsed whitespace) and then rewrites every whole-word
// occurrence of a rule pattern in one left-to-right pass. Canonical text that
// was just written is never scanned again, so rules cannot chain into each
// other.
package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Rule maps an informal pattern to its canonical phrase.
type Rule struct {
	Pattern   string `toml:"pattern" yaml:"pattern" json:"pattern"`
	Canonical string `toml:"canonical" yaml:"canonical" json:"canonical"`
}

// DefaultRules is the built-in fuzzy term table, in declaration order.
var DefaultRules = []Rule{
	{Pattern: "tmrw", Canonical: "tomorrow"},
	{Pattern: "2day", Canonical: "today"},
	{Pattern: "couple of days", Canonical: "2 days"},
	{Pattern: "fortnight", Canonical: "14 days"},
	{Pattern: "next weekend", Canonical: "next saturday"},
	{Pattern: "this weekend", Canonical: "this saturday"},
	{Pattern: "mid next week", Canonical: "next wednesday"},
}

// Table is an immutable, ordered set of rewrite rules. It is safe for
// concurrent use.
type Table struct {
	rules   []Rule
	lookup  map[string]string
	matcher *regexp.Regexp
}

// NewTable compiles rules into a Table. Patterns are folded the same way input
// text is, so "TMRW" and "tmrw" are the same pattern. When two rules share a
// pattern the first one wins.
func NewTable(rules []Rule) (*Table, error) {
	t := &Table{
		rules:  make([]Rule, 0, len(rules)),
		lookup: make(map[string]string, len(rules)),
	}

	var patterns []string
	for i, r := range rules {
		pattern := Fold(r.Pattern)
		if pattern == "" {
			return nil, fmt.Errorf("rule %d: empty pattern", i)
		}
		canonical := Fold(r.Canonical)
		t.rules = append(t.rules, Rule{Pattern: pattern, Canonical: canonical})
		if _, seen := t.lookup[pattern]; seen {
			continue
		}
		t.lookup[pattern] = canonical
		patterns = append(patterns, pattern)
	}

	if len(patterns) == 0 {
		return t, nil
	}

	// Longest first so the alternation prefers "mid next week" over a shorter
	// pattern starting at the same position. Stable keeps declaration order
	// for equal lengths.
	sort.SliceStable(patterns, func(i, j int) bool {
		return len(patterns[i]) > len(patterns[j])
	})
	quoted := make([]string, len(patterns))
	for i, p := range patterns {
		quoted[i] = regexp.QuoteMeta(p)
	}

	matcher, err := regexp.Compile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}
	t.matcher = matcher
	return t, nil
}

// MustTable is like NewTable but panics on error.
func MustTable(rules []Rule) *Table {
	t, err := NewTable(rules)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultTable = MustTable(DefaultRules)

// Default returns the table built from DefaultRules.
func Default() *Table {
	return defaultTable
}

// With returns a new table with extra rules appended after the existing ones.
func (t *Table) With(extra ...Rule) (*Table, error) {
	if len(extra) == 0 {
		return t, nil
	}
	combined := make([]Rule, 0, len(t.rules)+len(extra))
	combined = append(combined, t.rules...)
	combined = append(combined, extra...)
	return NewTable(combined)
}

// Rules returns a copy of the folded rules in declaration order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Normalize folds text and rewrites informal phrases to canonical ones.
func (t *Table) Normalize(text string) string {
	folded := Fold(text)
	if t == nil || t.matcher == nil || folded == "" {
		return folded
	}
	return t.matcher.ReplaceAllStringFunc(folded, func(m string) string {
		if canonical, ok := t.lookup[m]; ok {
			return canonical
		}
		return m
	})
}

// Normalize normalizes text with the default table.
func Normalize(text string) string {
	return defaultTable.Normalize(text)
}

// Fold applies compatibility normalization, lower-cases, trims and collapses
// runs of whitespace to single spaces.
func Fold(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	// cases.Caser is stateful; build one per call.
	lowered := cases.Lower(language.Und).String(norm.NFKC.String(text))
	return strings.Join(strings.Fields(lowered), " ")
}
