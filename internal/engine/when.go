package engine

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/aidanlsb/hdate/internal/resolver"
)

// maxMatches bounds the search over a single input.
const maxMatches = 16

// When finds date spans inside free text with olebedev/when.
type When struct {
	parser *when.Parser
}

// NewWhen returns a searcher loaded with the English and common rule sets.
func NewWhen() *When {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &When{parser: w}
}

// SearchDates implements resolver.DateSearcher. Matches are returned left to
// right; Index is the byte offset of each span in text.
func (w *When) SearchDates(text string, s resolver.Settings) []resolver.Match {
	ref := s.BaseInstant
	if ref.IsZero() {
		ref = time.Now()
	}

	var matches []resolver.Match
	offset := 0
	for offset < len(text) && len(matches) < maxMatches {
		r, err := w.parser.Parse(text[offset:], ref)
		if err != nil || r == nil || r.Text == "" {
			break
		}
		matches = append(matches, resolver.Match{
			Text:  r.Text,
			Index: offset + r.Index,
			Time:  r.Time,
		})
		offset += r.Index + len(r.Text)
	}
	return matches
}
