package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/aidanlsb/hdate/internal/holidays"
)

// Path names the stage that produced a result.
type Path string

const (
	PathNone        Path = "none"
	PathPrimary     Path = "primary"
	PathSearch      Path = "search"
	PathAnchor      Path = "anchor"
	PathFallbackNow Path = "fallback-now"
)

// Trace records each decision of one resolution.
type Trace struct {
	Input      string           `json:"input"`
	Now        time.Time        `json:"now"`
	Invalid    bool             `json:"invalid,omitempty"`
	Normalized string           `json:"normalized"`
	Bias       Direction        `json:"bias"`
	Anchor     *holidays.Anchor `json:"anchor,omitempty"`
	// Text is what was handed to the parsers. For anchored input it is the
	// relative phrase built from the anchor's lead.
	Text     string    `json:"text"`
	Settings Settings  `json:"settings"`
	Matches  []Match   `json:"matches,omitempty"`
	Path     Path      `json:"path"`
	Result   time.Time `json:"result"`
	OK       bool      `json:"ok"`
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
