package ui

import (
	"strings"
	"testing"
)

func TestStatusMessages(t *testing.T) {
	if got := Success("saved"); got != "✓ saved" {
		t.Errorf("Success = %q", got)
	}
	if got := Successf("wrote %s", "config.toml"); got != "✓ wrote config.toml" {
		t.Errorf("Successf = %q", got)
	}
	if got := Error("no match"); got != "✗ no match" {
		t.Errorf("Error = %q", got)
	}
	if got := Warning("careful"); got != "⚠ careful" {
		t.Errorf("Warning = %q", got)
	}
}

func TestCount(t *testing.T) {
	if got := Count(1, "holiday", "holidays"); got != "(1 holiday)" {
		t.Errorf("Count(1) = %q", got)
	}
	if got := Count(3, "holiday", "holidays"); got != "(3 holidays)" {
		t.Errorf("Count(3) = %q", got)
	}
}

func TestStepContainsLabelAndValue(t *testing.T) {
	got := Step("normalized", "tomorrow")
	if !strings.Contains(got, "normalized") || !strings.HasSuffix(got, SymbolArrow+" tomorrow") {
		t.Errorf("Step = %q", got)
	}
}
