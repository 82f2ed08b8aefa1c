package cli

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func runResolve(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var runErr error
	out := captureStdout(t, func() {
		runErr = resolveCmd.RunE(resolveCmd, args)
	})
	return out, runErr
}

func TestResolveJSON(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		flags   map[string]string
		date    string
		path    string
		holiday string
	}{
		{name: "shorthand", args: []string{"tmrw"}, date: "2024-03-15", path: "primary"},
		{name: "relative", args: []string{"2", "weeks", "ago"}, date: "2024-02-29", path: "primary"},
		{name: "holiday", args: []string{"the day after diwali"}, date: "2024-11-01", path: "anchor", holiday: "diwali"},
		{name: "holiday in base year", args: []string{"diwali"}, flags: map[string]string{"base": "2025-01-01"}, date: "2025-10-20", path: "anchor", holiday: "diwali"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t, "", true)
			resetFlags(t, resolveCmd)
			for k, v := range tt.flags {
				setFlag(t, resolveCmd, k, v)
			}

			out, err := runResolve(t, tt.args...)
			if err != nil {
				t.Fatalf("RunE: %v\nout=%s", err, out)
			}

			var got resolveResult
			resp := decodeResponse(t, out, &got)
			if !resp.OK {
				t.Fatalf("ok = false, out=%s", out)
			}
			if got.Date != tt.date {
				t.Errorf("date = %q, want %q", got.Date, tt.date)
			}
			if got.Path != tt.path {
				t.Errorf("path = %q, want %q", got.Path, tt.path)
			}
			if got.Holiday != tt.holiday {
				t.Errorf("holiday = %q, want %q", got.Holiday, tt.holiday)
			}
			if got.Input != strings.Join(tt.args, " ") {
				t.Errorf("input = %q", got.Input)
			}
		})
	}
}

func TestResolveNoMatchJSON(t *testing.T) {
	setupCLI(t, "", true)
	resetFlags(t, resolveCmd)

	out, err := runResolve(t, "qwzx", "blorp")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}

	var details map[string]string
	resp := decodeResponse(t, out, nil)
	if resp.OK || resp.Error == nil {
		t.Fatalf("expected error response, got %s", out)
	}
	if resp.Error.Code != ErrNoMatch {
		t.Fatalf("code = %q, want %q", resp.Error.Code, ErrNoMatch)
	}
	if m, ok := resp.Error.Details.(map[string]interface{}); ok {
		details = map[string]string{"normalized": m["normalized"].(string)}
	}
	if details["normalized"] != "qwzx blorp" {
		t.Fatalf("details = %#v", resp.Error.Details)
	}
}

func TestResolveBlankIsInvalidInput(t *testing.T) {
	setupCLI(t, "", true)
	resetFlags(t, resolveCmd)

	out, err := runResolve(t, "   ")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	resp := decodeResponse(t, out, nil)
	if resp.Error == nil || resp.Error.Code != ErrInvalidInput {
		t.Fatalf("expected %s, got %s", ErrInvalidInput, out)
	}
}

func TestResolveNoMatchText(t *testing.T) {
	setupCLI(t, "", false)
	resetFlags(t, resolveCmd)

	out, err := runResolve(t, "qwzx blorp")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `could not resolve "qwzx blorp"`) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "hdate explain") {
		t.Fatalf("suggestion missing: %v", err)
	}
	if out != "" {
		t.Fatalf("stdout = %q, want empty", out)
	}
}

func TestResolveFallbackNow(t *testing.T) {
	tests := []struct {
		name   string
		config string
		flag   string
	}{
		{name: "flag", flag: "true"},
		{name: "config", config: "fallback_to_now = true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t, tt.config, true)
			resetFlags(t, resolveCmd)
			if tt.flag != "" {
				setFlag(t, resolveCmd, "fallback-now", tt.flag)
			}

			out, err := runResolve(t, "qwzx blorp")
			if err != nil {
				t.Fatalf("RunE: %v\nout=%s", err, out)
			}

			var got resolveResult
			resp := decodeResponse(t, out, &got)
			if got.Path != "fallback-now" {
				t.Fatalf("path = %q, want fallback-now", got.Path)
			}
			if got.Result != testNow.Format(time.RFC3339) {
				t.Fatalf("result = %q, want %q", got.Result, testNow.Format(time.RFC3339))
			}
			if len(resp.Warnings) != 1 || resp.Warnings[0].Code != WarnFallbackNow {
				t.Fatalf("warnings = %#v", resp.Warnings)
			}
		})
	}
}

func TestResolveFlagOverridesConfigFallback(t *testing.T) {
	setupCLI(t, "fallback_to_now = true\n", true)
	resetFlags(t, resolveCmd)
	setFlag(t, resolveCmd, "fallback-now", "false")

	out, err := runResolve(t, "qwzx blorp")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported\nout=%s", err, out)
	}
}

func TestResolveDateOnlyText(t *testing.T) {
	setupCLI(t, "", false)
	resetFlags(t, resolveCmd)
	resolveDateOnly = true

	out, err := runResolve(t, "the", "day", "after", "diwali")
	if err != nil {
		t.Fatalf("RunE: %v", err)
	}
	if !strings.Contains(out, "2024-11-01") {
		t.Fatalf("out = %q, want 2024-11-01", out)
	}
	if strings.Contains(out, "T00:00:00") {
		t.Fatalf("out = %q, want date only", out)
	}
}

func TestResolveRegion(t *testing.T) {
	t.Run("config region", func(t *testing.T) {
		setupCLI(t, "region = \"us\"\n", true)
		resetFlags(t, resolveCmd)

		out, err := runResolve(t, "diwali")
		if !errors.Is(err, errReported) {
			t.Fatalf("diwali is not a US holiday, got err=%v out=%s", err, out)
		}
	})

	t.Run("unknown region flag", func(t *testing.T) {
		setupCLI(t, "", true)
		resetFlags(t, resolveCmd)
		regionFlag = "zz"

		out, err := runResolve(t, "tmrw")
		if !errors.Is(err, errReported) {
			t.Fatalf("err = %v, want errReported", err)
		}
		resp := decodeResponse(t, out, nil)
		if resp.Error == nil || resp.Error.Code != ErrUnknownRegion {
			t.Fatalf("expected %s, got %s", ErrUnknownRegion, out)
		}
	})
}

func TestResolveInvalidBase(t *testing.T) {
	setupCLI(t, "", true)
	resetFlags(t, resolveCmd)
	setFlag(t, resolveCmd, "base", "not a date")

	out, err := runResolve(t, "tmrw")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	resp := decodeResponse(t, out, nil)
	if resp.Error == nil || resp.Error.Code != ErrInvalidInput {
		t.Fatalf("expected %s, got %s", ErrInvalidInput, out)
	}
}

func TestResolveInvalidConfig(t *testing.T) {
	setupCLI(t, "prefer = \"sideways\"\n", true)
	resetFlags(t, resolveCmd)

	out, err := runResolve(t, "tmrw")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	resp := decodeResponse(t, out, nil)
	if resp.Error == nil || resp.Error.Code != ErrConfigInvalid {
		t.Fatalf("expected %s, got %s", ErrConfigInvalid, out)
	}
}

func TestPreferFlagRejectsUnknownDirection(t *testing.T) {
	resetFlags(t, resolveCmd)
	if err := resolveCmd.Flags().Set("prefer", "sideways"); err == nil {
		t.Fatal("expected error for --prefer sideways")
	}
}

func TestResolveWarnsOutsideHolidayCoverage(t *testing.T) {
	t.Run("resolved phrase carries warning", func(t *testing.T) {
		setupCLI(t, "", true)
		resetFlags(t, resolveCmd)
		setFlag(t, resolveCmd, "base", "2031-01-01")

		out, err := runResolve(t, "tmrw")
		if err != nil {
			t.Fatalf("RunE: %v\nout=%s", err, out)
		}
		var got resolveResult
		resp := decodeResponse(t, out, &got)
		if got.Date != "2031-01-02" {
			t.Fatalf("date = %q, want 2031-01-02", got.Date)
		}
		if len(resp.Warnings) != 1 || resp.Warnings[0].Code != WarnYearNotCovered {
			t.Fatalf("warnings = %#v", resp.Warnings)
		}
		if !strings.Contains(resp.Warnings[0].Message, "2031") {
			t.Fatalf("message = %q", resp.Warnings[0].Message)
		}
	})

	t.Run("unresolved holiday explains coverage", func(t *testing.T) {
		setupCLI(t, "", true)
		resetFlags(t, resolveCmd)
		setFlag(t, resolveCmd, "base", "2031-01-01")

		out, err := runResolve(t, "diwali")
		if !errors.Is(err, errReported) {
			t.Fatalf("err = %v, want errReported\nout=%s", err, out)
		}
		resp := decodeResponse(t, out, nil)
		if resp.Error == nil || resp.Error.Code != ErrNoMatch {
			t.Fatalf("expected %s, got %s", ErrNoMatch, out)
		}
		if !strings.Contains(resp.Error.Suggestion, "no holidays for") || !strings.Contains(resp.Error.Suggestion, "2031") {
			t.Fatalf("suggestion = %q", resp.Error.Suggestion)
		}
	})

	t.Run("covered year has no warning", func(t *testing.T) {
		setupCLI(t, "", true)
		resetFlags(t, resolveCmd)

		out, err := runResolve(t, "tmrw")
		if err != nil {
			t.Fatalf("RunE: %v", err)
		}
		if resp := decodeResponse(t, out, nil); len(resp.Warnings) != 0 {
			t.Fatalf("warnings = %#v", resp.Warnings)
		}
	})
}
