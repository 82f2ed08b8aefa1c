package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/aidanlsb/hdate/internal/resolver"
)

// Thursday, 2024-03-14 12:00:00 UTC
var testNow = time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

func settings(d resolver.Direction) resolver.Settings {
	return resolver.Settings{PreferredDirection: d, BaseInstant: testNow}
}

func TestNaturalDateRelative(t *testing.T) {
	tests := []struct {
		text string
		dir  resolver.Direction
		want string
	}{
		{"tomorrow", resolver.Future, "2024-03-15"},
		{"yesterday", resolver.Past, "2024-03-13"},
		{"2 weeks ago", resolver.Past, "2024-02-29"},
	}

	var p NaturalDate
	for _, tt := range tests {
		got, ok := p.Parse(tt.text, settings(tt.dir))
		if !ok {
			t.Errorf("Parse(%q) failed", tt.text)
			continue
		}
		if d := got.Format("2006-01-02"); d != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.text, d, tt.want)
		}
	}
}

func TestNaturalDateLastWeekday(t *testing.T) {
	got, ok := NaturalDate{}.Parse("last monday", settings(resolver.Past))
	if !ok {
		t.Fatal("expected last monday to parse")
	}
	if got.Weekday() != time.Monday {
		t.Fatalf("got %s, want a Monday", got.Weekday())
	}
	if !got.Before(testNow) || testNow.Sub(got) > 8*24*time.Hour {
		t.Fatalf("got %v, want the Monday before %v", got, testNow)
	}
}

func TestNaturalDateISO(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	s := resolver.Settings{BaseInstant: testNow.In(ist)}

	got, ok := NaturalDate{}.Parse("2024-12-25", s)
	if !ok {
		t.Fatal("expected ISO date to parse")
	}
	want := time.Date(2024, 12, 25, 0, 0, 0, 0, ist)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	got, ok = NaturalDate{}.Parse("2024-12-25T10:30", s)
	if !ok || got.Hour() != 10 || got.Minute() != 30 || got.Location() != ist {
		t.Fatalf("datetime parse = %v, %v", got, ok)
	}
}

func TestNaturalDateLowercaseISO(t *testing.T) {
	s := resolver.Settings{BaseInstant: testNow}

	tests := []struct {
		text string
		want time.Time
	}{
		{"2024-03-20t10:30:00z", time.Date(2024, 3, 20, 10, 30, 0, 0, time.UTC)},
		{"2024-03-20t10:30", time.Date(2024, 3, 20, 10, 30, 0, 0, time.UTC)},
		{"2024-03-20t10:30:00+05:30", time.Date(2024, 3, 20, 5, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := NaturalDate{}.Parse(tt.text, s)
		if !ok {
			t.Errorf("Parse(%q) did not match", tt.text)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestNaturalDateRejectsGibberish(t *testing.T) {
	for _, text := range []string{"asdkjfhaskdjfh", "qwerty zxcv"} {
		if got, ok := (NaturalDate{}).Parse(text, settings(resolver.Future)); ok {
			t.Errorf("Parse(%q) = %v, want no match", text, got)
		}
	}
}

func TestDirectionMapping(t *testing.T) {
	if direction(resolver.Past) == direction(resolver.Future) {
		t.Fatal("past and future must map to different parser directions")
	}
}

func TestWhenFindsSpan(t *testing.T) {
	text := "call me tomorrow please"
	matches := NewWhen().SearchDates(text, settings(resolver.Future))
	if len(matches) == 0 {
		t.Fatalf("SearchDates(%q) found nothing", text)
	}

	m := matches[0]
	if !strings.Contains(strings.ToLower(m.Text), "tomorrow") {
		t.Fatalf("first span = %q, want it to contain tomorrow", m.Text)
	}
	if text[m.Index:m.Index+len(m.Text)] != m.Text {
		t.Fatalf("index %d does not locate %q in %q", m.Index, m.Text, text)
	}
	if d := m.Time.Format("2006-01-02"); d != "2024-03-15" {
		t.Fatalf("span time = %s, want 2024-03-15", d)
	}
}

func TestWhenMatchesAreOrdered(t *testing.T) {
	text := "either tomorrow or the day after that, maybe next week"
	matches := NewWhen().SearchDates(text, settings(resolver.Future))
	for i := 1; i < len(matches); i++ {
		if matches[i].Index <= matches[i-1].Index {
			t.Fatalf("matches out of order: %+v", matches)
		}
	}
}

func TestWhenNoMatch(t *testing.T) {
	if matches := NewWhen().SearchDates("asdkjfhaskdjfh", settings(resolver.Future)); len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
	if matches := NewWhen().SearchDates("", settings(resolver.Future)); len(matches) != 0 {
		t.Fatalf("expected no matches for empty text, got %+v", matches)
	}
}
