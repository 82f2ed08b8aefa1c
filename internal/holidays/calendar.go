// Package holidays provides the regional holiday calendar and the resolver that
// anchors holiday references in date text to concrete dates.
package holidays

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/hdate/internal/dates"
	"github.com/aidanlsb/hdate/internal/slugs"
)

// DefaultRegion is the region used when none is configured.
const DefaultRegion = "IN"

// ErrUnknownRegion is returned when a region code is not in the calendar.
var ErrUnknownRegion = errors.New("unknown region")

//go:embed data/holidays.yaml
var builtinData []byte

// Entry is a single holiday on a calendar date.
type Entry struct {
	Name   string    `json:"name"`
	Date   time.Time `json:"date"`
	Region string    `json:"region"`
}

// ID returns the slug of the holiday name ("Guru Nanak Jayanti" -> "guru-nanak-jayanti").
func (e Entry) ID() string {
	return slugs.Slug(e.Name)
}

// Region describes a calendar region.
type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type dataset struct {
	Regions []regionSpec `yaml:"regions"`
}

type regionSpec struct {
	Code     string      `yaml:"code"`
	Name     string      `yaml:"name"`
	Holidays []entrySpec `yaml:"holidays"`
}

type entrySpec struct {
	Name string `yaml:"name"`
	Date string `yaml:"date"`
}

type regionData struct {
	info    Region
	entries []Entry
}

// Calendar is a read-only table of holidays keyed by region. Entries within a
// region are kept in calendar order; entries on the same date keep the order
// they were declared in. A Calendar is never modified after construction and is
// safe for concurrent use.
type Calendar struct {
	regions map[string]*regionData
	order   []string
}

// Builtin returns the calendar compiled into the binary.
func Builtin() (*Calendar, error) {
	return Parse(builtinData, "builtin dataset")
}

// LoadFile loads a calendar from a YAML file in the same format as the
// built-in dataset.
func LoadFile(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays file %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML holiday dataset. source is only used in error messages.
func Parse(data []byte, source string) (*Calendar, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse holidays %s: %w", source, err)
	}

	cal := &Calendar{regions: make(map[string]*regionData)}
	for i, rs := range ds.Regions {
		code := normalizeRegion(rs.Code)
		if code == "" {
			return nil, fmt.Errorf("holidays %s: region %d has no code", source, i)
		}

		rd, ok := cal.regions[code]
		if !ok {
			rd = &regionData{info: Region{Code: code, Name: strings.TrimSpace(rs.Name)}}
			cal.regions[code] = rd
			cal.order = append(cal.order, code)
		}

		for _, h := range rs.Holidays {
			name := strings.TrimSpace(h.Name)
			if name == "" {
				return nil, fmt.Errorf("holidays %s: region %s has a holiday with no name", source, code)
			}
			d, err := dates.ParseDate(h.Date)
			if err != nil {
				return nil, fmt.Errorf("holidays %s: %s (%s): %w", source, name, code, err)
			}
			rd.entries = append(rd.entries, Entry{Name: name, Date: d, Region: code})
		}
		sortEntries(rd.entries)
	}

	return cal, nil
}

// Merge returns a new calendar with other's entries layered over c's. An entry
// in other replaces an entry in c with the same id in the same year; anything
// else is added.
func (c *Calendar) Merge(other *Calendar) *Calendar {
	out := &Calendar{regions: make(map[string]*regionData)}
	for _, code := range c.order {
		src := c.regions[code]
		out.regions[code] = &regionData{
			info:    src.info,
			entries: append([]Entry(nil), src.entries...),
		}
		out.order = append(out.order, code)
	}
	if other == nil {
		return out
	}

	for _, code := range other.order {
		src := other.regions[code]
		dst, ok := out.regions[code]
		if !ok {
			dst = &regionData{info: src.info}
			out.regions[code] = dst
			out.order = append(out.order, code)
		} else if src.info.Name != "" {
			dst.info.Name = src.info.Name
		}

		for _, e := range src.entries {
			replaced := false
			for i := range dst.entries {
				if dst.entries[i].Date.Year() == e.Date.Year() && dst.entries[i].ID() == e.ID() {
					dst.entries[i] = e
					replaced = true
					break
				}
			}
			if !replaced {
				dst.entries = append(dst.entries, e)
			}
		}
		sortEntries(dst.entries)
	}

	return out
}

// EntriesForYear returns the holidays of a region in one calendar year, in
// calendar order. Unknown regions yield no entries.
func (c *Calendar) EntriesForYear(region string, year int) []Entry {
	rd, ok := c.regions[normalizeRegion(region)]
	if !ok {
		return nil
	}
	var out []Entry
	for _, e := range rd.entries {
		if e.Date.Year() == year {
			out = append(out, e)
		}
	}
	return out
}

// Region returns the region for a code, or ErrUnknownRegion.
func (c *Calendar) Region(code string) (Region, error) {
	rd, ok := c.regions[normalizeRegion(code)]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, code)
	}
	return rd.info, nil
}

// Regions returns all regions in the order they were declared.
func (c *Calendar) Regions() []Region {
	out := make([]Region, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.regions[code].info)
	}
	return out
}

// Years returns the distinct years covered for a region, ascending.
func (c *Calendar) Years(region string) []int {
	rd, ok := c.regions[normalizeRegion(region)]
	if !ok {
		return nil
	}
	var years []int
	for _, e := range rd.entries {
		if n := len(years); n == 0 || years[n-1] != e.Date.Year() {
			years = append(years, e.Date.Year())
		}
	}
	return years
}

// Lookup finds a holiday by id (or display name) in a region and year.
func (c *Calendar) Lookup(region, nameOrID string, year int) (Entry, bool) {
	id := slugs.Slug(nameOrID)
	for _, e := range c.EntriesForYear(region, year) {
		if e.ID() == id {
			return e, true
		}
	}
	return Entry{}, false
}

func normalizeRegion(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}
