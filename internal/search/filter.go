package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lightprotocol/light-mcp/internal/indexing"
)

var (
	ErrEmptyQuery           = errors.New("query must not be empty")
	ErrInvalidMode          = errors.New("invalid search mode")
	ErrInvalidContentFilter = errors.New("invalid content filter")
)

// Mode is accepted and echoed in responses; it does not change ranking
type Mode string

const (
	ModeFuzzy         Mode = "fuzzy"
	ModeExact         Mode = "exact"
	ModeSemantic      Mode = "semantic"
	ModeComprehensive Mode = "comprehensive"
)

// Modes lists accepted modes in schema order
var Modes = []Mode{ModeFuzzy, ModeExact, ModeSemantic, ModeComprehensive}

// ParseMode maps an empty string to semantic
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeSemantic, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// ContentFilter restricts ranked results to a document kind
type ContentFilter string

const (
	FilterAll       ContentFilter = "all"
	FilterGuides    ContentFilter = "guides"
	FilterReference ContentFilter = "reference"
	FilterExamples  ContentFilter = "examples"
	FilterConcepts  ContentFilter = "concepts"
)

// ContentFilters lists accepted filters in schema order
var ContentFilters = []ContentFilter{FilterAll, FilterGuides, FilterReference, FilterExamples, FilterConcepts}

// ParseContentFilter maps an empty string to all
func ParseContentFilter(s string) (ContentFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range ContentFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidContentFilter, s)
}

// Matches reports whether entry belongs to the filter's document kind
func (f ContentFilter) Matches(entry *indexing.DocEntry) bool {
	section := strings.ToLower(entry.Section)
	switch f {
	case FilterGuides:
		return strings.Contains(section, "guides") || strings.Contains(strings.ToLower(entry.Title), "guide")
	case FilterReference:
		return entry.IsRPCMethod || strings.Contains(section, "reference")
	case FilterExamples:
		return strings.Contains(entry.Content, "example") || strings.Contains(entry.Content, "```")
	case FilterConcepts:
		return strings.Contains(section, "learn") || strings.Contains(section, "concepts")
	default:
		return true
	}
}

// InSection reports whether entry's section contains the filter, ignoring
// case and treating hyphens as spaces. An empty filter matches everything.
func InSection(entry *indexing.DocEntry, section string) bool {
	want := normalizeSection(section)
	if want == "" {
		return true
	}
	return strings.Contains(normalizeSection(entry.Section), want)
}

func normalizeSection(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", " ")
}

func filterHits(hits []Hit, keep func(*indexing.DocEntry) bool) []Hit {
	filtered := hits[:0:0]
	for _, hit := range hits {
		if keep(hit.Entry) {
			filtered = append(filtered, hit)
		}
	}
	return filtered
}
