package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lightprotocol/light-mcp/internal/indexing"
)

const (
	DefaultLimit       = 5
	MaxLimit           = 20
	ComprehensiveLimit = 25
)

// Request is one normalized search_docs call
type Request struct {
	Query         string
	Limit         int
	Section       string
	Mode          string
	ContentFilter string
	ExpandContext bool
	IncludeCode   bool
}

// NewRequest returns a request for query with the tool defaults applied
func NewRequest(query string) Request {
	return Request{
		Query:         query,
		Limit:         DefaultLimit,
		Mode:          string(ModeSemantic),
		ContentFilter: string(FilterAll),
		ExpandContext: true,
		IncludeCode:   true,
	}
}

// Result is one excerpted hit
type Result struct {
	Entry   *indexing.DocEntry
	Score   float64
	Excerpt string
}

// Response is the outcome of Engine.Search before formatting
type Response struct {
	Query         string
	Section       string
	Mode          Mode
	ContentFilter ContentFilter
	Comprehensive bool
	Category      Category
	Results       []Result
}

// Text renders the response for clients
func (r *Response) Text() string {
	return FormatResponse(r)
}

// Engine answers queries over an immutable document collection.
// It is safe for concurrent use.
type Engine struct {
	entries []indexing.DocEntry
	index   Index
}

// NewEngine wraps an already built index
func NewEngine(entries []indexing.DocEntry, index Index) *Engine {
	return &Engine{entries: entries, index: index}
}

// Build indexes entries with bleve and returns the engine
func Build(entries []indexing.DocEntry) (*Engine, error) {
	index, err := NewBleveIndex(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}
	return NewEngine(entries, index), nil
}

// Entries returns the indexed documents. Callers must not modify them.
func (e *Engine) Entries() []indexing.DocEntry {
	return e.entries
}

// DocCount returns the number of documents the engine searches
func (e *Engine) DocCount() int {
	return len(e.entries)
}

// Close releases the underlying index
func (e *Engine) Close() error {
	return e.index.Close()
}

// Search routes the request, applies filters and limit, and excerpts each hit
func (e *Engine) Search(req Request) (*Response, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	filter, err := ParseContentFilter(req.ContentFilter)
	if err != nil {
		return nil, err
	}

	intent := DetectIntent(req.Query)
	limit := ClampLimit(req.Limit)

	var (
		hits  []Hit
		terms []string
	)
	if intent.Enumerates() {
		hits = e.enumerate(intent.Category, req.Section)
		if intent.Category == CategoryRPCMethods && limit < ComprehensiveLimit {
			limit = ComprehensiveLimit
		}
		terms = intent.SearchTerms
	} else {
		hits, err = e.index.Search(req.Query)
		if err != nil {
			return nil, err
		}
		hits = filterHits(hits, func(entry *indexing.DocEntry) bool {
			return InSection(entry, req.Section)
		})
		hits = filterHits(hits, filter.Matches)
		terms = ExcerptTerms(req.Query)
	}

	if len(hits) > limit {
		hits = hits[:limit]
	}

	opts := ExcerptOptions{IncludeCode: req.IncludeCode, ExpandContext: req.ExpandContext}
	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		results = append(results, Result{
			Entry:   hit.Entry,
			Score:   hit.Score,
			Excerpt: Excerpt(hit.Entry, terms, opts),
		})
	}

	return &Response{
		Query:         req.Query,
		Section:       req.Section,
		Mode:          mode,
		ContentFilter: filter,
		Comprehensive: intent.Enumerates(),
		Category:      intent.Category,
		Results:       results,
	}, nil
}

// enumerate selects every entry of a category with a perfect score
func (e *Engine) enumerate(category Category, section string) []Hit {
	var hits []Hit
	if category == CategoryRPCMethods {
		for i := range e.entries {
			entry := &e.entries[i]
			inReference := entry.IsComprehensiveDoc && strings.Contains(entry.RelativePath, indexing.ReferenceFolder)
			if entry.IsRPCMethod || inReference {
				hits = append(hits, Hit{Entry: entry})
			}
		}
		sort.SliceStable(hits, func(i, j int) bool {
			a, b := hits[i].Entry, hits[j].Entry
			if a.IsComprehensiveDoc != b.IsComprehensiveDoc {
				return a.IsComprehensiveDoc
			}
			return a.Title < b.Title
		})
		return hits
	}

	for i := range e.entries {
		entry := &e.entries[i]
		if InSection(entry, section) {
			hits = append(hits, Hit{Entry: entry})
		}
	}
	return hits
}

// ClampLimit applies the default and the ranked-path ceiling
func ClampLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit < 1:
		return 1
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
