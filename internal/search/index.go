package search

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/lightprotocol/light-mcp/internal/indexing"
)

const (
	batchSize        = 100
	minTermLength    = 2
	fuzzyTermLength  = 4
	prefixTermLength = 3
	prefixBoostRatio = 0.5
)

// Hit is one ranked match. Score follows the 0 = perfect convention.
type Hit struct {
	Entry *indexing.DocEntry
	Score float64
}

// Index is the fuzzy text index capability used by the engine
type Index interface {
	// Search returns hits ordered best first
	Search(text string) ([]Hit, error)

	// DocCount returns the number of indexed documents
	DocCount() (uint64, error)

	// Close releases index resources
	Close() error
}

type weightedField struct {
	name     string
	boost    float64
	analyzer string
	prefix   bool
}

// Field weights: title highest, section lowest.
var weightedFields = []weightedField{
	{name: "title", boost: 3, analyzer: en.AnalyzerName, prefix: true},
	{name: "methodName", boost: 2.5, analyzer: standard.Name, prefix: true},
	{name: "keywords", boost: 2, analyzer: standard.Name, prefix: true},
	{name: "content", boost: 1, analyzer: en.AnalyzerName},
	{name: "section", boost: 0.5, analyzer: standard.Name},
}

// bleveIndex is an in-memory bleve index over the document collection
type bleveIndex struct {
	index   bleve.Index
	entries map[string]*indexing.DocEntry
}

// NewBleveIndex indexes entries into a memory-only bleve index.
// The entries slice must not be modified afterwards.
func NewBleveIndex(entries []indexing.DocEntry) (Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	byID := make(map[string]*indexing.DocEntry, len(entries))
	batch := index.NewBatch()
	for i := range entries {
		entry := &entries[i]
		byID[entry.RelativePath] = entry

		if err := batch.Index(entry.RelativePath, indexDocument(entry)); err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to add %s to batch: %w", entry.RelativePath, err)
		}

		if (i+1)%batchSize == 0 {
			if err := index.Batch(batch); err != nil {
				index.Close()
				return nil, fmt.Errorf("failed to index batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to index final batch: %w", err)
		}
	}

	return &bleveIndex{index: index, entries: byID}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()
	for _, field := range weightedFields {
		fieldMapping := bleve.NewTextFieldMapping()
		fieldMapping.Analyzer = field.analyzer
		fieldMapping.Store = false
		fieldMapping.IncludeInAll = false
		docMapping.AddFieldMappingsAt(field.name, fieldMapping)
	}

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name
	return indexMapping
}

func indexDocument(entry *indexing.DocEntry) map[string]interface{} {
	return map[string]interface{}{
		"title":      entry.Title,
		"methodName": entry.MethodName,
		"keywords":   entry.Keywords,
		"content":    entry.Content,
		"section":    entry.Section,
	}
}

// queryTerms lowercases text and splits it into unique alphanumeric terms
func queryTerms(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) < minTermLength {
			continue
		}
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		terms = append(terms, field)
	}
	return terms
}

// buildQuery ORs a fuzzy match per term and field, plus prefix matches on the
// identifier-like fields so partial words still hit
func buildQuery(text string) query.Query {
	terms := queryTerms(text)
	if len(terms) == 0 {
		return nil
	}

	var clauses []query.Query
	for _, term := range terms {
		for _, field := range weightedFields {
			match := bleve.NewMatchQuery(term)
			match.SetField(field.name)
			match.SetBoost(field.boost)
			if len(term) >= fuzzyTermLength {
				match.SetFuzziness(1)
			}
			clauses = append(clauses, match)

			if field.prefix && len(term) >= prefixTermLength {
				prefix := bleve.NewPrefixQuery(term)
				prefix.SetField(field.name)
				prefix.SetBoost(field.boost * prefixBoostRatio)
				clauses = append(clauses, prefix)
			}
		}
	}

	disjunction := bleve.NewDisjunctionQuery(clauses...)
	disjunction.SetMin(1)
	return disjunction
}

func (b *bleveIndex) Search(text string) ([]Hit, error) {
	q := buildQuery(text)
	if q == nil || len(b.entries) == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(q, len(b.entries), 0, false)
	res, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, match := range res.Hits {
		entry, ok := b.entries[match.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{Entry: entry, Score: normalizeScore(match.Score, res.MaxScore)})
	}

	SortHits(hits)
	return hits, nil
}

func (b *bleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

func (b *bleveIndex) Close() error {
	return b.index.Close()
}

// normalizeScore maps a bleve relevance (higher is better) onto [0,1] where
// the best hit of the result set scores 0
func normalizeScore(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 1
	}
	normalized := 1 - score/maxScore
	if normalized < 0 {
		return 0
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}

// SortHits orders hits by score, then title, then path
func SortHits(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score < hits[j].Score
		}
		if hits[i].Entry.Title != hits[j].Entry.Title {
			return hits[i].Entry.Title < hits[j].Entry.Title
		}
		return hits[i].Entry.RelativePath < hits[j].Entry.RelativePath
	})
}
