package search

import (
	"regexp"
	"strings"
)

// Category names a document family that a comprehensive query can enumerate
type Category string

const (
	CategoryNone             Category = ""
	CategoryRPCMethods       Category = "rpc-methods"
	CategoryCompressedTokens Category = "compressed-tokens"
	CategoryCompressedPDAs   Category = "compressed-pdas"
)

var comprehensiveIndicators = []string{"all", "list", "complete", "every", "entire", "full list"}

var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{category: CategoryRPCMethods, words: []string{"rpc", "method", "api"}},
	{category: CategoryCompressedTokens, words: []string{"token"}},
	{category: CategoryCompressedPDAs, words: []string{"pda", "account"}},
}

var indicatorWordRe = regexp.MustCompile(`\b(all|list|complete|every|entire|full)\b`)

const minSearchTermLength = 3

// Intent is the routing decision derived from a raw query
type Intent struct {
	Comprehensive bool
	Category      Category
	SearchTerms   []string
}

// Enumerates reports whether the query bypasses ranking and lists a category
func (i Intent) Enumerates() bool {
	return i.Comprehensive && i.Category != CategoryNone
}

// DetectIntent classifies a query. Matching is substring based so "tokens"
// and "methods" count for their singular keywords.
func DetectIntent(query string) Intent {
	lower := strings.ToLower(query)

	intent := Intent{SearchTerms: searchTerms(lower)}
	for _, indicator := range comprehensiveIndicators {
		if strings.Contains(lower, indicator) {
			intent.Comprehensive = true
			break
		}
	}

	for _, candidate := range categoryKeywords {
		if containsAny(lower, candidate.words) {
			intent.Category = candidate.category
			break
		}
	}

	return intent
}

func searchTerms(lower string) []string {
	stripped := indicatorWordRe.ReplaceAllString(lower, "")

	var terms []string
	for _, word := range strings.Fields(stripped) {
		if len(word) >= minSearchTermLength {
			terms = append(terms, word)
		}
	}
	return terms
}

// ExcerptTerms returns the lowercase query words used to pick excerpt lines
// on the ranked path. Short words are dropped unless nothing else remains.
func ExcerptTerms(query string) []string {
	words := strings.Fields(strings.ToLower(query))

	var terms []string
	for _, word := range words {
		if len(word) >= minSearchTermLength {
			terms = append(terms, word)
		}
	}
	if len(terms) == 0 {
		return words
	}
	return terms
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
