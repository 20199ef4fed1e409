package search_test

import (
	"testing"

	"github.com/lightprotocol/light-mcp/internal/search"
	"github.com/stretchr/testify/assert"
)

func TestDetectIntent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query         string
		comprehensive bool
		category      search.Category
		terms         []string
	}{
		{"list all rpc methods", true, search.CategoryRPCMethods, []string{"rpc", "methods"}},
		{"Show me EVERY API endpoint", true, search.CategoryRPCMethods, []string{"show", "api", "endpoint"}},
		{"how do compressed tokens work", false, search.CategoryCompressedTokens, []string{"how", "compressed", "tokens", "work"}},
		{"complete pda guide", true, search.CategoryCompressedPDAs, []string{"pda", "guide"}},
		{"the full list of accounts", true, search.CategoryCompressedPDAs, []string{"the", "accounts"}},
		{"install the sdk", true, search.CategoryNone, []string{"install", "the", "sdk"}},
		{"state trees", false, search.CategoryNone, []string{"state", "trees"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()

			intent := search.DetectIntent(tt.query)
			assert.Equal(t, tt.comprehensive, intent.Comprehensive)
			assert.Equal(t, tt.category, intent.Category)
			assert.Equal(t, tt.terms, intent.SearchTerms)
			assert.Equal(t, tt.comprehensive && tt.category != search.CategoryNone, intent.Enumerates())
		})
	}
}

func TestExcerptTerms(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"compressed", "token"}, search.ExcerptTerms("a Compressed token"))
	assert.Equal(t, []string{"an", "id"}, search.ExcerptTerms("an ID"))
	assert.Empty(t, search.ExcerptTerms("   "))
}
