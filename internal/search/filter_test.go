package search_test

import (
	"testing"

	"github.com/lightprotocol/light-mcp/internal/indexing"
	"github.com/lightprotocol/light-mcp/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	mode, err := search.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, search.ModeSemantic, mode)

	mode, err = search.ParseMode("exact")
	require.NoError(t, err)
	assert.Equal(t, search.ModeExact, mode)

	_, err = search.ParseMode("regex")
	assert.ErrorIs(t, err, search.ErrInvalidMode)
}

func TestParseContentFilter(t *testing.T) {
	t.Parallel()

	filter, err := search.ParseContentFilter("")
	require.NoError(t, err)
	assert.Equal(t, search.FilterAll, filter)

	filter, err = search.ParseContentFilter("examples")
	require.NoError(t, err)
	assert.Equal(t, search.FilterExamples, filter)

	_, err = search.ParseContentFilter("videos")
	assert.ErrorIs(t, err, search.ErrInvalidContentFilter)
}

func TestContentFilter_Matches(t *testing.T) {
	t.Parallel()

	guide := &indexing.DocEntry{Title: "Client guide", Section: "guides", Content: "Set up."}
	method := &indexing.DocEntry{Title: "getThing", Section: "json rpc methods", Content: "Returns.", IsRPCMethod: true}
	concept := &indexing.DocEntry{Title: "Core concepts", Section: "learn", Content: "An example tree."}
	coded := &indexing.DocEntry{Title: "Snippet", Section: "General", Content: "```ts\nx\n```"}

	tests := []struct {
		filter search.ContentFilter
		entry  *indexing.DocEntry
		want   bool
	}{
		{search.FilterAll, method, true},
		{search.FilterGuides, guide, true},
		{search.FilterGuides, method, false},
		{search.FilterReference, method, true},
		{search.FilterReference, guide, false},
		{search.FilterExamples, concept, true},
		{search.FilterExamples, coded, true},
		{search.FilterExamples, guide, false},
		{search.FilterConcepts, concept, true},
		{search.FilterConcepts, method, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.filter.Matches(tt.entry), "%s on %s", tt.filter, tt.entry.Title)
	}
}

func TestInSection(t *testing.T) {
	t.Parallel()

	entry := &indexing.DocEntry{Section: "json rpc methods"}

	assert.True(t, search.InSection(entry, ""))
	assert.True(t, search.InSection(entry, "json-rpc-methods"))
	assert.True(t, search.InSection(entry, "JSON"))
	assert.True(t, search.InSection(entry, "rpc methods"))
	assert.False(t, search.InSection(entry, "tokens"))
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, search.DefaultLimit, search.ClampLimit(0))
	assert.Equal(t, 1, search.ClampLimit(-3))
	assert.Equal(t, 7, search.ClampLimit(7))
	assert.Equal(t, search.MaxLimit, search.ClampLimit(500))
}
