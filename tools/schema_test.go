package tools

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/lightprotocol/light-mcp/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violationPaths(err error) []string {
	var argsErr *ArgumentsError
	if !errors.As(err, &argsErr) {
		return nil
	}
	paths := make([]string, 0, len(argsErr.Violations))
	for _, v := range argsErr.Violations {
		paths = append(paths, v.Path)
	}
	return paths
}

func TestArgumentsValidator_Decode(t *testing.T) {
	t.Parallel()

	v, err := NewArgumentsValidator()
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		input, err := v.Decode([]byte(`{"query":"token","limit":3,"mode":"exact","include_code":false}`))
		require.NoError(t, err)
		assert.Equal(t, "token", input.Query)
		assert.Equal(t, 3, input.Limit)

		req := input.Request()
		assert.Equal(t, "exact", req.Mode)
		assert.Equal(t, "all", req.ContentFilter)
		assert.False(t, req.IncludeCode)
		assert.True(t, req.ExpandContext)
	})

	t.Run("missing query", func(t *testing.T) {
		t.Parallel()

		_, err := v.Decode([]byte(`{"limit":3}`))
		require.ErrorIs(t, err, ErrInvalidArguments)
		assert.Contains(t, violationPaths(err), "$")
	})

	t.Run("empty query", func(t *testing.T) {
		t.Parallel()

		_, err := v.Decode([]byte(`{"query":""}`))
		require.ErrorIs(t, err, ErrInvalidArguments)
		assert.Contains(t, violationPaths(err), "$.query")
	})

	t.Run("unknown mode", func(t *testing.T) {
		t.Parallel()

		_, err := v.Decode([]byte(`{"query":"x","mode":"regex"}`))
		require.ErrorIs(t, err, ErrInvalidArguments)
		assert.Contains(t, violationPaths(err), "$.mode")
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Parallel()

		_, err := v.Decode([]byte(`{"query":"x","limit":"five"}`))
		require.ErrorIs(t, err, ErrInvalidArguments)
		assert.Contains(t, violationPaths(err), "$.limit")
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		_, err := v.Decode([]byte(`{"query":`))
		require.ErrorIs(t, err, ErrInvalidArguments)
		assert.Equal(t, []string{"$"}, violationPaths(err))
	})
}

func TestSearchDocsSchema(t *testing.T) {
	t.Parallel()

	var schema struct {
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(SearchDocsSchema(), &schema))

	assert.Equal(t, []string{"query"}, schema.Required)
	for _, name := range []string{"query", "limit", "section", "mode", "content_filter", "expand_context", "include_code"} {
		assert.Contains(t, schema.Properties, name)
	}
}

func TestIsInvalidRequest(t *testing.T) {
	t.Parallel()

	assert.True(t, IsInvalidRequest(&ArgumentsError{}))
	assert.True(t, IsInvalidRequest(search.ErrEmptyQuery))
	assert.True(t, IsInvalidRequest(search.ErrInvalidMode))
	assert.True(t, IsInvalidRequest(search.ErrInvalidContentFilter))
	assert.False(t, IsInvalidRequest(errors.New("disk on fire")))
	assert.False(t, IsInvalidRequest(ErrNotReady))
}
