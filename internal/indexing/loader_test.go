package indexing_test

import (
	"testing"
	"testing/fstest"

	"github.com/lightprotocol/light-mcp/internal/indexing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus() fstest.MapFS {
	return fstest.MapFS{
		"docs/intro.md": {Data: []byte("# Intro\n\nZK Compression reduces state cost.\n")},
		"docs/json-rpc-methods/getcompressedaccount.md": {Data: []byte(
			"---\ntitle: getCompressedAccount\n---\nReturns the compressed `account` by hash.\n")},
		"docs/json-rpc-methods/README.md": {Data: []byte("# Methods\n\nSee the listing.\n")},
		"docs/compressed-tokens/overview.md": {Data: []byte(
			"---\ntitle: Compressed Tokens Overview\n---\nCompressed token accounts.\n")},
		"docs/broken/bad-yaml.md":    {Data: []byte("---\ntitle: [oops\n---\nbody\n")},
		"docs/broken/only-header.md": {Data: []byte("---\ntitle: Empty\n---\n")},
		"docs/notes.txt":             {Data: []byte("not markdown")},
		"other/ignored.md":           {Data: []byte("outside root")},
	}
}

func TestLoader_LoadFS(t *testing.T) {
	t.Parallel()

	loader := indexing.NewLoader(zerolog.Nop())
	result, err := loader.LoadFS(testCorpus(), "docs")
	require.NoError(t, err)

	paths := make([]string, 0, len(result.Entries))
	for _, entry := range result.Entries {
		paths = append(paths, entry.RelativePath)
	}
	assert.Equal(t, []string{
		"compressed-tokens/overview.md",
		"intro.md",
		"json-rpc-methods/README.md",
		"json-rpc-methods/getcompressedaccount.md",
	}, paths, "entries keep lexical source order")

	require.Len(t, result.Skipped, 2, "bad documents are skipped, not fatal")
	assert.Equal(t, "broken/bad-yaml.md", result.Skipped[0].Path)
	assert.ErrorIs(t, result.Skipped[1].Err, indexing.ErrEmptyBody)

	for _, entry := range result.Entries {
		assert.NotEmpty(t, entry.Title, entry.RelativePath)
		assert.NotEmpty(t, entry.Content, entry.RelativePath)
		assert.NotEmpty(t, entry.Section, entry.RelativePath)
		assert.Equal(t, "docs/"+entry.RelativePath, entry.Path)
	}

	overview := result.Entries[0]
	assert.Equal(t, "Compressed Tokens Overview", overview.Title)
	assert.True(t, overview.IsComprehensiveDoc)

	intro := result.Entries[1]
	assert.Equal(t, indexing.DefaultSection, intro.Section)
	assert.Equal(t, "Intro", intro.MethodName)
}

func TestLoader_LoadFSRootDot(t *testing.T) {
	t.Parallel()

	loader := indexing.NewLoader(zerolog.Nop())
	result, err := loader.LoadFS(fstest.MapFS{
		"a.md":     {Data: []byte("alpha")},
		"sub/b.md": {Data: []byte("beta")},
	}, ".")
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "a.md", result.Entries[0].Path)
	assert.Equal(t, "sub", result.Entries[1].Section)
}

func TestLoader_LoadTable(t *testing.T) {
	t.Parallel()

	loader := indexing.NewLoader(zerolog.Nop())
	result := loader.LoadTable(map[string]string{
		"learn/b.md": "beta",
		"learn/a.md": "alpha",
		"bad.md":     "---\nnever closed",
	})

	require.Len(t, result.Entries, 2)
	assert.Equal(t, "learn/a.md", result.Entries[0].RelativePath)
	assert.Equal(t, "learn/b.md", result.Entries[1].RelativePath)
	require.Len(t, result.Skipped, 1)
	assert.ErrorIs(t, result.Skipped[0].Err, indexing.ErrUnterminatedFrontMatter)
}
