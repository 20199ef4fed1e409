package tools

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDataProvider(t *testing.T) {
	t.Parallel()

	p := NewEmbeddedDataProvider()
	assert.Equal(t, "embedded", p.Describe())

	docs, err := fs.Sub(p.FS(), p.Root())
	require.NoError(t, err)

	matches, err := doublestar.Glob(docs, "**/*.md")
	require.NoError(t, err)
	assert.Contains(t, matches, "compressed-tokens/overview.md")
	assert.Contains(t, matches, "json-rpc-methods/rpcmethods.md")
	assert.Contains(t, matches, "json-rpc-methods/getCompressedAccount.md")
	assert.GreaterOrEqual(t, len(matches), 10)
}

func TestDirDataProvider(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "learn"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "learn", "trees.md"), []byte("# Trees\n"), 0o644))

	p := NewDataProvider(dir)
	assert.Equal(t, dir, p.Describe())
	assert.Equal(t, ".", p.Root())

	data, err := fs.ReadFile(p.FS(), "learn/trees.md")
	require.NoError(t, err)
	assert.Equal(t, "# Trees\n", string(data))
}

func TestNewDataProvider_DefaultsToEmbedded(t *testing.T) {
	t.Parallel()

	p := NewDataProvider("")
	assert.Equal(t, embeddedDocsRoot, p.Root())
}
