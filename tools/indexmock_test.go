package tools

import (
	"fmt"
	"io/fs"
	"sync/atomic"
	"testing/fstest"

	"github.com/lightprotocol/light-mcp/internal/search"
)

// mockIndex is a simple in-memory mock of the search.Index interface for testing
type mockIndex struct {
	hits        []search.Hit
	searchError error
	closeError  error
	closed      atomic.Bool
	searches    atomic.Int32
}

func (m *mockIndex) Search(text string) ([]search.Hit, error) {
	if m.closed.Load() {
		return nil, fmt.Errorf("index closed")
	}
	m.searches.Add(1)
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.hits, nil
}

func (m *mockIndex) DocCount() (uint64, error) {
	return uint64(len(m.hits)), nil
}

func (m *mockIndex) Close() error {
	if m.closed.Load() {
		return fmt.Errorf("already closed")
	}
	m.closed.Store(true)
	return m.closeError
}

// IsClosed returns true if the index has been closed
func (m *mockIndex) IsClosed() bool {
	return m.closed.Load()
}

// mapDataProvider serves an in-memory corpus
type mapDataProvider struct {
	files fstest.MapFS
}

func newMapDataProvider(files map[string]string) *mapDataProvider {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys["docs/"+name] = &fstest.MapFile{Data: []byte(content)}
	}
	return &mapDataProvider{files: fsys}
}

func (p *mapDataProvider) FS() fs.FS        { return p.files }
func (p *mapDataProvider) Root() string     { return "docs" }
func (p *mapDataProvider) Describe() string { return "memory" }
