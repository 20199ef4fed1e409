package tools

import (
	"io/fs"
	"os"
)

// DataProvider supplies the markdown corpus the search index is built from.
//
// Implementations:
//   - embeddedDataProvider: documentation compiled into the binary
//   - dirDataProvider: a documentation tree on disk
type DataProvider interface {
	// FS returns the filesystem holding the corpus
	FS() fs.FS

	// Root is the documentation root inside FS (e.g., "data/docs")
	Root() string

	// Describe names the source for log lines
	Describe() string
}

// dirDataProvider serves a documentation directory from disk
type dirDataProvider struct {
	dir string
	fs  fs.FS
}

// NewDirDataProvider creates a DataProvider over a local documentation tree
func NewDirDataProvider(dir string) DataProvider {
	return &dirDataProvider{dir: dir, fs: os.DirFS(dir)}
}

func (p *dirDataProvider) FS() fs.FS        { return p.fs }
func (p *dirDataProvider) Root() string     { return "." }
func (p *dirDataProvider) Describe() string { return p.dir }

// NewDataProvider returns the directory provider when dir is set and the
// embedded corpus otherwise
func NewDataProvider(dir string) DataProvider {
	if dir != "" {
		return NewDirDataProvider(dir)
	}
	return NewEmbeddedDataProvider()
}
