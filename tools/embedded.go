package tools

import (
	"embed"
	"io/fs"
)

// Embedded files:
// - ZK Compression documentation (markdown with optional YAML front matter)
// - search_docs input schema (see schema.go)

//go:embed all:data/docs
var embeddedFS embed.FS

const embeddedDocsRoot = "data/docs"

// embeddedDataProvider implements DataProvider using embed.FS.
type embeddedDataProvider struct {
	fs embed.FS
}

// NewEmbeddedDataProvider creates a DataProvider over the documentation
// compiled into the binary.
func NewEmbeddedDataProvider() DataProvider {
	return &embeddedDataProvider{fs: embeddedFS}
}

func (p *embeddedDataProvider) FS() fs.FS        { return p.fs }
func (p *embeddedDataProvider) Root() string     { return embeddedDocsRoot }
func (p *embeddedDataProvider) Describe() string { return "embedded" }
