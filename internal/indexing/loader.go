package indexing

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// SkippedDoc records a document that failed to load or classify
type SkippedDoc struct {
	Path string
	Err  error
}

// LoadResult is the outcome of loading a corpus
type LoadResult struct {
	Entries []DocEntry
	Skipped []SkippedDoc
}

const docsPattern = "**/*" + markdownExtension

// Loader reads and classifies markdown documents
type Loader struct {
	log zerolog.Logger
}

// NewLoader creates a loader that reports skipped documents to log
func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{log: log.With().Str("component", "loader").Logger()}
}

// LoadFS loads every *.md file below root in fsys, in lexical path order.
// A document that cannot be read or parsed is logged and skipped.
func (l *Loader) LoadFS(fsys fs.FS, root string) (*LoadResult, error) {
	root = strings.Trim(path.Clean(root), "/")
	if root == "" {
		root = "."
	}

	docs, err := fs.Sub(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("invalid docs root %q: %w", root, err)
	}

	matches, err := doublestar.Glob(docs, docsPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s under %s: %w", docsPattern, root, err)
	}
	sort.Strings(matches)

	l.log.Debug().Int("files", len(matches)).Str("root", root).Msg("found markdown files")

	result := &LoadResult{Entries: make([]DocEntry, 0, len(matches))}
	for _, relativePath := range matches {
		raw, err := fs.ReadFile(docs, relativePath)
		if err != nil {
			l.skip(result, relativePath, fmt.Errorf("failed to read: %w", err))
			continue
		}
		l.add(result, root, relativePath, string(raw))
	}

	return result, nil
}

// LoadTable loads documents from a fixed path → raw text table.
// Paths are treated as docs-relative and processed in lexical order.
func (l *Loader) LoadTable(table map[string]string) *LoadResult {
	paths := make([]string, 0, len(table))
	for p := range table {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	result := &LoadResult{Entries: make([]DocEntry, 0, len(paths))}
	for _, p := range paths {
		l.add(result, "", p, table[p])
	}
	return result
}

func (l *Loader) add(result *LoadResult, root, relativePath, raw string) {
	frontmatter, body, err := SplitFrontMatter(raw)
	if err != nil {
		l.skip(result, relativePath, err)
		return
	}

	entry, err := Classify(root, relativePath, frontmatter, body)
	if err != nil {
		l.skip(result, relativePath, err)
		return
	}

	result.Entries = append(result.Entries, entry)
}

func (l *Loader) skip(result *LoadResult, p string, err error) {
	l.log.Warn().Err(err).Str("path", p).Msg("skipping document")
	result.Skipped = append(result.Skipped, SkippedDoc{Path: p, Err: err})
}
