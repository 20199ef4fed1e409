package indexing

// DocEntry is one loaded and classified markdown document.
// Entries are built once at startup and never mutated afterwards.
type DocEntry struct {
	Path         string         `json:"path"`          // Path inside the corpus filesystem
	RelativePath string         `json:"relative_path"` // Path relative to the documentation root, used as the index ID
	Title        string         `json:"title"`
	Content      string         `json:"content"` // Body with front matter stripped
	Frontmatter  map[string]any `json:"frontmatter,omitempty"`
	Section      string         `json:"section"`
	MethodName   string         `json:"method_name,omitempty"` // Empty unless a reference method was detected
	Keywords     []string       `json:"keywords,omitempty"`    // Deduplicated, sorted
	IsRPCMethod  bool           `json:"is_rpc_method"`
	// IsComprehensiveDoc marks overview/listing pages covering many methods at once
	IsComprehensiveDoc bool `json:"is_comprehensive_doc"`
}

// Flags holds the heuristic document-type tags.
type Flags struct {
	IsRPCMethod        bool
	IsComprehensiveDoc bool
}
