package indexing

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	// ErrEmptyBody is returned for documents with nothing after the front matter
	ErrEmptyBody = errors.New("document body is empty")
	// ErrEmptyPath is returned when a document has no usable path
	ErrEmptyPath = errors.New("document path is empty")
)

// ClassifyFlags tags a document from its path, title and body.
//
// A reference entry lives under ReferenceFolder and is not a README or the
// methods listing page. A comprehensive entry is the listing page itself, any
// page carrying ListingMarker, or a page whose title mentions "overview" or "all".
func ClassifyFlags(relativePath, title, body string) Flags {
	fileName := strings.ToLower(FileStem(relativePath))
	titleLower := strings.ToLower(title)

	return Flags{
		IsRPCMethod: strings.Contains(relativePath, ReferenceFolder) &&
			!strings.Contains(fileName, "readme") &&
			!strings.Contains(fileName, ListingToken),
		IsComprehensiveDoc: strings.Contains(fileName, ListingToken) ||
			strings.Contains(body, ListingMarker) ||
			strings.Contains(titleLower, "overview") ||
			strings.Contains(titleLower, "all"),
	}
}

// Classify derives a complete DocEntry from a parsed document
func Classify(root, relativePath string, frontmatter map[string]any, body string) (DocEntry, error) {
	relativePath = strings.TrimPrefix(path.Clean("/"+relativePath), "/")
	if relativePath == "" || relativePath == "." {
		return DocEntry{}, ErrEmptyPath
	}
	if strings.TrimSpace(body) == "" {
		return DocEntry{}, fmt.Errorf("%s: %w", relativePath, ErrEmptyBody)
	}
	if frontmatter == nil {
		frontmatter = map[string]any{}
	}

	title := DeriveTitle(frontmatter, relativePath)
	methodName := ExtractMethodName(relativePath, body)
	flags := ClassifyFlags(relativePath, title, body)

	fullPath := relativePath
	if root != "" && root != "." {
		fullPath = path.Join(root, relativePath)
	}

	return DocEntry{
		Path:               fullPath,
		RelativePath:       relativePath,
		Title:              title,
		Content:            body,
		Frontmatter:        frontmatter,
		Section:            DeriveSection(relativePath),
		MethodName:         methodName,
		Keywords:           ExtractKeywords(title, body, methodName),
		IsRPCMethod:        flags.IsRPCMethod,
		IsComprehensiveDoc: flags.IsComprehensiveDoc,
	}, nil
}
