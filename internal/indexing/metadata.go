package indexing

import (
	"path"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const markdownExtension = ".md"

var (
	singleWordRegex   = regexp.MustCompile(`^\w+$`)
	unspacedHeadingRe = regexp.MustCompile(`^#(\w+)$`)
	methodMentionRe   = regexp.MustCompile("(?i)`(\\w+)`.*method")
	inlineCodeTermRe  = regexp.MustCompile("`[a-zA-Z][a-zA-Z0-9_]*`")
	camelBoundaryRe   = regexp.MustCompile(`([A-Z])`)
)

// FileStem returns the final path element without its .md extension
// Example: "json-rpc-methods/getCompressedAccount.md" -> "getCompressedAccount"
func FileStem(p string) string {
	return strings.TrimSuffix(path.Base(p), markdownExtension)
}

// DeriveSection returns the first directory of a docs-relative path with hyphens
// turned into spaces, or DefaultSection for files in the docs root
// Example: "compressed-tokens/overview.md" -> "compressed tokens"
func DeriveSection(relativePath string) string {
	parts := strings.Split(relativePath, "/")
	if len(parts) < 2 || parts[0] == "" {
		return DefaultSection
	}
	return strings.ReplaceAll(parts[0], "-", " ")
}

// DeriveTitle picks the front matter title or falls back to the filename
func DeriveTitle(frontmatter map[string]any, relativePath string) string {
	title := frontMatterString(frontmatter, "title")
	if title == "" {
		title = strings.ReplaceAll(FileStem(relativePath), "-", " ")
	}
	return capitalize(title)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ExtractMethodName detects the API method a document describes.
// Filenames starting with "get" win; otherwise the body is scanned for a
// single-word H1 heading, then for a `token` mentioned together with "method".
func ExtractMethodName(relativePath, content string) string {
	stem := FileStem(relativePath)
	if strings.HasPrefix(stem, "get") {
		return stem
	}

	if heading := firstSingleWordHeading(content); heading != "" {
		return heading
	}

	if matches := methodMentionRe.FindStringSubmatch(content); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// firstSingleWordHeading walks the markdown AST so that "# comment" lines
// inside fenced code are not mistaken for headings. Only "#" lines count:
// setext headings are skipped, and "#word" without a space (a paragraph to
// CommonMark) is accepted.
func firstSingleWordHeading(content string) string {
	src := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var found string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Document:
			return ast.WalkContinue, nil
		case *ast.Heading:
			if node.Level == 1 && isATXHeading(node, src) {
				title := strings.TrimSpace(string(node.Text(src)))
				if singleWordRegex.MatchString(title) {
					found = title
					return ast.WalkStop, nil
				}
			}
		case *ast.Paragraph:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				line := strings.TrimSpace(string(seg.Value(src)))
				if m := unspacedHeadingRe.FindStringSubmatch(line); m != nil {
					found = m[1]
					return ast.WalkStop, nil
				}
			}
		}
		return ast.WalkSkipChildren, nil
	})
	return found
}

// isATXHeading reports whether the heading line starts with '#'
func isATXHeading(heading *ast.Heading, src []byte) bool {
	lines := heading.Lines()
	if lines.Len() == 0 {
		return false
	}
	start := lines.At(0).Start
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	return strings.HasPrefix(strings.TrimLeft(string(src[start:lines.At(0).Start]), " "), "#")
}

// SplitCamelCase breaks an identifier into lowercase words
// Example: "getCompressedAccount" -> ["get", "compressed", "account"]
func SplitCamelCase(identifier string) []string {
	spaced := camelBoundaryRe.ReplaceAllString(identifier, " $1")
	return strings.Fields(strings.ToLower(spaced))
}

// ExtractKeywords builds the deduplicated keyword set for a document
func ExtractKeywords(title, content, methodName string) []string {
	keywordMap := make(map[string]struct{})
	add := func(word string) {
		if len(word) > MinKeywordLength {
			keywordMap[word] = struct{}{}
		}
	}

	for _, word := range strings.Fields(strings.ToLower(title)) {
		add(word)
	}

	if methodName != "" {
		add(strings.ToLower(methodName))
		for _, word := range SplitCamelCase(methodName) {
			add(word)
		}
	}

	for _, term := range inlineCodeTermRe.FindAllString(content, -1) {
		add(strings.ToLower(strings.Trim(term, "`")))
	}

	contentLower := strings.ToLower(content)
	for _, term := range DomainTerms {
		if strings.Contains(contentLower, term) {
			keywordMap[term] = struct{}{}
		}
	}

	keywords := make([]string, 0, len(keywordMap))
	for word := range keywordMap {
		keywords = append(keywords, word)
	}
	sort.Strings(keywords)
	return keywords
}
