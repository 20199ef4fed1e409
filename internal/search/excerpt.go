package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lightprotocol/light-mcp/internal/indexing"
)

const (
	// ExcerptBudget is the maximum excerpt length in runes, marker included
	ExcerptBudget = 2000

	// NoRelevantContent replaces an excerpt that came out empty
	NoRelevantContent = "No relevant content found."

	ellipsis          = "\n\n..."
	maxSections       = 3
	fallbackLineCount = 15
	codeFence         = "```"
)

// ExcerptOptions controls which lines survive extraction
type ExcerptOptions struct {
	IncludeCode   bool
	ExpandContext bool
}

// Excerpt trims entry content to the parts relevant to terms. Terms must be
// lowercase.
func Excerpt(entry *indexing.DocEntry, terms []string, opts ExcerptOptions) string {
	var text string
	if entry.IsRPCMethod || entry.IsComprehensiveDoc {
		text = structuredExcerpt(entry.Content, terms, opts)
	} else {
		text = paragraphExcerpt(entry.Content, terms)
	}
	return finalizeExcerpt(text)
}

// structuredExcerpt keeps the outline of reference pages: headings, tables,
// lists and matching lines, stopping once the third heading is emitted
func structuredExcerpt(content string, terms []string, opts ExcerptOptions) string {
	lines := strings.Split(content, "\n")
	lowered := make([]string, len(lines))
	for i, line := range lines {
		lowered[i] = strings.ToLower(line)
	}

	var out []string
	inCode := false
	sections := 0
	for i := 0; i < len(lines) && sections < maxSections; i++ {
		line := lines[i]

		if strings.HasPrefix(line, codeFence) {
			inCode = !inCode
			if opts.IncludeCode {
				out = append(out, line)
			}
			continue
		}

		if inCode {
			if opts.IncludeCode {
				out = append(out, line)
			}
			continue
		}

		if strings.HasPrefix(line, "#") {
			out = append(out, line)
			sections++
			continue
		}

		switch {
		case containsAny(lowered[i], terms):
			out = append(out, line)
		case strings.Contains(line, "|") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-"):
			out = append(out, line)
		case opts.ExpandContext && neighbourMatches(lowered, i, terms):
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

func neighbourMatches(lowered []string, i int, terms []string) bool {
	if i > 0 && containsAny(lowered[i-1], terms) {
		return true
	}
	return i+1 < len(lowered) && containsAny(lowered[i+1], terms)
}

// paragraphExcerpt keeps paragraphs that mention a term, falling back to the
// head of the document. Any whitespace-only line ends a paragraph.
func paragraphExcerpt(content string, terms []string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	var kept []string
	var paragraph []string
	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		joined := strings.Join(paragraph, "\n")
		if containsAny(strings.ToLower(joined), terms) {
			kept = append(kept, joined)
		}
		paragraph = paragraph[:0]
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		paragraph = append(paragraph, line)
	}
	flush()

	if len(kept) > 0 {
		return strings.Join(kept, "\n\n")
	}

	if len(lines) <= fallbackLineCount {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:fallbackLineCount], "\n") + ellipsis
}

func finalizeExcerpt(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return NoRelevantContent
	}
	if utf8.RuneCountInString(text) <= ExcerptBudget {
		return text
	}

	runes := []rune(text)
	cut := strings.TrimRightFunc(string(runes[:ExcerptBudget-utf8.RuneCountInString(ellipsis)]), unicode.IsSpace)
	return cut + ellipsis
}
