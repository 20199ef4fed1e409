package search

import (
	"fmt"
	"math"
	"strings"
)

// RelevancePercent converts a 0 = perfect score into a 0-100 percentage
func RelevancePercent(score float64) int {
	return int(math.Round((1 - score) * 100))
}

// NoResultsMessage is returned when a query matches nothing
func NoResultsMessage(query, section string) string {
	msg := fmt.Sprintf("No results found for \"%s\"", query)
	if section != "" {
		msg += fmt.Sprintf(" in section \"%s\"", section)
	}
	return msg
}

// FormatResponse renders a response as the markdown text block returned to
// clients
func FormatResponse(resp *Response) string {
	if len(resp.Results) == 0 {
		return NoResultsMessage(resp.Query, resp.Section)
	}

	var b strings.Builder
	b.WriteString("# ZK Compression Documentation Search Results\n\n")
	fmt.Fprintf(&b, "**Query:** \"%s\"\n", resp.Query)

	searchKind := fmt.Sprintf("(%s search)", resp.Mode)
	if resp.Comprehensive {
		searchKind = "(comprehensive search)"
	}
	fmt.Fprintf(&b, "**Found:** %d result(s) %s\n", len(resp.Results), searchKind)
	fmt.Fprintf(&b, "**Mode:** %s | **Filter:** %s\n\n", resp.Mode, resp.ContentFilter)

	for i, result := range resp.Results {
		entry := result.Entry
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, entry.Title)
		fmt.Fprintf(&b, "**Path:** `%s`\n", entry.RelativePath)
		fmt.Fprintf(&b, "**Section:** %s\n", entry.Section)
		if entry.MethodName != "" {
			fmt.Fprintf(&b, "**Method:** `%s`\n", entry.MethodName)
		}
		fmt.Fprintf(&b, "**Relevance:** %d%%\n\n", RelevancePercent(result.Score))
		b.WriteString("```markdown\n")
		b.WriteString(result.Excerpt)
		b.WriteString("\n```\n\n---\n\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
