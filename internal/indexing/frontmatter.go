package indexing

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// ErrUnterminatedFrontMatter is returned when the opening delimiter has no closing line.
var ErrUnterminatedFrontMatter = errors.New("unterminated front matter")

// SplitFrontMatter separates a leading YAML block delimited by "---" lines from the body.
// Documents without front matter return an empty map and the input unchanged.
func SplitFrontMatter(raw string) (map[string]any, string, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	data := map[string]any{}

	firstLine, rest, found := strings.Cut(raw, "\n")
	if strings.TrimRight(firstLine, " \t\r") != frontMatterDelimiter {
		return data, raw, nil
	}
	if !found {
		return nil, "", ErrUnterminatedFrontMatter
	}

	var header strings.Builder
	for {
		line, remaining, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, " \t\r") == frontMatterDelimiter {
			if err := yaml.Unmarshal([]byte(header.String()), &data); err != nil {
				return nil, "", fmt.Errorf("invalid front matter: %w", err)
			}
			if data == nil {
				data = map[string]any{}
			}
			if !more {
				return data, "", nil
			}
			return data, remaining, nil
		}
		if !more {
			return nil, "", ErrUnterminatedFrontMatter
		}
		header.WriteString(line)
		header.WriteString("\n")
		rest = remaining
	}
}

// frontMatterString returns a trimmed string field, or "" when absent or not a string.
func frontMatterString(data map[string]any, key string) string {
	value, ok := data[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
