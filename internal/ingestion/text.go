package ingestion

import (
	"regexp"
	"strings"
)

var (
	inlineSpaceRe  = regexp.MustCompile(`[ \t\f\v]+`)
	excessBlanksRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted document text while preserving its line structure.
// Line breaks drive section detection, so lines are never merged.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")
	content = strings.ReplaceAll(content, "\u200b", "")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of inline whitespace, keeping a single level of indentation
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	content := inlineSpaceRe.ReplaceAllString(trimmed, " ")
	if isBulletLine(trimmed) && len(line) > len(trimmed) {
		return "  " + content
	}
	return content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ")
}

// removeExcessiveBlankLines reduces consecutive blank lines to max 2
func removeExcessiveBlankLines(content string) string {
	return excessBlanksRe.ReplaceAllString(content, "\n\n")
}
