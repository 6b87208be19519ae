// Package parsing turns plain resume text into a structured ParsedResumeRecord using
// keyword and date heuristics. Every function in this package is total: unrecognized input
// produces empty fields, never an error.
package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-parser/internal/types"
)

// sectionKeywords are matched case-insensitively by substring containment
var sectionKeywords = []string{
	"summary", "objective", "profile",
	"experience", "employment", "work history",
	"education", "academic",
	"skill", "abilities", "competencies",
	"languages",
	"certifications", "certificates",
	"projects",
	"references",
}

// IsSectionHeader reports whether a trimmed line looks like a section header: it contains a
// section keyword and is either fully upper-case or starts with an upper-case letter.
// Short body lines that happen to contain a keyword ("Education Corp") are accepted as headers.
func IsSectionHeader(line string) bool {
	if line == "" {
		return false
	}
	lower := strings.ToLower(line)
	found := false
	for _, kw := range sectionKeywords {
		if strings.Contains(lower, kw) {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if strings.ToUpper(line) == line {
		return true
	}
	first, _ := utf8.DecodeRuneInString(line)
	return unicode.IsUpper(first)
}

// SplitIntoSections groups the non-blank lines of text under the header line that precedes them.
// Lines before the first header go to the "Header" section. Header lines themselves are keys,
// not body content.
func SplitIntoSections(text string) *types.SectionMap {
	sections := types.NewSectionMap()
	current := types.HeaderSection
	var body []string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if IsSectionHeader(line) {
			sections.Append(current, strings.Join(body, "\n"))
			current = line
			body = body[:0]
			continue
		}
		body = append(body, line)
	}
	sections.Append(current, strings.Join(body, "\n"))

	return sections
}
