package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// degreeKeywords are tried in order, so compound names must precede their prefixes
var degreeKeywords = []string{
	"Bachelor of Business Administration",
	"Bachelor of Engineering",
	"Bachelor of Technology",
	"Bachelor of Science",
	"Bachelor of Arts",
	"Master of Business Administration",
	"Master of Engineering",
	"Master of Technology",
	"Master of Science",
	"Master of Arts",
	"Doctor of Philosophy",
	"Associate of Science",
	"Associate of Arts",
	"Bachelor's", "Bachelors", "Bachelor",
	"Master's", "Masters", "Master",
	"Ph.D.", "Ph.D", "PhD",
	"Doctorate", "Doctor",
	"Diploma", "Certificate", "Degree", "Associate",
	"B.Sc.", "BSc", "M.Sc.", "MSc",
	"B.Tech", "M.Tech", "BEng", "MEng",
	"MBA",
	"B.S.", "BS", "M.S.", "MS",
	"B.A.", "BA", "M.A.", "MA",
}

var (
	degreeAlternation = quoteAll(degreeKeywords)

	// degreeLineRe finds a degree keyword that is not part of a longer word
	degreeLineRe = regexp.MustCompile(`(?:^|[^\pL])(?:` + degreeAlternation + `)(?:[^\pL]|$)`)

	// degreeSplitRe separates "Bachelor of Science in Computer Science" into degree and field
	degreeSplitRe = regexp.MustCompile(`(?:^|[^\pL])(` + degreeAlternation + `)(?:(?:\s+(?:of|in|on))?\s+([^,]+))?`)

	dateLeftoverRe = regexp.MustCompile(`^[\s,|·•()\-–]+|[\s,|·•()\-–]+$`)
)

// ExtractEducation segments an education section body into entries. A block starts at every
// month-year token, year range or bare year; entries are numbered from 1 in document order.
func ExtractEducation(body string) []types.EducationEntry {
	blocks := splitBlocks(body, educationBoundaryRe)
	entries := make([]types.EducationEntry, 0, len(blocks))
	for i, block := range blocks {
		entry := parseEducationBlock(block)
		entry.ID = i + 1
		entries = append(entries, entry)
	}
	return entries
}

func parseEducationBlock(block string) types.EducationEntry {
	var entry types.EducationEntry

	if m := yearRangeRe.FindStringSubmatch(block); m != nil {
		entry.StartDate = m[1]
		entry.EndDate = m[2]
	} else if m := monthYearRangeRe.FindStringSubmatch(block); m != nil {
		entry.StartDate = strings.TrimSpace(m[1])
		entry.EndDate = strings.TrimSpace(m[2])
	}

	lines := nonEmptyLines(block)
	schoolIdx := -1
	for i, line := range lines {
		if school := stripDates(line.text); school != "" {
			entry.School = school
			schoolIdx = i
			break
		}
	}
	if schoolIdx < 0 {
		return entry
	}

	for _, line := range lines[schoolIdx+1:] {
		if !degreeLineRe.MatchString(line.text) {
			continue
		}
		if m := degreeSplitRe.FindStringSubmatch(line.text); m != nil && strings.TrimSpace(m[2]) != "" {
			entry.Degree = strings.TrimSpace(m[1])
			entry.Field = stripDates(m[2])
		} else {
			entry.Degree = line.text
		}
		break
	}

	return entry
}

// stripDates removes date tokens from a line along with the separators they leave behind
func stripDates(line string) string {
	stripped := educationBoundaryRe.ReplaceAllString(line, " ")
	stripped = dateLeftoverRe.ReplaceAllString(stripped, "")
	return strings.Join(strings.Fields(stripped), " ")
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
