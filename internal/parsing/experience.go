package parsing

import (
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// companyMarkers identify a line as the employer rather than the job title
var companyMarkers = []string{"Inc", "LLC", "Ltd"}

// ExtractExperiences segments an experience section body into entries. Each month-year token
// starts a new entry; entries are numbered from 1 in document order.
func ExtractExperiences(body string) []types.ExperienceEntry {
	blocks := splitBlocks(body, experienceBoundaryRe)
	entries := make([]types.ExperienceEntry, 0, len(blocks))
	for i, block := range blocks {
		entry := parseExperienceBlock(block)
		entry.ID = i + 1
		entries = append(entries, entry)
	}
	return entries
}

func parseExperienceBlock(block string) types.ExperienceEntry {
	var entry types.ExperienceEntry

	if m := monthYearRangeRe.FindStringSubmatch(block); m != nil {
		entry.StartDate = strings.TrimSpace(m[1])
		entry.EndDate = strings.TrimSpace(m[2])
	}

	lines := nonEmptyLines(block)
	companyIdx := -1
	for i, line := range lines {
		if !monthYearRangeRe.MatchString(line.text) {
			companyIdx = i
			break
		}
	}
	if companyIdx < 0 {
		return entry
	}

	companyLine := lines[companyIdx]
	descStart := companyLine.end
	positionText := ""
	if companyIdx+1 < len(lines) {
		positionText = lines[companyIdx+1].text
		descStart = lines[companyIdx+1].end
	}

	// Without a marker the first line is taken as the title and the second as the employer.
	if hasCompanyMarker(companyLine.text) {
		entry.Company = companyLine.text
		entry.Position = positionText
	} else {
		entry.Company = positionText
		entry.Position = companyLine.text
	}

	entry.Description = strings.TrimSpace(block[descStart:])
	return entry
}

func hasCompanyMarker(line string) bool {
	for _, marker := range companyMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
