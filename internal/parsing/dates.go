package parsing

import (
	"regexp"
	"strings"
)

const (
	monthPattern     = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`
	monthYearPattern = `\b` + monthPattern + `\.?,?\s+\d{4}\b`
	rangeSepPattern  = `\s*(?:-|–|to|until)\s*`
	openEndPattern   = `(?:Present|Current)\b`
)

var (
	// monthYearRangeRe captures the start and end of "Jan 2020 - Present" style ranges
	monthYearRangeRe = regexp.MustCompile(`(?i)(` + monthYearPattern + `)` + rangeSepPattern +
		`(` + monthYearPattern + `|` + openEndPattern + `)`)

	// yearRangeRe captures the start and end of "2016 - 2020" style ranges
	yearRangeRe = regexp.MustCompile(`(?i)(\d{4})` + rangeSepPattern + `(\d{4}|` + openEndPattern + `)`)

	// experienceBoundaryRe marks where an experience block begins. A full range is consumed as a
	// single token so its right side does not open another block.
	experienceBoundaryRe = regexp.MustCompile(`(?i)` + monthYearPattern +
		`(?:` + rangeSepPattern + `(?:` + monthYearPattern + `|` + openEndPattern + `))?`)

	// educationBoundaryRe marks where an education block begins: a month and year, a year range or
	// a bare year, tried in that order
	educationBoundaryRe = regexp.MustCompile(`(?i)` + monthYearPattern +
		`(?:` + rangeSepPattern + `(?:` + monthYearPattern + `|\d{4}\b|` + openEndPattern + `))?` +
		`|\b\d{4}` + rangeSepPattern + `(?:\d{4}\b|` + openEndPattern + `)` +
		`|\b\d{4}\b`)
)

// splitBlocks cuts text at the start of every boundary match. Text before the first match is a
// block of its own. Blocks that are blank after trimming are dropped.
func splitBlocks(text string, boundary *regexp.Regexp) []string {
	starts := []int{0}
	for _, loc := range boundary.FindAllStringIndex(text, -1) {
		if loc[0] > 0 {
			starts = append(starts, loc[0])
		}
	}

	blocks := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if block := strings.TrimSpace(text[start:end]); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// blockLine is a trimmed non-empty line of a block and the offset just past its end
type blockLine struct {
	text string
	end  int
}

func nonEmptyLines(block string) []blockLine {
	var lines []blockLine
	offset := 0
	for _, raw := range strings.SplitAfter(block, "\n") {
		offset += len(raw)
		if line := strings.TrimSpace(raw); line != "" {
			end := offset
			if strings.HasSuffix(raw, "\n") {
				end--
			}
			lines = append(lines, blockLine{text: line, end: end})
		}
	}
	return lines
}
