package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`(?:\+\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	linkedInRe = regexp.MustCompile(`linkedin\.com/in/[A-Za-z0-9_-]+`)
	nameRe     = regexp.MustCompile(`^[A-Za-z\s.'-]+$`)
	websiteRe  = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s|,;<>()"']+`)
	locationRe = regexp.MustCompile(`^[A-Z][A-Za-z.'-]*(?:\s+[A-Z][A-Za-z.'-]*)*,\s*(?:[A-Z]{2}|[A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)*)$`)
)

const (
	nameScanLines     = 5
	maxNameLength     = 50
	locationScanLines = 10
)

// commonJobTitles is scanned in order when no experience entry provides a position
var commonJobTitles = []string{
	"Software Engineer",
	"Software Developer",
	"Full Stack Developer",
	"Frontend Developer",
	"Backend Developer",
	"Web Developer",
	"Mobile Developer",
	"DevOps Engineer",
	"Data Scientist",
	"Data Engineer",
	"Data Analyst",
	"Product Manager",
	"Project Manager",
	"Business Analyst",
	"UX Designer",
	"Graphic Designer",
	"Marketing Manager",
}

// ContactFields are the fields extracted from the whole resume text rather than from one section
type ContactFields struct {
	Name     string
	Email    string
	Phone    string
	LinkedIn string
	Website  string
	Location string
}

// ExtractContactFields runs every whole-text extractor over text
func ExtractContactFields(text string) ContactFields {
	return ContactFields{
		Name:     ExtractName(text),
		Email:    ExtractEmail(text),
		Phone:    ExtractPhone(text),
		LinkedIn: ExtractLinkedIn(text),
		Website:  ExtractWebsite(text),
		Location: ExtractLocation(text),
	}
}

// ExtractEmail returns the first email address in text
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// ExtractPhone returns the first 3-3-4 digit phone number in text, with its original punctuation
func ExtractPhone(text string) string {
	return strings.TrimSpace(phoneRe.FindString(text))
}

// ExtractLinkedIn returns the first linkedin.com/in/ profile path in text, without scheme
func ExtractLinkedIn(text string) string {
	return linkedInRe.FindString(text)
}

// ExtractName returns the first of the leading non-blank lines that consists only of letters,
// spaces, periods, apostrophes and hyphens and is shorter than 50 characters
func ExtractName(text string) string {
	for _, line := range leadingLines(text, nameScanLines) {
		if len(line) < maxNameLength && nameRe.MatchString(line) {
			return line
		}
	}
	return ""
}

// ExtractWebsite returns the first URL in text that is not a LinkedIn profile
func ExtractWebsite(text string) string {
	for _, m := range websiteRe.FindAllString(text, -1) {
		if strings.Contains(strings.ToLower(m), "linkedin.com") {
			continue
		}
		return strings.TrimRight(m, ".:")
	}
	return ""
}

// ExtractLocation looks for a "City, ST" or "City, Country" segment in the contact block at the top
// of the resume. Segments are separated by pipes, bullets or tabs. The scan stops at the first
// section header.
func ExtractLocation(text string) string {
	for _, line := range leadingLines(text, locationScanLines) {
		if IsSectionHeader(line) {
			break
		}
		segments := strings.FieldsFunc(line, func(r rune) bool {
			return r == '|' || r == '•' || r == '·' || r == '\t'
		})
		for _, seg := range segments {
			seg = strings.TrimSpace(seg)
			if seg == "" || strings.ContainsAny(seg, "@0123456789") {
				continue
			}
			if locationRe.MatchString(seg) {
				return seg
			}
		}
	}
	return ""
}

// GuessJobTitle returns the position of the first (most recent) experience entry when there is one.
// Otherwise it returns the first common job title found in text, matched case-insensitively.
func GuessJobTitle(experiences []types.ExperienceEntry, text string) string {
	if len(experiences) > 0 {
		return experiences[0].Position
	}
	lower := strings.ToLower(text)
	for _, title := range commonJobTitles {
		if strings.Contains(lower, strings.ToLower(title)) {
			return title
		}
	}
	return ""
}

// leadingLines returns up to n trimmed non-blank lines from the start of text
func leadingLines(text string, n int) []string {
	lines := make([]string, 0, n)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == n {
			break
		}
	}
	return lines
}
