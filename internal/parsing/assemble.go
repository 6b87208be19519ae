package parsing

import (
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// sectionKind is the record field a section body is routed to
type sectionKind int

const (
	kindIgnored sectionKind = iota
	kindSummary
	kindExperience
	kindEducation
	kindSkills
	kindLanguages
	kindCertificates
)

// sectionRoutes are checked in order against the lower-cased section title; the first match wins
var sectionRoutes = []struct {
	kind     sectionKind
	keywords []string
}{
	{kindSummary, []string{"summary", "objective", "profile"}},
	{kindExperience, []string{"experience", "employment", "work history"}},
	{kindEducation, []string{"education", "academic"}},
	{kindSkills, []string{"skill", "abilities", "competencies"}},
	{kindLanguages, []string{"language"}},
	{kindCertificates, []string{"certification", "certificate"}},
}

func routeSection(title string) sectionKind {
	normalized := strings.ToLower(strings.TrimSpace(title))
	for _, route := range sectionRoutes {
		for _, kw := range route.keywords {
			if strings.Contains(normalized, kw) {
				return route.kind
			}
		}
	}
	return kindIgnored
}

// Result is the output of a full parse: the record plus the sections it was assembled from
type Result struct {
	Record   *types.ParsedResumeRecord `json:"record"`
	Sections *types.SectionMap         `json:"sections"`
}

// Parser assembles ParsedResumeRecords from plain text. The zero value is ready to use and safe
// for concurrent use.
type Parser struct{}

// NewParser creates a Parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts contact fields, splits the text into sections and routes each section body
// into the record
func (p *Parser) Parse(text string) Result {
	record := types.NewParsedResumeRecord()

	contact := ExtractContactFields(text)
	record.Name = contact.Name
	record.Email = contact.Email
	record.Phone = contact.Phone
	record.LinkedIn = contact.LinkedIn
	record.Website = contact.Website
	record.Location = contact.Location

	sections := SplitIntoSections(text)
	for _, section := range sections.Sections() {
		body := strings.TrimSpace(section.Body)
		switch routeSection(section.Title) {
		case kindSummary:
			setIfEmpty(&record.Summary, body)
		case kindExperience:
			record.Experiences = append(record.Experiences, ExtractExperiences(body)...)
		case kindEducation:
			record.Education = append(record.Education, ExtractEducation(body)...)
		case kindSkills:
			setIfEmpty(&record.Skills, body)
		case kindLanguages:
			setIfEmpty(&record.Languages, body)
		case kindCertificates:
			setIfEmpty(&record.Certificates, body)
		}
	}

	for i := range record.Experiences {
		record.Experiences[i].ID = i + 1
	}
	for i := range record.Education {
		record.Education[i].ID = i + 1
	}

	if record.JobTitle == "" {
		record.JobTitle = GuessJobTitle(record.Experiences, text)
	}

	return Result{Record: record, Sections: sections}
}

// ParseResumeText parses plain resume text into a record. It never fails; text with no
// recognizable structure yields a record with empty fields.
func ParseResumeText(text string) *types.ParsedResumeRecord {
	return NewParser().Parse(text).Record
}

func setIfEmpty(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
