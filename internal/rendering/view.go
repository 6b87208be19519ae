package rendering

import (
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// Section kinds in render order
const (
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
)

// View is the data passed to HTML templates and walked by the DOCX writer
type View struct {
	Name     string
	JobTitle string
	Contacts []string
	Summary  string
	Sections []ViewSection
	Record   *types.ParsedResumeRecord
}

// ContactLine joins the contact fields for a single header line
func (v View) ContactLine() string {
	return strings.Join(v.Contacts, " | ")
}

// ViewSection is one populated subsection. Entry sections fill Entries; text sections fill Lines.
type ViewSection struct {
	Kind    string
	Title   string
	Entries []ViewEntry
	Lines   []string
}

// ViewEntry is one experience or education entry flattened for display
type ViewEntry struct {
	Heading     string
	Subheading  string
	Dates       string
	Description []string
}

// BuildView converts a record into render order, dropping empty fields and sections
func BuildView(record *types.ParsedResumeRecord) View {
	if record == nil {
		record = types.NewParsedResumeRecord()
	}

	v := View{
		Name:     strings.TrimSpace(record.Name),
		JobTitle: strings.TrimSpace(record.JobTitle),
		Contacts: nonEmpty(record.Email, record.Phone, record.Location, record.LinkedIn, record.Website),
		Summary:  strings.TrimSpace(record.Summary),
		Record:   record,
	}

	if entries := experienceEntries(record.Experiences); len(entries) > 0 {
		v.Sections = append(v.Sections, ViewSection{Kind: SectionExperience, Title: "Experience", Entries: entries})
	}
	if entries := educationEntries(record.Education); len(entries) > 0 {
		v.Sections = append(v.Sections, ViewSection{Kind: SectionEducation, Title: "Education", Entries: entries})
	}
	textSections := []struct {
		kind, title, body string
	}{
		{SectionSkills, "Skills", record.Skills},
		{SectionCertifications, "Certifications", record.Certificates},
		{SectionLanguages, "Languages", record.Languages},
	}
	for _, s := range textSections {
		if lines := splitLines(s.body); len(lines) > 0 {
			v.Sections = append(v.Sections, ViewSection{Kind: s.kind, Title: s.title, Lines: lines})
		}
	}

	return v
}

func experienceEntries(experiences []types.ExperienceEntry) []ViewEntry {
	var entries []ViewEntry
	for _, e := range experiences {
		entry := ViewEntry{
			Heading:     strings.TrimSpace(e.Position),
			Subheading:  strings.TrimSpace(e.Company),
			Dates:       dateRange(e.StartDate, e.EndDate),
			Description: splitLines(e.Description),
		}
		if entry.Heading == "" && entry.Subheading == "" && entry.Dates == "" && len(entry.Description) == 0 {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func educationEntries(education []types.EducationEntry) []ViewEntry {
	var entries []ViewEntry
	for _, e := range education {
		degree := strings.TrimSpace(e.Degree)
		if field := strings.TrimSpace(e.Field); field != "" {
			if degree != "" {
				degree += " in " + field
			} else {
				degree = field
			}
		}
		entry := ViewEntry{
			Heading:    strings.TrimSpace(e.School),
			Subheading: degree,
			Dates:      dateRange(e.StartDate, e.EndDate),
		}
		if entry.Heading == "" && entry.Subheading == "" && entry.Dates == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func dateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
