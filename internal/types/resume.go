// Package types provides type definitions for structured data used throughout the resume-parser system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RawDocument is an uploaded resume file before text extraction
type RawDocument struct {
	FileName string
	MimeType string
	Data     []byte
}

// ExperienceEntry represents one job segmented from an Experience section
type ExperienceEntry struct {
	ID          int    `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// EducationEntry represents one degree segmented from an Education section
type EducationEntry struct {
	ID        int    `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ParsedResumeRecord is the structured result of parsing resume text.
// Skills, languages and certificates are kept as raw section text.
type ParsedResumeRecord struct {
	Name         string            `json:"name"`
	JobTitle     string            `json:"jobTitle"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Location     string            `json:"location"`
	LinkedIn     string            `json:"linkedin"`
	Website      string            `json:"website"`
	Summary      string            `json:"summary"`
	Experiences  []ExperienceEntry `json:"experiences"`
	Education    []EducationEntry  `json:"education"`
	Skills       string            `json:"skills"`
	Languages    string            `json:"languages"`
	Certificates string            `json:"certificates"`
}

// NewParsedResumeRecord returns an empty record whose slices encode as [] rather than null
func NewParsedResumeRecord() *ParsedResumeRecord {
	return &ParsedResumeRecord{
		Experiences: []ExperienceEntry{},
		Education:   []EducationEntry{},
	}
}

// IsEmpty reports whether nothing at all was extracted.
// Callers use it to offer manual entry instead of showing a blank result.
func (r *ParsedResumeRecord) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Name == "" && r.JobTitle == "" && r.Email == "" && r.Phone == "" &&
		r.Location == "" && r.LinkedIn == "" && r.Website == "" && r.Summary == "" &&
		len(r.Experiences) == 0 && len(r.Education) == 0 &&
		r.Skills == "" && r.Languages == "" && r.Certificates == ""
}

// Normalize replaces nil slices with empty ones, e.g. after decoding a client-supplied record
func (r *ParsedResumeRecord) Normalize() {
	if r.Experiences == nil {
		r.Experiences = []ExperienceEntry{}
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
}
