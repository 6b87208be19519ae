package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-parser/internal/types"
)

// ParsedResume represents a stored parse result
type ParsedResume struct {
	ID        uuid.UUID                 `json:"id"`
	FileName  string                    `json:"file_name"`
	MimeType  string                    `json:"mime_type"`
	TextHash  string                    `json:"text_hash"`
	RawText   string                    `json:"raw_text,omitempty"`
	Sections  *types.SectionMap         `json:"sections,omitempty"`
	Record    *types.ParsedResumeRecord `json:"record"`
	CreatedAt time.Time                 `json:"created_at"`
}

// ParsedResumeInput holds the fields needed to store a parse result
type ParsedResumeInput struct {
	FileName string
	MimeType string
	RawText  string
	Sections *types.SectionMap
	Record   *types.ParsedResumeRecord
}

// Listing bounds for ListParsedResumes
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)
