// Package rendering generates HTML, PDF and DOCX documents from parsed resume records.
package rendering

import (
	"fmt"

	"github.com/jonathan/resume-parser/internal/types"
)

// TemplateError represents an error parsing or executing an HTML template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure to produce a document in the requested format
type RenderError struct {
	Format  types.Format
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error (%s): %s", e.Format, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
