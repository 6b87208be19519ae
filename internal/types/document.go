package types

import (
	"fmt"
	"strings"
)

// Format is an output document format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

// Supported MIME types for uploaded and generated documents
const (
	MimeTypePDF  = "application/pdf"
	MimeTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTypeHTML = "text/html; charset=utf-8"
)

// ParseFormat converts a user-supplied format name into a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected pdf, docx or html)", s)
	}
}

// ContentType returns the MIME type of documents in this format
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return MimeTypePDF
	case FormatDOCX:
		return MimeTypeDOCX
	default:
		return MimeTypeHTML
	}
}

// Extension returns the file extension for this format, without the dot
func (f Format) Extension() string {
	return string(f)
}

// Template describes a custom rendering template.
// Both fields empty means the built-in default template.
type Template struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
}

// IsDefault reports whether the built-in template should be used
func (t Template) IsDefault() bool {
	return strings.TrimSpace(t.HTML) == "" && strings.TrimSpace(t.CSS) == ""
}
