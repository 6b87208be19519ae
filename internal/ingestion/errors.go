package ingestion

import "fmt"

// UnsupportedFileTypeError is returned when a document's MIME type has no decoder
type UnsupportedFileTypeError struct {
	MimeType string
}

func (e *UnsupportedFileTypeError) Error() string {
	if e.MimeType == "" {
		return "unsupported file type: no MIME type given"
	}
	return fmt.Sprintf("unsupported file type: %s", e.MimeType)
}

// ExtractionError wraps a decoder failure on a supported document
type ExtractionError struct {
	MimeType string
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed (%s): %s: %v", e.MimeType, e.Message, e.Cause)
	}
	return fmt.Sprintf("text extraction failed (%s): %s", e.MimeType, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
