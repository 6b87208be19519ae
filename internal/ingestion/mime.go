package ingestion

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// IsGenericMimeType reports whether a declared type carries no information about the content
func IsGenericMimeType(mimeType string) bool {
	switch NormalizeMimeType(mimeType) {
	case "", "application/octet-stream", "binary/octet-stream", "application/zip":
		return true
	}
	return false
}

// DetectMimeType sniffs the MIME type of document content, without parameters
func DetectMimeType(data []byte) string {
	return NormalizeMimeType(mimetype.Detect(data).String())
}

// DetectMimeTypeFile sniffs the MIME type of a file on disk
func DetectMimeTypeFile(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	return NormalizeMimeType(mt.String()), nil
}
