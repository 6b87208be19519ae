// Package ingestion turns uploaded resume documents into cleaned plain text.
package ingestion

import (
	"context"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// Supported input MIME types
const (
	MimeTypePDF  = types.MimeTypePDF
	MimeTypeDOCX = types.MimeTypeDOCX
)

// ExtractText extracts plain text from a PDF or DOCX document.
// The returned text is normalized with CleanText.
func ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	mt := NormalizeMimeType(mimeType)
	if mt != MimeTypePDF && mt != MimeTypeDOCX {
		return "", &UnsupportedFileTypeError{MimeType: mt}
	}
	if len(data) == 0 {
		return "", &ExtractionError{MimeType: mt, Message: "document is empty"}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		raw string
		err error
	)
	switch mt {
	case MimeTypePDF:
		raw, err = extractPDF(ctx, data)
	case MimeTypeDOCX:
		raw, err = extractDOCX(data)
	}
	if err != nil {
		return "", err
	}
	return CleanText(raw), nil
}

// ExtractDocument extracts text from a RawDocument, sniffing the MIME type when none was declared
func ExtractDocument(ctx context.Context, doc types.RawDocument) (string, error) {
	mt := doc.MimeType
	if IsGenericMimeType(mt) {
		mt = DetectMimeType(doc.Data)
	}
	return ExtractText(ctx, doc.Data, mt)
}

// NormalizeMimeType lowercases a MIME type and drops any parameters
func NormalizeMimeType(mimeType string) string {
	mt := mimeType
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
