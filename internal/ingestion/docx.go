package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

// maxDocxPartSize caps the decompressed size of word/document.xml
const maxDocxPartSize = 32 << 20

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{MimeType: MimeTypeDOCX, Message: "not a valid DOCX package", Cause: err}
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			body = f
			break
		}
	}
	if body == nil {
		return "", &ExtractionError{MimeType: MimeTypeDOCX, Message: "missing " + docxBodyPart}
	}

	rc, err := body.Open()
	if err != nil {
		return "", &ExtractionError{MimeType: MimeTypeDOCX, Message: "failed to open " + docxBodyPart, Cause: err}
	}
	defer func() { _ = rc.Close() }()

	text, err := documentText(io.LimitReader(rc, maxDocxPartSize))
	if err != nil {
		return "", &ExtractionError{MimeType: MimeTypeDOCX, Message: "failed to decode " + docxBodyPart, Cause: err}
	}
	return text, nil
}

// documentText walks WordprocessingML tokens and emits text runs, tabs and breaks.
// Every paragraph ends with a newline.
func documentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("xml token: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
