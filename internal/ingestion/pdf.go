package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// wordGap is the horizontal gap, as a fraction of font size, above which two text runs on a row are
// treated as separate words
const wordGap = 0.15

func extractPDF(ctx context.Context, data []byte) (text string, err error) {
	// The decoder panics on some malformed xref tables and content streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{MimeType: MimeTypePDF, Message: fmt.Sprintf("pdf decoder panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{MimeType: MimeTypePDF, Message: "failed to open PDF", Cause: err}
	}

	totalPages := reader.NumPage()
	pages := make([]string, 0, totalPages)
	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := pageText(page)
		if err != nil {
			return "", &ExtractionError{
				MimeType: MimeTypePDF,
				Message:  fmt.Sprintf("failed to read page %d", i),
				Cause:    err,
			}
		}
		if strings.TrimSpace(content) != "" {
			pages = append(pages, content)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}

// pageText rebuilds the visual lines of a page from its text rows
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil || len(rows) == 0 {
		return page.GetPlainText(nil)
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line := joinRow(row.Content); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return page.GetPlainText(nil)
	}
	return strings.Join(lines, "\n"), nil
}

// joinRow concatenates the text runs of one row, inserting a space where the layout leaves a
// visible gap between runs
func joinRow(runs pdf.TextHorizontal) string {
	var sb strings.Builder
	var prevEnd float64
	for i, t := range runs {
		if i > 0 {
			gap := t.X - prevEnd
			if gap > t.FontSize*wordGap && !endsWithSpace(&sb) && !strings.HasPrefix(t.S, " ") {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	return sb.String()
}

func endsWithSpace(sb *strings.Builder) bool {
	s := sb.String()
	return s != "" && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t')
}
