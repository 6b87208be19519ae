package rendering

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/types"
)

type fakePrinter struct {
	out      []byte
	err      error
	received []byte
}

func (f *fakePrinter) PrintPDF(_ context.Context, html []byte) ([]byte, error) {
	f.received = html
	return f.out, f.err
}

func sampleRecord() *types.ParsedResumeRecord {
	r := types.NewParsedResumeRecord()
	r.Name = "Jane Doe"
	r.JobTitle = "Software Engineer"
	r.Email = "jane@x.io"
	r.Phone = "555-123-4567"
	r.Location = "Austin, TX"
	r.Summary = "Builds reliable backend systems."
	r.Experiences = []types.ExperienceEntry{{
		ID:          1,
		Company:     "Acme Inc",
		Position:    "Senior Engineer",
		StartDate:   "Jan 2020",
		EndDate:     "Present",
		Description: "Built internal tools.",
	}}
	r.Education = []types.EducationEntry{{
		ID:        1,
		School:    "State University",
		Degree:    "Bachelor of Science",
		Field:     "Computer Science",
		StartDate: "2016",
		EndDate:   "2020",
	}}
	r.Skills = "Go, Python"
	return r
}

func parseHTML(t *testing.T, data []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func TestGenerateDocument_DefaultHTML(t *testing.T) {
	r := NewRenderer()

	out, err := r.GenerateDocument(context.Background(), sampleRecord(), types.Template{}, types.FormatHTML)
	require.NoError(t, err)

	doc := parseHTML(t, out)
	assert.Equal(t, "Jane Doe", doc.Find("h1.name").Text())
	assert.Equal(t, "Software Engineer", doc.Find(".job-title").Text())
	assert.Equal(t, "jane@x.io | 555-123-4567 | Austin, TX", doc.Find(".contact").Text())
	assert.Contains(t, doc.Find("head style").Text(), ".resume-header")

	var titles []string
	doc.Find("section h2").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	assert.Equal(t, []string{"Summary", "Experience", "Education", "Skills"}, titles)
	assert.Equal(t, "Senior Engineer", doc.Find("section.experience .entry-heading").Text())
	assert.Equal(t, "Jan 2020 - Present", doc.Find("section.experience .entry-dates").Text())
	assert.Equal(t, "Bachelor of Science in Computer Science", doc.Find("section.education .entry-subheading").Text())
}

func TestGenerateDocument_OmitsEmptySections(t *testing.T) {
	record := types.NewParsedResumeRecord()
	record.Name = "Jane Doe"
	record.Languages = "English\nSpanish"

	out, err := NewRenderer().GenerateDocument(context.Background(), record, types.Template{}, types.FormatHTML)
	require.NoError(t, err)

	doc := parseHTML(t, out)
	assert.Equal(t, 0, doc.Find("section.experience").Length())
	assert.Equal(t, 0, doc.Find("section.education").Length())
	assert.Equal(t, 0, doc.Find("section.summary").Length())
	assert.Equal(t, 0, doc.Find(".contact").Length())
	assert.Equal(t, 2, doc.Find("section.languages p").Length())
}

func TestGenerateDocument_CustomTemplateAndCSS(t *testing.T) {
	tmpl := types.Template{
		HTML: `<html><head><title>cv</title></head><body><h1>{{.Name}}</h1>{{range .Sections}}<h2>{{upper .Title}}</h2>{{end}}</body></html>`,
		CSS:  "h1 { color: red; }",
	}

	out, err := NewRenderer().GenerateDocument(context.Background(), sampleRecord(), tmpl, types.FormatHTML)
	require.NoError(t, err)

	doc := parseHTML(t, out)
	assert.Equal(t, "Jane Doe", doc.Find("h1").Text())
	assert.Equal(t, "h1 { color: red; }", trimSpace(doc.Find("head style").Text()))
	assert.Equal(t, "EXPERIENCE", doc.Find("h2").First().Text())
}

func TestGenerateDocument_CustomTemplateWithoutHead(t *testing.T) {
	tmpl := types.Template{HTML: `<p class="n">{{.Record.Email}}</p>`, CSS: "p { margin: 0; }"}

	out, err := NewRenderer().GenerateDocument(context.Background(), sampleRecord(), tmpl, types.FormatHTML)
	require.NoError(t, err)

	doc := parseHTML(t, out)
	assert.Equal(t, "jane@x.io", doc.Find("p.n").Text())
	assert.Equal(t, 1, doc.Find("head style").Length())
}

func TestGenerateDocument_CSSOnlyUsesDefaultHTML(t *testing.T) {
	out, err := NewRenderer().GenerateDocument(context.Background(), sampleRecord(), types.Template{CSS: "body { color: blue; }"}, types.FormatHTML)
	require.NoError(t, err)

	doc := parseHTML(t, out)
	assert.Equal(t, "Jane Doe", doc.Find("h1.name").Text())
	style := doc.Find("head style").Text()
	assert.Contains(t, style, "color: blue")
	assert.NotContains(t, style, ".resume-header")
}

func TestGenerateDocument_EscapesRecordText(t *testing.T) {
	record := sampleRecord()
	record.Name = "<script>alert(1)</script>"

	out, err := NewRenderer().GenerateDocument(context.Background(), record, types.Template{}, types.FormatHTML)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "<script>")
	assert.Equal(t, "<script>alert(1)</script>", parseHTML(t, out).Find("h1.name").Text())
}

func TestGenerateDocument_TemplateErrors(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"parse error", "<h1>{{.Name</h1>"},
		{"execute error", "<h1>{{.Missing}}</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRenderer().GenerateDocument(context.Background(), sampleRecord(), types.Template{HTML: tt.html}, types.FormatHTML)

			var renderErr *RenderError
			require.True(t, errors.As(err, &renderErr))
			assert.Equal(t, types.FormatHTML, renderErr.Format)

			var templateErr *TemplateError
			assert.True(t, errors.As(err, &templateErr))
		})
	}
}

func TestGenerateDocument_PDF(t *testing.T) {
	printer := &fakePrinter{out: []byte("%PDF-1.7 fake")}
	r := NewRenderer(WithPDFPrinter(printer))

	out, err := r.GenerateDocument(context.Background(), sampleRecord(), types.Template{}, types.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.7 fake"), out)
	assert.Contains(t, string(printer.received), "Jane Doe")
	assert.Contains(t, string(printer.received), "<style>")
}

func TestGenerateDocument_PDFPrinterFailure(t *testing.T) {
	printErr := errors.New("chrome not found")
	r := NewRenderer(WithPDFPrinter(&fakePrinter{err: printErr}))

	_, err := r.GenerateDocument(context.Background(), sampleRecord(), types.Template{}, types.FormatPDF)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, types.FormatPDF, renderErr.Format)
	assert.ErrorIs(t, err, printErr)
}

func TestGenerateDocument_EmptyOutputIsError(t *testing.T) {
	r := NewRenderer(WithPDFPrinter(&fakePrinter{out: nil}))

	_, err := r.GenerateDocument(context.Background(), sampleRecord(), types.Template{}, types.FormatPDF)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Contains(t, renderErr.Message, "empty")
}

func TestGenerateDocument_UnsupportedFormat(t *testing.T) {
	_, err := NewRenderer().GenerateDocument(context.Background(), sampleRecord(), types.Template{}, types.Format("rtf"))

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, types.Format("rtf"), renderErr.Format)
}

// A generated DOCX reads back through extraction and parsing to the same record.
func TestGenerateDocument_DOCXRoundTrip(t *testing.T) {
	original := sampleRecord()

	out, err := NewRenderer().GenerateDocument(context.Background(), original, types.Template{}, types.FormatDOCX)
	require.NoError(t, err)

	text, err := ingestion.ExtractText(context.Background(), out, types.MimeTypeDOCX)
	require.NoError(t, err)

	parsed := parsing.ParseResumeText(text)
	assert.Equal(t, original.Name, parsed.Name)
	assert.Equal(t, original.Email, parsed.Email)
	assert.Equal(t, original.Phone, parsed.Phone)
	assert.Equal(t, original.Location, parsed.Location)
	assert.Equal(t, original.Summary, parsed.Summary)
	assert.Equal(t, original.Experiences, parsed.Experiences)
	assert.Equal(t, original.Education, parsed.Education)
	assert.Equal(t, original.Skills, parsed.Skills)
}

func TestGenerateDocument_DOCXEmptyRecord(t *testing.T) {
	out, err := NewRenderer().GenerateDocument(context.Background(), types.NewParsedResumeRecord(), types.Template{}, types.FormatDOCX)
	require.NoError(t, err)

	text, err := ingestion.ExtractText(context.Background(), out, types.MimeTypeDOCX)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestBuildView_NilRecord(t *testing.T) {
	v := BuildView(nil)

	assert.Empty(t, v.Name)
	assert.Empty(t, v.Sections)
	assert.NotNil(t, v.Record)
}

func TestBuildView_SkipsBlankEntries(t *testing.T) {
	record := types.NewParsedResumeRecord()
	record.Experiences = []types.ExperienceEntry{{ID: 1}, {ID: 2, Company: "Acme Inc"}}
	record.Education = []types.EducationEntry{{ID: 1}}

	v := BuildView(record)

	require.Len(t, v.Sections, 1)
	assert.Equal(t, SectionExperience, v.Sections[0].Kind)
	require.Len(t, v.Sections[0].Entries, 1)
	assert.Equal(t, "Acme Inc", v.Sections[0].Entries[0].Subheading)
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt;", EscapeXML("a & b <c>"))
	assert.Equal(t, "ok", EscapeXML("o\x01k"))
	assert.Equal(t, "", EscapeXML(""))
}

func trimSpace(s string) string {
	return string(bytes.TrimSpace([]byte(s)))
}
