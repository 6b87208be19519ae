package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/rendering"
	"github.com/jonathan/resume-parser/internal/types"
)

const sampleText = `Jane Doe
jane@example.com
+1 555-123-4567
EXPERIENCE
Jan 2020 - Present
Acme Inc
Senior Engineer
Built systems.
EDUCATION
2014 - 2018
State University
Bachelor of Science in Physics`

func fixedExtract(text string) ExtractFunc {
	return func(_ context.Context, _ []byte, _ string) (string, error) {
		return text, nil
	}
}

func TestParseDocument_UsesExtractor(t *testing.T) {
	var events []ProgressEvent
	p := New(Options{
		Logger:     zerolog.Nop(),
		Extract:    fixedExtract(sampleText),
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})

	result, err := p.ParseDocument(context.Background(), types.RawDocument{
		FileName: "jane.pdf",
		MimeType: types.MimeTypePDF,
		Data:     []byte("%PDF-1.4"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.Record.Name)
	assert.Equal(t, "jane@example.com", result.Record.Email)
	require.Len(t, result.Record.Experiences, 1)
	assert.Equal(t, "Acme Inc", result.Record.Experiences[0].Company)
	require.Len(t, result.Record.Education, 1)
	assert.Equal(t, "State University", result.Record.Education[0].School)

	require.NotNil(t, result.Metadata)
	assert.Equal(t, "jane.pdf", result.Metadata.FileName)
	assert.Equal(t, sampleText, result.Text)

	require.Len(t, events, 3)
	assert.Equal(t, StepExtract, events[0].Step)
	assert.Equal(t, StepParse, events[1].Step)
	assert.Equal(t, StepValidate, events[2].Step)
}

func TestParseDocument_ExtractionErrorIsWrapped(t *testing.T) {
	p := New(Options{Logger: zerolog.Nop()})

	_, err := p.ParseDocument(context.Background(), types.RawDocument{
		FileName: "notes.txt",
		MimeType: "text/plain",
		Data:     []byte("hello"),
	})
	require.Error(t, err)

	var unsupported *ingestion.UnsupportedFileTypeError
	assert.True(t, errors.As(err, &unsupported))
	assert.Contains(t, err.Error(), "notes.txt")
}

func TestParseDocument_SkipValidation(t *testing.T) {
	var events []ProgressEvent
	p := New(Options{
		Logger:         zerolog.Nop(),
		Extract:        fixedExtract(""),
		OnProgress:     func(e ProgressEvent) { events = append(events, e) },
		SkipValidation: true,
	})

	result, err := p.ParseDocument(context.Background(), types.RawDocument{MimeType: types.MimeTypePDF, Data: []byte("x")})
	require.NoError(t, err)
	assert.True(t, result.Record.IsEmpty())
	for _, e := range events {
		assert.NotEqual(t, StepValidate, e.Step)
	}
}

func TestParseText(t *testing.T) {
	p := New(Options{Logger: zerolog.Nop()})

	result, err := p.ParseText("Jane Doe\r\njane@example.com\r\n\r\n\r\n\r\nSKILLS\r\nGo, SQL")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.Record.Name)
	assert.Equal(t, "Go, SQL", result.Record.Skills)
	assert.Equal(t, "text/plain", result.Metadata.MimeType)
	assert.NotContains(t, result.Text, "\r")
}

func writeDocx(t *testing.T, dir, name string) string {
	t.Helper()
	record := types.NewParsedResumeRecord()
	record.Name = "Jane Doe"
	record.Email = "jane@example.com"
	record.Experiences = []types.ExperienceEntry{{
		ID: 1, Company: "Acme Inc", Position: "Engineer", StartDate: "Jan 2020", EndDate: "Present",
	}}

	data, err := rendering.RenderDOCX(rendering.BuildView(record))
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestParseFile_Docx(t *testing.T) {
	path := writeDocx(t, t.TempDir(), "jane.docx")
	p := New(Options{Logger: zerolog.Nop()})

	result, err := p.ParseFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.Record.Name)
	assert.Equal(t, "jane@example.com", result.Record.Email)
	assert.Equal(t, types.MimeTypeDOCX, result.Metadata.MimeType)
	assert.Equal(t, "jane.docx", result.Metadata.FileName)
}

func TestParseFile_NotFound(t *testing.T) {
	p := New(Options{Logger: zerolog.Nop()})

	_, err := p.ParseFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestMimeTypeForExtension(t *testing.T) {
	assert.Equal(t, types.MimeTypePDF, MimeTypeForExtension("a/b/CV.PDF"))
	assert.Equal(t, types.MimeTypeDOCX, MimeTypeForExtension("cv.docx"))
	assert.Empty(t, MimeTypeForExtension("cv.doc"))
	assert.Empty(t, MimeTypeForExtension("cv"))
}

func TestParseBatch_KeepsOrderAndIsolatesErrors(t *testing.T) {
	dir := t.TempDir()
	first := writeDocx(t, dir, "first.docx")
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("plain text notes"), 0o644))
	missing := filepath.Join(dir, "missing.docx")
	second := writeDocx(t, dir, "second.docx")

	p := New(Options{Logger: zerolog.Nop()})
	items := p.ParseBatch(context.Background(), []string{first, notes, missing, second}, 2)

	require.Len(t, items, 4)
	assert.Equal(t, first, items[0].Path)
	assert.NoError(t, items[0].Err)
	assert.Equal(t, "Jane Doe", items[0].Result.Record.Name)

	var unsupported *ingestion.UnsupportedFileTypeError
	assert.True(t, errors.As(items[1].Err, &unsupported))
	assert.Nil(t, items[1].Result)

	assert.Error(t, items[2].Err)

	assert.Equal(t, second, items[3].Path)
	assert.NoError(t, items[3].Err)
}

func TestParseBatch_RespectsConcurrencyLimit(t *testing.T) {
	var (
		mu       sync.Mutex
		inFlight int
		peak     int
	)
	extract := func(_ context.Context, _ []byte, _ string) (string, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		defer func() {
			mu.Lock()
			inFlight--
			mu.Unlock()
		}()
		return sampleText, nil
	}

	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644))
		paths = append(paths, path)
	}

	p := New(Options{Logger: zerolog.Nop(), Extract: extract})
	items := p.ParseBatch(context.Background(), paths, 2)

	require.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, paths[i], item.Path)
		assert.NoError(t, item.Err)
	}
	assert.LessOrEqual(t, peak, 2)
}

func TestParseBatch_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeDocx(t, dir, "cv.docx")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(Options{Logger: zerolog.Nop()})
	items := p.ParseBatch(ctx, []string{path, path}, 0)

	require.Len(t, items, 2)
	for _, item := range items {
		assert.ErrorIs(t, item.Err, context.Canceled)
	}
}

func TestCollectDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.docx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755))
	single := filepath.Join(dir, "notes.txt")

	paths, err := CollectDocuments([]string{dir, single})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.docx"),
		filepath.Join(dir, "b.pdf"),
		single,
	}, paths)

	_, err = CollectDocuments([]string{filepath.Join(dir, "nope")})
	assert.Error(t, err)
}
