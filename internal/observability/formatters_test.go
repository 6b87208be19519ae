package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-parser/internal/types"
)

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := types.NewParsedResumeRecord()
	record.Name = "Jane Doe"
	record.Email = "jane@example.com"
	record.Skills = "Go, SQL\nDocker"
	record.Experiences = []types.ExperienceEntry{
		{ID: 1, Company: "Acme Inc", Position: "Senior Engineer", StartDate: "Jan 2020", EndDate: "Present"},
	}
	record.Education = []types.EducationEntry{
		{ID: 1, School: "State University", Degree: "BS", Field: "Physics"},
	}

	p.PrintRecord(record)
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Senior Engineer @ Acme Inc")
	assert.Contains(t, output, "Jan 2020 - Present")
	assert.Contains(t, output, "BS Physics")
	assert.Contains(t, output, "Go, SQL ...")
	assert.NotContains(t, output, "Phone:")
}

func TestPrintRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecord(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRecord_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecord(types.NewParsedResumeRecord())

	assert.Contains(t, buf.String(), "Nothing could be extracted")
}

func TestPrintRecord_TruncatesList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := types.NewParsedResumeRecord()
	for i := 1; i <= 8; i++ {
		record.Experiences = append(record.Experiences, types.ExperienceEntry{ID: i, Position: "Engineer"})
	}

	p.PrintRecord(record)

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintSections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sections := types.NewSectionMap()
	sections.Append(types.HeaderSection, "Jane Doe\njane@example.com")
	sections.Append("SKILLS", "Go")

	p.PrintSections(sections)
	output := buf.String()

	assert.Contains(t, output, "Detected 2 sections")
	assert.Contains(t, output, "Header")
	assert.Contains(t, output, "2 lines")
	assert.Contains(t, output, "SKILLS")
}

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatchSummary([]BatchLine{
		{Path: "a.pdf", Name: "Jane Doe", Duration: 12 * time.Millisecond},
		{Path: "b.txt", Err: errors.New("unsupported file type")},
		{Path: "c.docx"},
	})
	output := buf.String()

	assert.Contains(t, output, "✓ a.pdf")
	assert.Contains(t, output, "✗ b.txt")
	assert.Contains(t, output, "(no name found)")
	assert.Contains(t, output, "2 parsed, 1 failed")
}

func TestPrintValidation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation(nil)
	assert.Contains(t, buf.String(), "RECORD IS VALID")

	buf.Reset()
	p.PrintValidation(errors.New("validation failed:\n  1. name: required\n"))
	assert.Contains(t, buf.String(), "VALIDATION FAILED")
	assert.Contains(t, buf.String(), "name: required")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestInitLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "warn", Format: "json", Out: &buf})

	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestInitLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "loud", Format: "pretty", Out: &buf})

	logger.Debug().Msg("debug event")
	logger.Info().Msg("info event")

	assert.NotContains(t, buf.String(), "debug event")
	assert.Contains(t, buf.String(), "info event")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	InitLogger(LogConfig{Level: "info", Format: "json", Out: &buf})

	logger := Component("server")
	logger.Info().Msg("ready")

	assert.Contains(t, buf.String(), `"component":"server"`)
}
