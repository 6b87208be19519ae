// Package observability provides logging setup and formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-parser/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten truncates s to n runes with a trailing "..."
func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintRecord outputs a human-readable summary of a parsed resume record.
func (p *Printer) PrintRecord(record *types.ParsedResumeRecord) {
	if record == nil {
		return
	}
	if record.IsEmpty() {
		p.printBox("PARSED RESUME", "Nothing could be extracted from this document.")
		return
	}

	var sb strings.Builder
	field := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%-10s%s\n", label+":", value))
		}
	}
	field("Name", record.Name)
	field("Title", record.JobTitle)
	field("Email", record.Email)
	field("Phone", record.Phone)
	field("Location", record.Location)
	field("LinkedIn", record.LinkedIn)
	field("Website", record.Website)

	if len(record.Experiences) > 0 {
		sb.WriteString(fmt.Sprintf("\nExperience (%d):\n", len(record.Experiences)))
		count := min(len(record.Experiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := record.Experiences[i]
			sb.WriteString(fmt.Sprintf("  • %s", e.Position))
			if e.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", e.Company))
			}
			sb.WriteString("\n")
			if dates := joinDates(e.StartDate, e.EndDate); dates != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", dates))
			}
		}
		if len(record.Experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Experiences)-maxItemsToShow))
		}
	}

	if len(record.Education) > 0 {
		sb.WriteString(fmt.Sprintf("\nEducation (%d):\n", len(record.Education)))
		count := min(len(record.Education), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := record.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s\n", e.School))
			degree := strings.TrimSpace(strings.Join([]string{e.Degree, e.Field}, " "))
			if degree != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", degree))
			}
		}
		if len(record.Education) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Education)-maxItemsToShow))
		}
	}

	if record.Skills != "" {
		sb.WriteString(fmt.Sprintf("\nSkills: %s\n", firstLine(record.Skills)))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSections outputs each detected section title with its line count.
func (p *Printer) PrintSections(sections *types.SectionMap) {
	if sections == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Detected %d sections:\n\n", sections.Len()))
	for _, s := range sections.Sections() {
		lines := 0
		if s.Body != "" {
			lines = strings.Count(s.Body, "\n") + 1
		}
		sb.WriteString(fmt.Sprintf("• %-30s %3d lines\n", s.Title, lines))
	}

	p.printBox("SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// BatchLine is one row of a batch summary
type BatchLine struct {
	Path     string
	Name     string
	Err      error
	Duration time.Duration
}

// PrintBatchSummary outputs per-file outcomes of a batch run.
func (p *Printer) PrintBatchSummary(lines []BatchLine) {
	if len(lines) == 0 {
		return
	}

	failed := 0
	var sb strings.Builder
	for _, l := range lines {
		if l.Err != nil {
			failed++
			sb.WriteString(fmt.Sprintf("✗ %s\n  %s\n", l.Path, l.Err))
			continue
		}
		name := l.Name
		if name == "" {
			name = "(no name found)"
		}
		sb.WriteString(fmt.Sprintf("✓ %s\n  %s (%s)\n", l.Path, name, l.Duration.Round(time.Millisecond)))
	}
	sb.WriteString(fmt.Sprintf("\n%d parsed, %d failed", len(lines)-failed, failed))

	p.printBox("BATCH RESULTS", sb.String())
}

// PrintValidation outputs the schema validation outcome.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(err error) {
	if err == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ RECORD IS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}
	p.printBox("VALIDATION FAILED", strings.TrimSuffix(err.Error(), "\n"))
}

func joinDates(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
