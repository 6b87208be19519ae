// Package export writes parsed resume records to spreadsheet workbooks.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/resume-parser/internal/types"
)

// Sheet names in the exported workbook
const (
	SheetResumes    = "Resumes"
	SheetExperience = "Experience"
	SheetEducation  = "Education"
)

const maxDescriptionLength = 140

// Row is one parsed resume to export, labelled by the file it came from
type Row struct {
	FileName string
	Record   *types.ParsedResumeRecord
}

type sheetSpec struct {
	name    string
	headers []string
	widths  []float64
}

var sheets = []sheetSpec{
	{
		name: SheetResumes,
		headers: []string{
			"File", "Name", "Job Title", "Email", "Phone", "Location", "LinkedIn", "Website",
			"Experience Entries", "Education Entries", "Skills",
		},
		widths: []float64{28, 24, 24, 30, 18, 22, 36, 32, 12, 12, 60},
	},
	{
		name:    SheetExperience,
		headers: []string{"File", "ID", "Company", "Position", "Start", "End", "Description"},
		widths:  []float64{28, 6, 28, 28, 14, 14, 60},
	},
	{
		name:    SheetEducation,
		headers: []string{"File", "ID", "School", "Degree", "Field", "Start", "End"},
		widths:  []float64{28, 6, 32, 28, 28, 14, 14},
	},
}

// WriteXLSX returns an XLSX workbook with one sheet of resume summaries and one sheet each for
// experience and education entries. Rows with a nil record are skipped.
func WriteXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeRow(f, s.name, 1, toValues(s.headers)); err != nil {
			return nil, err
		}
		for i, width := range s.widths {
			col, _ := excelize.ColumnNumberToName(i + 1)
			_ = f.SetColWidth(s.name, col, col, width)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	index, _ := f.GetSheetIndex(SheetResumes)
	f.SetActiveSheet(index)

	resumeRow, expRow, eduRow := 2, 2, 2
	for _, r := range rows {
		rec := r.Record
		if rec == nil {
			continue
		}

		err := writeRow(f, SheetResumes, resumeRow, []any{
			r.FileName, rec.Name, rec.JobTitle, rec.Email, rec.Phone, rec.Location, rec.LinkedIn,
			rec.Website, len(rec.Experiences), len(rec.Education), rec.Skills,
		})
		if err != nil {
			return nil, err
		}
		resumeRow++

		for _, e := range rec.Experiences {
			err := writeRow(f, SheetExperience, expRow, []any{
				r.FileName, e.ID, e.Company, e.Position, e.StartDate, e.EndDate,
				truncate(e.Description, maxDescriptionLength),
			})
			if err != nil {
				return nil, err
			}
			expRow++
		}

		for _, e := range rec.Education {
			err := writeRow(f, SheetEducation, eduRow, []any{
				r.FileName, e.ID, e.School, e.Degree, e.Field, e.StartDate, e.EndDate,
			})
			if err != nil {
				return nil, err
			}
			eduRow++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toValues(headers []string) []any {
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	return values
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n == 1 {
		return string(runes[:1])
	}
	return string(runes[:n-1]) + "…"
}
