package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/export"
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir|file>...",
	Short: "Parse many resumes concurrently",
	Long:  "Parse every PDF and DOCX file given, expanding directories one level deep. A failing file is reported and does not stop the others.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

var (
	batchConcurrency int
	batchXLSXFile    string
	batchJSONFile    string
)

func init() {
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Files parsed in parallel (default from config)")
	batchCmd.Flags().StringVar(&batchXLSXFile, "xlsx", "", "Write a spreadsheet of the parsed records to this path")
	batchCmd.Flags().StringVar(&batchJSONFile, "json", "", "Write all results as JSON to this path")

	rootCmd.AddCommand(batchCmd)
}

// batchResult is one entry of the --json output
type batchResult struct {
	Path   string                    `json:"path"`
	Record *types.ParsedResumeRecord `json:"record,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths, err := pipeline.CollectDocuments(args)
	if err != nil {
		return fmt.Errorf("failed to collect documents: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF or DOCX files found")
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = appConfig.BatchConcurrency
	}

	items := newPipeline().ParseBatch(cmd.Context(), paths, concurrency)

	var (
		lines   = make([]observability.BatchLine, 0, len(items))
		rows    = make([]export.Row, 0, len(items))
		results = make([]batchResult, 0, len(items))
		failed  int
	)
	for _, item := range items {
		line := observability.BatchLine{Path: item.Path, Err: item.Err, Duration: item.Duration}
		res := batchResult{Path: item.Path}
		if item.Err != nil {
			failed++
			res.Error = item.Err.Error()
		} else {
			line.Name = item.Result.Record.Name
			res.Record = item.Result.Record
			rows = append(rows, export.Row{FileName: item.Result.Metadata.FileName, Record: item.Result.Record})
		}
		lines = append(lines, line)
		results = append(results, res)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintBatchSummary(lines)

	if batchJSONFile != "" {
		if err := writeJSON(cmd.OutOrStdout(), batchJSONFile, results); err != nil {
			return err
		}
	}
	if batchXLSXFile != "" {
		data, err := export.WriteXLSX(rows)
		if err != nil {
			return err
		}
		if err := os.WriteFile(batchXLSXFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write spreadsheet: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(items))
	}
	return nil
}
