package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a PDF or DOCX resume into a structured record",
	Long:  "Extract text from a PDF or DOCX resume and print the parsed record as JSON. The file type is detected from its content.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var (
	parseOutputFile string
	parseSections   bool
	parseStore      bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	parseCmd.Flags().BoolVar(&parseSections, "sections", false, "Include the detected sections in the output")
	parseCmd.Flags().BoolVar(&parseStore, "store", false, "Save the result to the database (requires DATABASE_URL)")

	rootCmd.AddCommand(parseCmd)
}

// parseOutput is the JSON written by the parse command
type parseOutput struct {
	ID       string                    `json:"id,omitempty"`
	Metadata *ingestion.Metadata       `json:"metadata"`
	Record   *types.ParsedResumeRecord `json:"record"`
	Sections *types.SectionMap         `json:"sections,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	result, err := newPipeline().ParseFile(ctx, args[0])
	if err != nil {
		return err
	}

	out := parseOutput{Metadata: result.Metadata, Record: result.Record}
	if parseSections {
		out.Sections = result.Sections
	}

	if parseStore {
		database, err := connectStore(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		stored, err := database.SaveParsedResume(ctx, &db.ParsedResumeInput{
			FileName: result.Metadata.FileName,
			MimeType: result.Metadata.MimeType,
			RawText:  result.Text,
			Sections: result.Sections,
			Record:   result.Record,
		})
		if err != nil {
			return err
		}
		out.ID = stored.ID.String()
		logger.Info().Str("id", out.ID).Msg("parse result stored")
	}

	if p := verbosePrinter(cmd); p != nil {
		p.PrintRecord(result.Record)
	}

	if err := writeJSON(cmd.OutOrStdout(), parseOutputFile, out); err != nil {
		return err
	}
	if parseOutputFile != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", parseOutputFile)
	}
	return nil
}
