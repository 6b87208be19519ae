package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/jonathan/resume-parser/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a parsed resume record to HTML, PDF or DOCX",
	Long:  "Render a record JSON file through the built-in or a custom HTML template. PDF output drives headless Chrome.",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

var (
	renderRecordFile string
	renderFormat     string
	renderHTMLFile   string
	renderCSSFile    string
	renderOutputFile string
)

func init() {
	renderCmd.Flags().StringVarP(&renderRecordFile, "record", "r", "", "Path to record JSON file")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "pdf", "Output format: pdf, docx or html")
	renderCmd.Flags().StringVar(&renderHTMLFile, "html", "", "Path to a custom HTML template")
	renderCmd.Flags().StringVar(&renderCSSFile, "css", "", "Path to a custom stylesheet")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output file (default resume.<format>)")

	_ = renderCmd.MarkFlagRequired("record")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	format, err := types.ParseFormat(renderFormat)
	if err != nil {
		return err
	}

	record, err := readRecord(renderRecordFile)
	if err != nil {
		return err
	}

	var tmpl types.Template
	if renderHTMLFile != "" {
		data, err := os.ReadFile(renderHTMLFile)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		tmpl.HTML = string(data)
	}
	if renderCSSFile != "" {
		data, err := os.ReadFile(renderCSSFile)
		if err != nil {
			return fmt.Errorf("failed to read stylesheet: %w", err)
		}
		tmpl.CSS = string(data)
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	out, err := renderer.GenerateDocument(cmd.Context(), record, tmpl, format)
	if err != nil {
		return err
	}

	outputFile := renderOutputFile
	if outputFile == "" {
		outputFile = "resume." + format.Extension()
	}
	if err := os.WriteFile(outputFile, out, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s (%d bytes)\n", outputFile, len(out))
	return nil
}

// readRecord loads a record JSON file and checks it against the record schema
func readRecord(path string) (*types.ParsedResumeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	var record types.ParsedResumeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse record JSON: %w", err)
	}
	record.Normalize()

	if err := schemas.ValidateRecord(&record); err != nil {
		return nil, fmt.Errorf("record does not validate against schema: %w", err)
	}
	return &record, nil
}
