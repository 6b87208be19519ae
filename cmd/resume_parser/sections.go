package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/observability"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "Show the sections detected in a resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

var sectionsJSON bool

func init() {
	sectionsCmd.Flags().BoolVar(&sectionsJSON, "json", false, "Print the sections as JSON instead of a summary")

	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	result, err := newPipeline().ParseFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if sectionsJSON {
		return writeJSON(cmd.OutOrStdout(), "", result.Sections)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSections(result.Sections)
	return nil
}
