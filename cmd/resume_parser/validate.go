package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <record.json>",
	Short: "Validate a record JSON file against the record schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var validateSchemaFile string

func init() {
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Validate against this schema file instead of the built-in record schema")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var err error
	if validateSchemaFile != "" {
		err = schemas.ValidateJSON(validateSchemaFile, args[0])
	} else {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return fmt.Errorf("failed to read record file: %w", readErr)
		}
		err = schemas.ValidateRecordJSON(data)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(err)
	if err != nil {
		return fmt.Errorf("%s is not a valid record", args[0])
	}
	return nil
}
