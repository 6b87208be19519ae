package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/rendering"
)

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(pipeline.Options{Logger: logger.With().Str("component", "pipeline").Logger()})
}

func newRenderer() (*rendering.Renderer, error) {
	timeout, err := appConfig.RenderTimeoutDuration()
	if err != nil {
		return nil, err
	}
	return rendering.NewRenderer(
		rendering.WithPDFPrinter(rendering.NewChromePrinter(appConfig.ChromePath, timeout)),
		rendering.WithLogger(logger.With().Str("component", "rendering").Logger()),
	), nil
}

// verbosePrinter returns a printer on stderr in verbose mode, nil otherwise
func verbosePrinter(cmd *cobra.Command) *observability.Printer {
	if !appConfig.Verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

// connectStore opens the database named by the configuration and makes sure the schema exists
func connectStore(ctx context.Context) (*db.DB, error) {
	if appConfig.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required (set it in the environment or the config file)")
	}
	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
