package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/server"
	"github.com/jonathan/resume-parser/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes parsing and rendering endpoints. Stored results are available when DATABASE_URL is set.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := appConfig.Port
	if servePort > 0 {
		port = servePort
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	cfg := server.Config{
		Port:           port,
		MaxUploadBytes: appConfig.MaxUploadBytes,
		Pipeline:       pipeline.New(pipeline.Options{Logger: logger.With().Str("component", "pipeline").Logger()}),
		Renderer:       renderer,
		RateLimit:      ratelimit.LoadConfigFromEnv(),
		Logger:         logger.With().Str("component", "server").Logger(),
	}

	if appConfig.DatabaseURL != "" {
		database, err := connectStore(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		cfg.Store = database
	} else {
		logger.Warn().Msg("DATABASE_URL not set; storage endpoints are disabled")
	}

	return server.New(cfg).Run(ctx)
}
