// Package main provides the resume_parser command line tool and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/observability"
)

var (
	configPath string
	verbose    bool
	logLevel   string
	logFormat  string

	// set by loadSettings before any command runs
	appConfig *config.Config
	logger    = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "resume_parser",
	Short: "Resume parser and document generator",
	Long: "resume_parser extracts text from PDF and DOCX resumes, parses it into a structured record, " +
		"and renders records back to HTML, PDF or DOCX. It can also run as a REST API server.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed summaries")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: json or pretty")
}

// loadSettings resolves the effective configuration (file, env, then flags) and sets up logging
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	logger = observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    cmd.ErrOrStderr(),
	})
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
