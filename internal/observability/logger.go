package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogConfig controls the process-wide logger
type LogConfig struct {
	Level        string    `json:"level" yaml:"level"`                 // trace, debug, info, warn, error
	Format       string    `json:"format" yaml:"format"`               // json or pretty
	TimeFormat   string    `json:"time_format" yaml:"time_format"`     // timestamp layout, RFC3339 when empty
	ReportCaller bool      `json:"report_caller" yaml:"report_caller"` // add file:line to each event
	Out          io.Writer `json:"-" yaml:"-"`                         // defaults to stderr so stdout stays clean for command output
}

// InitLogger configures the global level and log.Logger from cfg and returns the logger.
// Unknown levels fall back to info.
func InitLogger(cfg LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = timeFormat

	var output = out
	if cfg.Format == "pretty" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if cfg.ReportCaller {
		ctx = ctx.Caller()
	}

	logger := ctx.Logger()
	log.Logger = logger
	return logger
}

// Component returns a child of the global logger tagged with a component name
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}
