// Package logger configures the application's structured logging.
//
// It uses zerolog everywhere: a root logger for the app itself, and a
// dedicated logger wired into pgx's tracelog so SQL queries show up in the
// same stream during local development.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// New builds the root application logger.
//
// In the local environment it writes a human-friendly console format;
// everywhere else it emits JSON for log shippers. The level comes from
// LOG_LEVEL (defaults to info).
func New(env string) zerolog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	var logger zerolog.Logger
	if env == "local" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}

// NewPgxLogger builds the logger handed to pgx's tracelog adapter.
// Query logs are tagged so they are easy to filter out of the main stream.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps the app's zerolog level onto pgx's tracelog level
// so SQL logging verbosity follows the global setting.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
