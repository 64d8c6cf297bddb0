package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// AppName tags every entry written by New.
const AppName = "vend"

// New creates a configured zerolog.Logger writing to stderr, leaving stdout
// to the customer-facing screen.
// level: debug, info, warn, error, off. pretty: human-readable console output.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stderr

	if pretty {
		w = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}

	lvl := parseLevel(level)

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("app", AppName).
		Caller().
		Logger()
}

// ForCommand tags log with the CLI command that is running, so entries from
// `vend run` and `vend serve` on the same host can be told apart.
func ForCommand(log zerolog.Logger, command string) zerolog.Logger {
	return log.With().Str("command", command).Logger()
}

// ForInventory tags log with the stock file a component works on.
func ForInventory(log zerolog.Logger, path string) zerolog.Logger {
	return log.With().Str("inventory", path).Logger()
}

// NewWithWriter creates a logger writing to a custom writer (useful for testing).
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	lvl := parseLevel(level)
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
