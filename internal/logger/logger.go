package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the root zerolog logger every component logger derives from.
// The level string follows zerolog's names (trace through panic); anything
// unparseable falls back to info so a typo in the environment never silences
// the service. Format "pretty" switches to the human console writer for
// local development, any other value emits JSON lines.
func Setup(level, format string) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(level))
	return zerolog.New(pickWriter(format)).With().Timestamp().Caller().Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func pickWriter(format string) io.Writer {
	if format == "pretty" {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return os.Stdout
}
