package internal

import (
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const maxLogMessage = 512

func NewLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), err
		}
	}
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// CalendarLogger returns l with the calendar id attached.
func CalendarLogger(l zerolog.Logger, cal Calendar) zerolog.Logger {
	return l.With().Str("calendar", cal.ID).Logger()
}

// Truncate shortens s to at most 512 runes so a single failing response
// can't flood the logs.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxLogMessage {
		return s
	}
	r := []rune(s)
	return string(r[:maxLogMessage]) + "…"
}
