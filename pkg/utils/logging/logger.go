package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"golang.org/x/term"
)

// Format selects how log records are rendered
type Format int

const (
	// FormatAuto picks console when writing to a terminal, JSON otherwise
	FormatAuto Format = iota
	FormatConsole
	FormatJSON
)

// ParseFormat maps a --log-format value to a Format.
// Unknown values fall back to auto detection.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "console", "text":
		return FormatConsole
	case "json":
		return FormatJSON
	default:
		return FormatAuto
	}
}

// ParseLevel maps a --log-level value to a slog.Level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a slog.Logger writing to w. Console format uses clog with
// colors; JSON format uses the stdlib handler with source locations for
// log collectors.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	if format == FormatAuto {
		format = FormatJSON
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = FormatConsole
		}
	}

	var handler slog.Handler
	switch format {
	case FormatConsole:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithTimeFmt("15:04:05"),
			clog.WithSource(false),
			clog.WithAttrHook(clog.GoerrHook),
		)
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	}

	return slog.New(handler)
}
