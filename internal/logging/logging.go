package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// New builds an slog.Logger writing through a charmbracelet/log handler.
func New(w io.Writer, level string, format string) (*slog.Logger, error) {
	parsed, err := charmlog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	formatter := charmlog.TextFormatter
	switch strings.ToLower(format) {
	case "", "text":
	case "json":
		formatter = charmlog.JSONFormatter
	case "logfmt":
		formatter = charmlog.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           parsed,
		Formatter:       formatter,
		ReportTimestamp: true,
		Prefix:          "sr",
	})

	return slog.New(handler), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
