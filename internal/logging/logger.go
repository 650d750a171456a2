// Package logging sets up the structured diagnostics logger.
//
// User-facing progress lines are printed by the front ends; this logger
// carries debug detail (search queries, chosen hits, HTTP failures) to
// stderr.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Setup returns a slog.Logger backed by a charmbracelet/log handler.
//
// level is one of debug, info, warn or error (default warn). format is one
// of text, json or logfmt (default text).
func Setup(level, format string, w io.Writer) *slog.Logger {
	var formatter log.Formatter
	switch strings.ToLower(format) {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		formatter = log.TextFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "lyrics",
		Formatter:       formatter,
		Level:           ParseLevel(level),
	})

	return slog.New(handler)
}

// ParseLevel converts a level name to a charmbracelet/log level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
