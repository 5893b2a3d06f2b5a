package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"assistant/pkg/config"
)

func NewLogger(c config.Logger) *slog.Logger {
	return New(os.Stdout, c)
}

func New(w io.Writer, c config.Logger) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	if c.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	l := slog.New(h)
	if c.AppName != "" {
		l = l.With(slog.String("app", c.AppName))
	}
	return l
}
