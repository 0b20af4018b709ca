package core

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "enrollment-form-api"

// Level parses LogLevel. Unknown values fall back to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if c == nil || level.UnmarshalText([]byte(c.LogLevel)) != nil {
		return slog.LevelInfo
	}
	return level
}

func newStdoutHandler(cfg Config, out io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.IsProd() {
		return slog.NewJSONHandler(out, opts)
	}
	return slog.NewTextHandler(out, opts)
}

func NewLogger(cfg Config) *slog.Logger {
	return NewLoggerWithWriter(cfg, os.Stdout)
}

// NewLoggerWithWriter logs to out only, text in development and JSON in
// production.
func NewLoggerWithWriter(cfg Config, out io.Writer) *slog.Logger {
	return slog.New(newStdoutHandler(cfg, out)).
		With(slog.String("service", serviceName))
}

// NewLoggerWithOtel fans every record out to stdout and the otel log
// pipeline. The otel side is not level filtered.
func NewLoggerWithOtel(cfg Config, otel OtelService) *slog.Logger {
	handler := slogmulti.Fanout(
		newStdoutHandler(cfg, os.Stdout),
		otelslog.NewHandler(
			serviceName,
			otelslog.WithLoggerProvider(otel.LoggerProvider()),
		),
	)

	return slog.New(handler).
		With(slog.String("service", serviceName))
}
