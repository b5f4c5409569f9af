// Package logger configures log/slog for the command line tool and adapts it
// to the twitter.Logger interface used by the client library.
package logger

import (
	"io"
	"log/slog"
	"sort"

	"github.com/fivetwenty-io/twitter-client/pkg/twitter"
)

// Config holds the configuration for the logger.
type Config struct {
	// Level determines the minimum severity level of messages to be logged
	Level slog.Level
	// Output specifies where the logs should be written
	Output io.Writer
	// JSONFormat selects JSON (true) or text (false) records
	JSONFormat bool
}

// NewLogger creates a new slog.Logger with the specified configuration.
func NewLogger(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return slog.New(handler)
}

// Adapter exposes a *slog.Logger as a twitter.Logger.
type Adapter struct {
	logger *slog.Logger
}

var _ twitter.Logger = (*Adapter)(nil)

// New creates a twitter.Logger writing through a logger built from cfg.
func New(cfg Config) *Adapter {
	return &Adapter{logger: NewLogger(cfg)}
}

// Wrap adapts an existing slog logger.
func Wrap(logger *slog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Debug implements twitter.Logger.
func (a *Adapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug(msg, attrs(fields)...)
}

// Info implements twitter.Logger.
func (a *Adapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info(msg, attrs(fields)...)
}

// Warn implements twitter.Logger.
func (a *Adapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn(msg, attrs(fields)...)
}

// Error implements twitter.Logger.
func (a *Adapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error(msg, attrs(fields)...)
}

// attrs turns fields into slog arguments ordered by key.
func attrs(fields map[string]interface{}) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}

	return out
}
