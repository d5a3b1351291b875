// Package logging adapts hclog to the domain Logger interface.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/ochairo/variants/internal/domain/interfaces"
)

// Environment variables read by GetLogLevel and NewLogger
const (
	EnvLogLevel = "VARIANTS_LOG_LEVEL"
	EnvJSONLog  = "VARIANTS_JSON_LOG"
)

// HCLogger implements interfaces.Logger on top of hclog
type HCLogger struct {
	log hclog.Logger
}

// NewLogger creates a logger writing to output (stderr when nil).
// JSON output is selected with VARIANTS_JSON_LOG=1.
func NewLogger(name, level string, output io.Writer) *HCLogger {
	if output == nil {
		output = os.Stderr
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv(EnvJSONLog) == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return Wrap(hclog.New(opts))
}

// Wrap adapts an existing hclog logger
func Wrap(l hclog.Logger) *HCLogger {
	return &HCLogger{log: l}
}

// GetLogLevel returns the configured log level from environment
func GetLogLevel() string {
	level := os.Getenv(EnvLogLevel)
	if level == "" {
		// warnings about unsigned variants must stay visible
		level = "info"
	}
	return level
}

func (h *HCLogger) Debug(msg string, fields ...interfaces.Field) { h.log.Debug(msg, args(fields)...) }
func (h *HCLogger) Info(msg string, fields ...interfaces.Field)  { h.log.Info(msg, args(fields)...) }
func (h *HCLogger) Warn(msg string, fields ...interfaces.Field)  { h.log.Warn(msg, args(fields)...) }
func (h *HCLogger) Error(msg string, fields ...interfaces.Field) { h.log.Error(msg, args(fields)...) }

// Named returns a sub-logger
func (h *HCLogger) Named(name string) interfaces.Logger {
	return &HCLogger{log: h.log.Named(name)}
}

func args(fields []interfaces.Field) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	out := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}
