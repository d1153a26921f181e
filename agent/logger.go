package agent

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

// Logger defines the interface for structured logging. Implementations can
// integrate with any logging library; the engine never assumes a concrete
// backend.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (shorthand helper function).
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoopLogger discards all log messages. It is the zero-value default so
// unconfigured engines pay no logging cost.
type NoopLogger struct{}

func (NoopLogger) Debug(ctx context.Context, msg string, fields ...Field) {}
func (NoopLogger) Info(ctx context.Context, msg string, fields ...Field)  {}
func (NoopLogger) Warn(ctx context.Context, msg string, fields ...Field)  {}
func (NoopLogger) Error(ctx context.Context, msg string, fields ...Field) {}

// ZerologLogger adapts zerolog.Logger to the engine's Logger interface.
// The engine passes each run's correlation id in fields, so every event
// for a run carries the same run_id.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger builds a ZerologLogger writing to stderr at the given
// level.
func NewZerologLogger(level zerolog.Level) *ZerologLogger {
	l := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return &ZerologLogger{logger: l}
}

func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		e = e.Interface(f.Key, f.Value)
	}
	return e
}

func (l *ZerologLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	applyFields(l.logger.Debug(), fields).Msg(msg)
}

func (l *ZerologLogger) Info(ctx context.Context, msg string, fields ...Field) {
	applyFields(l.logger.Info(), fields).Msg(msg)
}

func (l *ZerologLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	applyFields(l.logger.Warn(), fields).Msg(msg)
}

func (l *ZerologLogger) Error(ctx context.Context, msg string, fields ...Field) {
	applyFields(l.logger.Error(), fields).Msg(msg)
}
