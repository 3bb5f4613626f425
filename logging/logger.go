package logging

import (
	"io"
	"log/slog"
)

// Logger defines the minimal structured logging interface for graphmesh.
// Arguments are alternating key/value pairs in the slog convention. This
// allows users to provide their own logger implementation or use one of the
// built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NoOpLogger discards all log messages. Useful for testing or when logging is
// disabled; it is the default for engines constructed without a logger.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

// Sink is a Logger bound to an output destination with an explicit lifecycle:
// constructing the sink opens it, Close flushes buffered records and releases
// the destination. The engine owner decides when to close.
type Sink interface {
	Logger
	Close() error
}

// WriterSink emits JSON records of the shape
// {timestamp, logger_name, level, payload...} to an io.Writer via slog.
type WriterSink struct {
	Logger
	w io.Writer
}

// WriterSinkOptions configures a WriterSink.
type WriterSinkOptions struct {
	// Name is attached to every record as logger_name.
	Name string
	// Level is the minimum level emitted. Defaults to slog.LevelInfo.
	Level slog.Leveler
}

// NewWriterSink opens a JSON sink writing to w.
func NewWriterSink(w io.Writer, optFns ...func(o *WriterSinkOptions)) *WriterSink {
	opts := WriterSinkOptions{
		Name:  "graphmesh",
		Level: slog.LevelInfo,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level})
	logger := slog.New(handler).With(slog.String("logger_name", opts.Name))

	return &WriterSink{Logger: NewSlogAdapter(logger), w: w}
}

// Close flushes and releases the underlying writer when it is closable.
func (s *WriterSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
