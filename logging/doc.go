// Package logging provides a tiny abstraction over structured loggers so the
// engine can depend on a minimal interface (Logger) while users plug in slog,
// zap or their own implementation. A WriterSink with an explicit Close gives
// the engine a log destination with a well-defined lifecycle instead of
// implicit global logger state.
package logging
