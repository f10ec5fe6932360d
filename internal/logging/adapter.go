package logging

import "log/slog"

// Logger is the minimal leveled logging interface the server wiring depends
// on. It exists so components can be tested with a no-op or capturing logger
// without pulling in a concrete handler.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter implements Logger on top of a *slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps the given slog logger. A nil logger falls back to
// slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// DefaultLogger returns an adapter around the process-default slog logger.
func DefaultLogger() *SlogAdapter {
	return NewSlogAdapter(nil)
}

// Logger returns the underlying slog logger for callers that need the full
// slog API.
func (a *SlogAdapter) Logger() *slog.Logger {
	return a.logger
}

func (a *SlogAdapter) Debug(msg string, args ...any) {
	a.logger.Debug(msg, args...)
}

func (a *SlogAdapter) Info(msg string, args ...any) {
	a.logger.Info(msg, args...)
}

func (a *SlogAdapter) Warn(msg string, args ...any) {
	a.logger.Warn(msg, args...)
}

func (a *SlogAdapter) Error(msg string, args ...any) {
	a.logger.Error(msg, args...)
}
