// Package logging provides the small structured logging interface used by
// the registry, the converter and the CLI.
package logging

import (
	"log/slog"
)

// Logger is the interface configbridge uses for structured logging.
//
// Attributes are alternating key-value pairs, following log/slog:
//
//	logger.Debug("native bridge", "from", "yaml", "to", "json")
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)

	// With returns a Logger that prepends attrs to every record.
	With(attrs ...any) Logger
}

// Nop is a Logger that discards everything. It is the default.
type Nop struct{}

func (Nop) Debug(_ string, _ ...any) {}
func (Nop) Info(_ string, _ ...any)  {}
func (Nop) Warn(_ string, _ ...any)  {}
func (Nop) Error(_ string, _ ...any) {}

// With implements Logger.
func (n Nop) With(_ ...any) Logger { return n }

var _ Logger = Nop{}

// SlogAdapter wraps a *slog.Logger to implement Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter. If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements Logger.
func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.logger.Debug(msg, attrs...) }

// Info implements Logger.
func (s *SlogAdapter) Info(msg string, attrs ...any) { s.logger.Info(msg, attrs...) }

// Warn implements Logger.
func (s *SlogAdapter) Warn(msg string, attrs ...any) { s.logger.Warn(msg, attrs...) }

// Error implements Logger.
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.logger.Error(msg, attrs...) }

// With implements Logger.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

var _ Logger = (*SlogAdapter)(nil)

// OrNop returns l, or Nop if l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return l
}
