package diag

import (
	"log/slog"
	"sync/atomic"
)

// Sink receives diagnostics from the core.
type Sink interface {
	Log(msg string)
	Error(msg string)
}

type nopSink struct{}

func (nopSink) Log(string)   {}
func (nopSink) Error(string) {}

// Nop returns a sink that discards every message.
func Nop() Sink {
	return nopSink{}
}

type holder struct{ sink Sink }

var current atomic.Pointer[holder]

// Default returns the process-wide sink.
func Default() Sink {
	if h := current.Load(); h != nil {
		return h.sink
	}
	return nopSink{}
}

// SetDefault replaces the process-wide sink. A nil sink restores the no-op sink.
func SetDefault(s Sink) {
	if s == nil {
		s = nopSink{}
	}
	current.Store(&holder{sink: s})
}

// Or returns s, or the process default when s is nil.
func Or(s Sink) Sink {
	if s != nil {
		return s
	}
	return Default()
}

// SlogSink forwards diagnostics to a structured logger.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink wraps logger. Log maps to Debug, Error maps to Error.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger.With("component", "diag")}
}

func (s *SlogSink) Log(msg string) {
	s.logger.Debug(msg)
}

func (s *SlogSink) Error(msg string) {
	s.logger.Error(msg)
}
