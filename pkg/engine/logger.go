package engine

import (
	"log"
)

// Logger is the renderer's sink for progress and verbose tracing: a
// single Printf method so the caller controls destination and
// formatting.
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger writes through the standard library's log.Logger.
type DefaultLogger struct{ l *log.Logger }

func NewDefaultLogger(l *log.Logger) *DefaultLogger { return &DefaultLogger{l: l} }

func (d *DefaultLogger) Printf(format string, args ...interface{}) { d.l.Printf(format, args...) }

// NopLogger discards everything, the default when no logger is given.
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}

var _ Logger = (*DefaultLogger)(nil)
var _ Logger = NopLogger{}
