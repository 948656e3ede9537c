// Package dlog provides the leveled trace logger shared by the nwk, trans,
// cc and mm packages. It follows clog's shim shape: a pluggable
// provider behind an atomic enable flag, defaulting to the standard
// library logger.
package dlog

import (
	"log"
	"os"
	"sync/atomic"
)

// Provider is implemented by anything that can sink leveled trace lines.
type Provider interface {
	Critical(format string, v ...interface{})
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Logger is a switchable leveled logger. The zero value is disabled and
// logs nothing until SetProvider is called and Enable(true) turns it on.
type Logger struct {
	provider Provider
	enabled  uint32
}

// New returns a Logger using the standard library logger with prefix.
func New(prefix string) *Logger {
	return &Logger{provider: stdProvider{log.New(os.Stderr, prefix, log.LstdFlags)}}
}

// Enable turns logging on or off.
func (l *Logger) Enable(on bool) {
	if l == nil {
		return
	}
	if on {
		atomic.StoreUint32(&l.enabled, 1)
	} else {
		atomic.StoreUint32(&l.enabled, 0)
	}
}

// SetProvider swaps the underlying sink, e.g. for a zerolog-backed one.
func (l *Logger) SetProvider(p Provider) {
	if l == nil || p == nil {
		return
	}
	l.provider = p
}

func (l *Logger) on() bool {
	return l != nil && atomic.LoadUint32(&l.enabled) == 1 && l.provider != nil
}

// Critical logs an unrecoverable-state message.
func (l *Logger) Critical(format string, v ...interface{}) {
	if l.on() {
		l.provider.Critical(format, v...)
	}
}

// Error logs a protocol or codec error.
func (l *Logger) Error(format string, v ...interface{}) {
	if l.on() {
		l.provider.Error(format, v...)
	}
}

// Warn logs a tolerated anomaly (dropped message, unknown TI, ...).
func (l *Logger) Warn(format string, v ...interface{}) {
	if l.on() {
		l.provider.Warn(format, v...)
	}
}

// Debug logs a trace-level message (IE dumps, state transitions).
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.on() {
		l.provider.Debug(format, v...)
	}
}

type stdProvider struct {
	*log.Logger
}

var _ Provider = stdProvider{}

func (p stdProvider) Critical(format string, v ...interface{}) { p.Printf("[C]: "+format, v...) }
func (p stdProvider) Error(format string, v ...interface{})    { p.Printf("[E]: "+format, v...) }
func (p stdProvider) Warn(format string, v ...interface{})     { p.Printf("[W]: "+format, v...) }
func (p stdProvider) Debug(format string, v ...interface{})    { p.Printf("[D]: "+format, v...) }
