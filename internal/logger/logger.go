package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// serviceName prefixes every log line so wishlink output is attributable when
// it shares a stream with redis or other sidecars.
const serviceName = "wishlink"

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton logger configured with the provided level.
// The first call initializes the logger; subsequent calls ignore the level
// and return the already initialized instance.
func Get(level string) *Logger {
	once.Do(func() {
		l := newZapLogger(level)
		l.SugaredLogger = l.Named(serviceName)
		globalLogger = l
	})
	return globalLogger
}
