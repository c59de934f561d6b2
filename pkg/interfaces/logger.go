package interfaces

import "context"

// Logger defines the leveled logging contract expected by the compiler
// runtime. It mirrors the interface exposed by github.com/goliatone/go-logger
// so host applications can plug that package in without additional adapters.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers. An implementation may share one
// instance across names or scope children per pipeline stage.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for binding persistent structured
// fields. Implementations return a new logger carrying the fields on every
// subsequent entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
