package interfaces

import "context"

// Logger is the leveled logger every checklist component accepts. Its method
// set matches go-logger's, so glog loggers need only a thin adapter.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider returns the logger for a module name such as
// "checklist.build".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can bind structured fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
