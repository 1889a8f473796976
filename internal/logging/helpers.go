package logging

import (
	"maps"

	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// WithFields binds a copy of fields when logger implements FieldsLogger and
// returns logger unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	bound, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return bound.WithFields(maps.Clone(fields))
}

// Ensure substitutes NoOp for a nil logger.
func Ensure(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}
