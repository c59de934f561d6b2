package logging

import (
	"maps"

	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// WithFields binds structured fields to logger when it implements the
// optional FieldsLogger extension; otherwise the logger is returned as is.
// The map is copied before handing it over.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return fl.WithFields(maps.Clone(fields))
}
