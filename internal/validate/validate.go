// Package validate runs the strict structural pass over typed content ASTs.
// It inspects without mutating and reports everything it finds; the flattener
// stays permissive and consults only the exclusion verdicts computed here.
// Grammar-level findings (typos, duplicates, unknown section keywords) are the
// parser's to report, so nothing is diagnosed twice.
package validate

import (
	"github.com/goliatone/go-courseware/internal/logging"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// Validator checks one parsed file at a time. It is stateless and safe for
// concurrent use.
type Validator struct {
	logger interfaces.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger attaches a logger for per-file trace output.
func WithLogger(logger interfaces.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New constructs a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Result is the verdict for one file: its findings plus whether they prevent
// a minimally valid AST and so exclude the file from compiled output.
// Warnings never exclude; neither do reference-level errors in files that are
// otherwise sound.
type Result struct {
	Errors   []interfaces.ContentError
	Excluded bool
}

func (r *Result) err(file string, line int, message, suggestion string) {
	r.Errors = append(r.Errors, interfaces.ContentError{
		File:       file,
		Line:       line,
		Message:    message,
		Suggestion: suggestion,
		Severity:   interfaces.SeverityError,
	})
}

func (r *Result) warn(file string, line int, message, suggestion string) {
	r.Errors = append(r.Errors, interfaces.ContentError{
		File:       file,
		Line:       line,
		Message:    message,
		Suggestion: suggestion,
		Severity:   interfaces.SeverityWarning,
	})
}
