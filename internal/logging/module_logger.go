package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-courseware/pkg/interfaces"
)

const (
	rootModule     = "courseware"
	parserModule   = "courseware.parser"
	flattenModule  = "courseware.flatten"
	validateModule = "courseware.validate"
	compilerModule = "courseware.compiler"
)

const (
	fieldFilePath = "file"
	fieldFileKind = "kind"
	fieldStage    = "stage"
)

// ModuleLogger returns a namespace-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The namespace rides along as a
// structured field so entries can be filtered per pipeline stage.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ParserLogger returns the logger namespace reserved for file parsers.
func ParserLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, parserModule)
}

// FlattenLogger returns the logger namespace reserved for module flattening.
func FlattenLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, flattenModule)
}

// ValidateLogger returns the logger namespace reserved for structural validation.
func ValidateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, validateModule)
}

// CompilerLogger returns the logger namespace reserved for the compile pipeline.
func CompilerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, compilerModule)
}

// WithFileContext enriches the provided logger with common per-file fields
// such as path, detected kind, and pipeline stage. Empty values are ignored.
func WithFileContext(logger interfaces.Logger, path, kind, stage string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldFilePath] = trimmed
	}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields[fieldFileKind] = trimmed
	}
	if trimmed := strings.TrimSpace(stage); trimmed != "" {
		fields[fieldStage] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards every entry, letting services run with
// logging disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
