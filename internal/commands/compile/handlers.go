// Package compilecmd exposes the compiler pipeline as go-command messages so
// hosts can trigger corpus builds from CLIs, dispatchers, or cron schedules.
package compilecmd

import (
	"context"
	"errors"
	"os"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-courseware/internal/commands"
	"github.com/goliatone/go-courseware/internal/fileset"
	"github.com/goliatone/go-courseware/internal/logging"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

const (
	compileCorpusOperation = "compiler.compile_corpus"
	compileModuleOperation = "compiler.compile_module"
	lintCorpusOperation    = "compiler.lint_corpus"
)

// ErrCommandsFeatureDisabled is returned when the commands feature flag is
// disabled at runtime.
var ErrCommandsFeatureDisabled = errors.New("compiler command: feature disabled")

var (
	_ command.Commander[CompileCorpusCommand] = (*CompileCorpusHandler)(nil)
	_ command.Commander[CompileModuleCommand] = (*CompileModuleHandler)(nil)
	_ command.Commander[LintCorpusCommand]    = (*LintCorpusHandler)(nil)
)

// ResultSink receives the compile output once a handler finishes. Handlers
// log a summary regardless; the sink is how callers keep the result.
type ResultSink func(ctx context.Context, result *interfaces.CompileResult)

// FindingsSink receives lint findings once the lint handler finishes.
type FindingsSink func(ctx context.Context, findings []interfaces.ContentError)

// CompileCorpusHandler runs full corpus compiles via the shared command
// handler foundation.
type CompileCorpusHandler struct {
	inner *commands.Handler[CompileCorpusCommand]
}

// NewCompileCorpusHandler creates a handler bound to the supplied compiler
// service.
func NewCompileCorpusHandler(service interfaces.CompilerService, logger interfaces.Logger, gates FeatureGates, sink ResultSink, opts ...commands.HandlerOption[CompileCorpusCommand]) *CompileCorpusHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CompileCorpusCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsFeatureDisabled
		}

		req, err := compileRequest(msg.Directory, msg.Patterns, msg.Files)
		if err != nil {
			return err
		}
		result, err := service.Compile(ctx, req)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"modules": len(result.Modules),
			"courses": len(result.Courses),
			"errors":  len(result.Errors),
		}).Info("compiler.command.compile_corpus.completed")
		if sink != nil {
			sink(ctx, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CompileCorpusCommand]{
		commands.WithLogger[CompileCorpusCommand](baseLogger),
		commands.WithOperation[CompileCorpusCommand](compileCorpusOperation),
		commands.WithMessageFields(func(msg CompileCorpusCommand) map[string]any {
			return corpusFields(msg.Directory, msg.Files, nil)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CompileCorpusCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CompileCorpusHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CompileCorpusCommand].
func (h *CompileCorpusHandler) Execute(ctx context.Context, msg CompileCorpusCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CompileModuleHandler compiles a single module via the shared command
// handler foundation.
type CompileModuleHandler struct {
	inner *commands.Handler[CompileModuleCommand]
}

// NewCompileModuleHandler creates a handler bound to the supplied compiler
// service.
func NewCompileModuleHandler(service interfaces.CompilerService, logger interfaces.Logger, gates FeatureGates, sink ResultSink, opts ...commands.HandlerOption[CompileModuleCommand]) *CompileModuleHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CompileModuleCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsFeatureDisabled
		}

		req, err := compileRequest(msg.Directory, msg.Patterns, msg.Files)
		if err != nil {
			return err
		}
		result, err := service.CompileModule(ctx, req, msg.Module)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"module":  msg.Module,
			"modules": len(result.Modules),
			"errors":  len(result.Errors),
		}).Info("compiler.command.compile_module.completed")
		if sink != nil {
			sink(ctx, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CompileModuleCommand]{
		commands.WithLogger[CompileModuleCommand](baseLogger),
		commands.WithOperation[CompileModuleCommand](compileModuleOperation),
		commands.WithMessageFields(func(msg CompileModuleCommand) map[string]any {
			return corpusFields(msg.Directory, msg.Files, map[string]any{"module": msg.Module})
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CompileModuleCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CompileModuleHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CompileModuleCommand].
func (h *CompileModuleHandler) Execute(ctx context.Context, msg CompileModuleCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LintCorpusHandler runs lint-only compiles via the shared command handler
// foundation.
type LintCorpusHandler struct {
	inner *commands.Handler[LintCorpusCommand]
}

// NewLintCorpusHandler creates a handler bound to the supplied compiler
// service.
func NewLintCorpusHandler(service interfaces.CompilerService, logger interfaces.Logger, gates FeatureGates, sink FindingsSink, opts ...commands.HandlerOption[LintCorpusCommand]) *LintCorpusHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg LintCorpusCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsFeatureDisabled
		}

		req, err := compileRequest(msg.Directory, msg.Patterns, msg.Files)
		if err != nil {
			return err
		}
		findings, err := service.Lint(ctx, req)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"findings": len(findings),
		}).Info("compiler.command.lint_corpus.completed")
		if sink != nil {
			sink(ctx, findings)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[LintCorpusCommand]{
		commands.WithLogger[LintCorpusCommand](baseLogger),
		commands.WithOperation[LintCorpusCommand](lintCorpusOperation),
		commands.WithMessageFields(func(msg LintCorpusCommand) map[string]any {
			return corpusFields(msg.Directory, msg.Files, nil)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LintCorpusCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LintCorpusHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[LintCorpusCommand].
func (h *LintCorpusHandler) Execute(ctx context.Context, msg LintCorpusCommand) error {
	return h.inner.Execute(ctx, msg)
}

// compileRequest builds the service request, walking Directory only when no
// in-memory corpus was supplied.
func compileRequest(directory string, patterns []string, files map[string]string) (interfaces.CompileRequest, error) {
	if len(files) > 0 {
		return interfaces.CompileRequest{Files: files, Root: directory}, nil
	}
	set, err := fileset.FromFS(os.DirFS(directory), patterns...)
	if err != nil {
		return interfaces.CompileRequest{}, err
	}
	loaded := make(map[string]string, set.Len())
	for _, path := range set.Paths() {
		raw, _ := set.Get(path)
		loaded[path] = raw
	}
	return interfaces.CompileRequest{Files: loaded, Root: directory}, nil
}

func corpusFields(directory string, files map[string]string, extra map[string]any) map[string]any {
	fields := map[string]any{}
	if directory != "" {
		fields["directory"] = directory
	}
	if len(files) > 0 {
		fields["in_memory_files"] = len(files)
	}
	for key, value := range extra {
		fields[key] = value
	}
	return fields
}
