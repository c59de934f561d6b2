package compilecmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-courseware/internal/commands"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// HandlerSet groups the compiler command handlers produced by
// RegisterCompilerCommands.
type HandlerSet struct {
	Compile       *CompileCorpusHandler
	CompileModule *CompileModuleHandler
	Lint          *LintCorpusHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	compileOpts []commands.HandlerOption[CompileCorpusCommand]
	moduleOpts  []commands.HandlerOption[CompileModuleCommand]
	lintOpts    []commands.HandlerOption[LintCorpusCommand]
	results     ResultSink
	findings    FindingsSink
}

// WithCompileHandlerOptions forwards options to the CompileCorpusHandler
// constructor.
func WithCompileHandlerOptions(opts ...commands.HandlerOption[CompileCorpusCommand]) Option {
	return func(cfg *options) {
		cfg.compileOpts = append(cfg.compileOpts, opts...)
	}
}

// WithCompileModuleHandlerOptions forwards options to the
// CompileModuleHandler constructor.
func WithCompileModuleHandlerOptions(opts ...commands.HandlerOption[CompileModuleCommand]) Option {
	return func(cfg *options) {
		cfg.moduleOpts = append(cfg.moduleOpts, opts...)
	}
}

// WithLintHandlerOptions forwards options to the LintCorpusHandler
// constructor.
func WithLintHandlerOptions(opts ...commands.HandlerOption[LintCorpusCommand]) Option {
	return func(cfg *options) {
		cfg.lintOpts = append(cfg.lintOpts, opts...)
	}
}

// WithResultSink delivers compile output from both compile handlers.
func WithResultSink(sink ResultSink) Option {
	return func(cfg *options) {
		cfg.results = sink
	}
}

// WithFindingsSink delivers lint findings from the lint handler.
func WithFindingsSink(sink FindingsSink) Option {
	return func(cfg *options) {
		cfg.findings = sink
	}
}

// RegisterCompilerCommands builds the compiler command handlers and registers
// them with the provided registry. The returned HandlerSet lets callers wire
// additional integrations such as dispatchers or cron.
func RegisterCompilerCommands(reg commands.CommandRegistry, service interfaces.CompilerService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("compiler command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "compiler")

	set := &HandlerSet{
		Compile:       NewCompileCorpusHandler(service, logger, gates, cfg.results, cfg.compileOpts...),
		CompileModule: NewCompileModuleHandler(service, logger, gates, cfg.results, cfg.moduleOpts...),
		Lint:          NewLintCorpusHandler(service, logger, gates, cfg.findings, cfg.lintOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Compile, set.CompileModule, set.Lint} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}

// RegisterLintCron wires the lint handler into a cron registrar so corpora
// are linted on a schedule. The handler executes with a background context.
func RegisterLintCron(reg commands.CronRegistrar, handler *LintCorpusHandler, cfg command.HandlerConfig, msg LintCorpusCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
