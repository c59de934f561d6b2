package commands

import (
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	internalcmd "github.com/goliatone/go-courseware/internal/commands"
	compilecmd "github.com/goliatone/go-courseware/internal/commands/compile"
	"github.com/goliatone/go-courseware/internal/di"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry = internalcmd.CommandRegistry

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher = internalcmd.CommandDispatcher

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription = internalcmd.CommandSubscription

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar = internalcmd.CronRegistrar

// Compiler command messages, re-exported so hosts can dispatch them without
// reaching into internal packages.
type (
	CompileCorpusCommand = compilecmd.CompileCorpusCommand
	CompileModuleCommand = compilecmd.CompileModuleCommand
	LintCorpusCommand    = compilecmd.LintCorpusCommand
)

// Compiler command handlers, re-exported so hosts can type-switch over
// RegistrationResult.Handlers.
type (
	CompileCorpusHandler = compilecmd.CompileCorpusHandler
	CompileModuleHandler = compilecmd.CompileModuleHandler
	LintCorpusHandler    = compilecmd.LintCorpusHandler
)

// ResultSink receives compiled corpora from the compile handlers.
type ResultSink = compilecmd.ResultSink

// FindingsSink receives lint findings from the lint handler.
type FindingsSink = compilecmd.FindingsSink

// ErrCommandsFeatureDisabled is returned by handler execution when the
// commands feature gate is off.
var ErrCommandsFeatureDisabled = compilecmd.ErrCommandsFeatureDisabled

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// CommandsEnabled gates command execution; a nil gate leaves commands enabled.
	CommandsEnabled func() bool
	// ContentDir is the corpus root loaded by scheduled lint runs.
	ContentDir string
	// Patterns restricts which corpus files scheduled lint runs load.
	Patterns []string
	// LintCron schedules recurring lint runs over ContentDir when a cron
	// registrar is configured, e.g. "@daily".
	LintCron string
	// ResultSink receives compile output from the compile handlers.
	ResultSink ResultSink
	// FindingsSink receives lint findings from the lint handler.
	FindingsSink FindingsSink
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterCoursewareCommands builds the compiler command handlers for the provided
// service and optionally registers them with registry/dispatcher/cron integrations.
func RegisterCoursewareCommands(service interfaces.CompilerService, opts RegistrationOptions) (*RegistrationResult, error) {
	if service == nil {
		return &RegistrationResult{}, nil
	}

	if opts.Registry != nil && opts.CronRegistrar != nil {
		if reg, ok := opts.Registry.(interface {
			SetCronRegister(func(command.HandlerConfig, any) error) *command.Registry
		}); ok && reg != nil {
			reg.SetCronRegister(opts.CronRegistrar)
		}
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	enabled := opts.CommandsEnabled
	if enabled == nil {
		enabled = func() bool { return true }
	}

	if enabled() {
		gates := compilecmd.FeatureGates{CommandsEnabled: enabled}

		adapterOpts := []compilecmd.Option{}
		if opts.ResultSink != nil {
			adapterOpts = append(adapterOpts, compilecmd.WithResultSink(opts.ResultSink))
		}
		if opts.FindingsSink != nil {
			adapterOpts = append(adapterOpts, compilecmd.WithFindingsSink(opts.FindingsSink))
		}

		set, err := compilecmd.RegisterCompilerCommands(nil, service, opts.LoggerProvider, gates, adapterOpts...)
		if err != nil {
			errs = errors.Join(errs, err)
		} else if set != nil {
			register(set.Compile)
			register(set.CompileModule)
			register(set.Lint)

			if expr := strings.TrimSpace(opts.LintCron); expr != "" && opts.CronRegistrar != nil {
				msg := LintCorpusCommand{Directory: opts.ContentDir, Patterns: opts.Patterns}
				cronCfg := command.HandlerConfig{Expression: expr}
				if err := compilecmd.RegisterLintCron(opts.CronRegistrar, set.Lint, cronCfg, msg); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; enable the commands feature and configure a compiler service")
	}

	return result, errs
}

// RegisterContainerCommands builds the compiler command handlers from the
// provided container, defaulting the logger provider, feature gate, corpus
// location, and lint schedule from its configuration.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	if opts.LoggerProvider == nil {
		opts.LoggerProvider = container.LoggerProvider()
	}
	if opts.CommandsEnabled == nil {
		opts.CommandsEnabled = func() bool { return cfg.Features.Commands }
	}
	if strings.TrimSpace(opts.ContentDir) == "" {
		opts.ContentDir = cfg.ContentDir
	}
	if len(opts.Patterns) == 0 {
		if pattern := strings.TrimSpace(cfg.Markdown.Pattern); pattern != "" {
			opts.Patterns = []string{pattern}
		}
	}
	if strings.TrimSpace(opts.LintCron) == "" {
		opts.LintCron = cfg.Commands.LintCron
	}

	return RegisterCoursewareCommands(container.CompilerService(), opts)
}
