package bootstrap

import (
	"fmt"
	"strings"

	courseware "github.com/goliatone/go-courseware"
	"github.com/goliatone/go-courseware/internal/di"
	"github.com/goliatone/go-courseware/internal/logging"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// Options captures configuration for courseware CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	Workers        int
	DefaultTier    string
	TierPrecedence string
	LogLevel       string
	RenderHTML     bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the courseware module and the configured compiler service and
// logger.
type Module struct {
	Module  *courseware.Module
	Service interfaces.CompilerService
	Logger  interfaces.Logger
}

// BuildModule constructs a courseware module configured for CLI compile runs.
func BuildModule(opts Options) (*Module, error) {
	cfg := courseware.DefaultConfig()
	cfg.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.ContentDir == "" {
		cfg.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	if opts.Workers > 0 {
		cfg.Compiler.Workers = opts.Workers
	}
	if trimmed := strings.TrimSpace(opts.DefaultTier); trimmed != "" {
		cfg.Compiler.DefaultTier = trimmed
	}
	if trimmed := strings.TrimSpace(opts.TierPrecedence); trimmed != "" {
		cfg.Compiler.TierPrecedence = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = trimmed
	}
	if opts.RenderHTML {
		cfg.Features.MarkdownRender = true
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := courseware.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise courseware module: %w", err)
	}

	service := module.Compiler()
	if service == nil {
		return nil, fmt.Errorf("compiler service not configured")
	}

	logger := logging.CompilerLogger(module.Container().LoggerProvider())

	return &Module{
		Module:  module,
		Service: service,
		Logger:  logger,
	}, nil
}
