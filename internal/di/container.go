// Package di wires the courseware runtime from configuration. The container
// owns default service construction; callers override individual bindings
// through options.
package di

import (
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/compiler"
	"github.com/goliatone/go-courseware/internal/flatten"
	"github.com/goliatone/go-courseware/internal/logging"
	"github.com/goliatone/go-courseware/internal/logging/console"
	"github.com/goliatone/go-courseware/internal/logging/gologger"
	"github.com/goliatone/go-courseware/internal/markdown"
	"github.com/goliatone/go-courseware/internal/routes"
	"github.com/goliatone/go-courseware/internal/runtimeconfig"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// Container wires compiler dependencies for a single configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	markdownParser interfaces.MarkdownParser
	routeManager   *urlkit.RouteManager
	routeResolver  *routes.Resolver

	compilerSvc interfaces.CompilerService
}

// Option mutates the container before services are finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMarkdownParser overrides the goldmark-backed excerpt renderer.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.markdownParser = parser
	}
}

// WithRouteResolver overrides the navigation resolver binding.
func WithRouteResolver(resolver *routes.Resolver) Option {
	return func(c *Container) {
		c.routeResolver = resolver
	}
}

// WithCompilerService overrides the default compiler service binding.
func WithCompilerService(svc interfaces.CompilerService) Option {
	return func(c *Container) {
		c.compilerSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureMarkdown()
	c.configureNavigation()
	c.configureCompiler()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{
			MinLevel: consoleLevel(logCfg.Level),
		})
	}
	return nil
}

func (c *Container) configureMarkdown() {
	if c.markdownParser != nil || !c.Config.Features.MarkdownRender {
		return
	}

	parserCfg := c.Config.Markdown.Parser
	c.markdownParser = markdown.NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: parserCfg.Extensions,
		Sanitize:   parserCfg.Sanitize,
		HardWraps:  parserCfg.HardWraps,
		SafeMode:   parserCfg.SafeMode,
	})
}

func (c *Container) configureNavigation() {
	if c.routeResolver != nil || !c.Config.Features.Routes {
		return
	}

	navCfg := c.Config.Navigation
	if navCfg.RouteConfig == nil {
		return
	}

	manager := urlkit.NewRouteManager(navCfg.RouteConfig)
	c.routeManager = manager

	c.routeResolver = routes.NewResolver(routes.Options{
		Manager:     manager,
		Group:       strings.TrimSpace(navCfg.URLKit.DefaultGroup),
		CourseRoute: strings.TrimSpace(navCfg.URLKit.CourseRoute),
		ModuleRoute: strings.TrimSpace(navCfg.URLKit.ModuleRoute),
		SlugParam:   strings.TrimSpace(navCfg.URLKit.SlugParam),
	})
}

func (c *Container) configureCompiler() {
	if c.compilerSvc != nil {
		return
	}

	compCfg := c.Config.Compiler
	opts := []compiler.Option{
		compiler.WithLogger(logging.CompilerLogger(c.loggerProvider)),
		compiler.WithWorkers(compCfg.Workers),
	}
	if tier, ok := ast.ParseTier(compCfg.DefaultTier); ok {
		opts = append(opts, compiler.WithDefaultTier(tier))
	}
	if rule := strings.TrimSpace(compCfg.TierPrecedence); rule != "" {
		opts = append(opts, compiler.WithTierPrecedence(flatten.TierPrecedence(strings.ToLower(rule))))
	}
	if c.markdownParser != nil {
		opts = append(opts, compiler.WithMarkdown(c.markdownParser))
	}
	if c.routeResolver != nil {
		opts = append(opts, compiler.WithRoutes(c.routeResolver))
	}

	c.compilerSvc = compiler.New(opts...)
}

// LoggerProvider returns the configured logging provider; nil when the
// logging feature is disabled and no override was supplied.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	if c == nil {
		return nil
	}
	return c.loggerProvider
}

// MarkdownParser returns the configured markdown parser, if any.
func (c *Container) MarkdownParser() interfaces.MarkdownParser {
	if c == nil {
		return nil
	}
	return c.markdownParser
}

// RouteResolver returns the configured href resolver, if any.
func (c *Container) RouteResolver() *routes.Resolver {
	if c == nil {
		return nil
	}
	return c.routeResolver
}

// RouteManager exposes the underlying urlkit manager for host integrations.
func (c *Container) RouteManager() *urlkit.RouteManager {
	if c == nil {
		return nil
	}
	return c.routeManager
}

// CompilerService returns the configured compiler service implementation.
func (c *Container) CompilerService() interfaces.CompilerService {
	if c == nil {
		return nil
	}
	return c.compilerSvc
}

func consoleLevel(level string) *console.Level {
	var min console.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		min = console.LevelTrace
	case "debug":
		min = console.LevelDebug
	case "info":
		min = console.LevelInfo
	case "warn", "warning":
		min = console.LevelWarn
	case "error":
		min = console.LevelError
	case "fatal":
		min = console.LevelFatal
	default:
		return nil
	}
	return &min
}
