package courseware

import (
	"github.com/goliatone/go-courseware/internal/di"
	"github.com/goliatone/go-courseware/internal/routes"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// CompilerService exports the compiler service contract for consumers of the
// courseware package.
type CompilerService = interfaces.CompilerService

// CompileRequest exports the compile request DTO.
type CompileRequest = interfaces.CompileRequest

// CompileResult exports the compile result DTO.
type CompileResult = interfaces.CompileResult

// ContentError exports the accumulated finding DTO.
type ContentError = interfaces.ContentError

// FlattenedModule exports the flattened module DTO.
type FlattenedModule = interfaces.FlattenedModule

// Course exports the compiled course DTO.
type Course = interfaces.Course

// ProgressionItem exports the course progression entry DTO.
type ProgressionItem = interfaces.ProgressionItem

// ProgressionKind discriminates course progression entries.
type ProgressionKind = interfaces.ProgressionKind

// Progression entry kinds.
const (
	ProgressionModule  = interfaces.ProgressionModule
	ProgressionMeeting = interfaces.ProgressionMeeting
)

// Severity grades compile findings.
type Severity = interfaces.Severity

// Finding severities.
const (
	SeverityError   = interfaces.SeverityError
	SeverityWarning = interfaces.SeverityWarning
)

// MarkdownParser exports the markdown rendering contract.
type MarkdownParser = interfaces.MarkdownParser

// Logger exports the leveled logging contract.
type Logger = interfaces.Logger

// LoggerProvider exports the named logger provider contract.
type LoggerProvider = interfaces.LoggerProvider

// RouteResolver exports the href resolver handle.
type RouteResolver = *routes.Resolver

// Module represents the top level courseware runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a courseware module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	if m == nil {
		return nil
	}
	return m.container
}

// Compiler returns the configured compiler service.
func (m *Module) Compiler() CompilerService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CompilerService()
}

// Markdown returns the markdown parser when rendering is enabled.
func (m *Module) Markdown() MarkdownParser {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MarkdownParser()
}

// Routes returns the href resolver when navigation is configured.
func (m *Module) Routes() RouteResolver {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.RouteResolver()
}

// Logging returns the configured logger provider, if any.
func (m *Module) Logging() LoggerProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider()
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	if m == nil || m.container == nil {
		return Config{}
	}
	return m.container.Config
}
