package di

import (
	"context"
	"errors"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-courseware/internal/runtimeconfig"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

func TestNewContainerDefaults(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if container.CompilerService() == nil {
		t.Fatal("expected a compiler service by default")
	}
	if container.LoggerProvider() != nil {
		t.Fatal("expected no logger provider while the logging feature is off")
	}
	if container.MarkdownParser() != nil {
		t.Fatal("expected no markdown parser while rendering is off")
	}
	if container.RouteResolver() != nil {
		t.Fatal("expected no route resolver while navigation is off")
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Compiler.Workers = -1

	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrWorkersInvalid) {
		t.Fatalf("expected worker validation error, got %v", err)
	}
}

func TestNewContainerConsoleLogging(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "console"
	cfg.Logging.Level = "warn"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	provider := container.LoggerProvider()
	if provider == nil {
		t.Fatal("expected a console logger provider")
	}
	if provider.GetLogger("courseware.compiler") == nil {
		t.Fatal("expected the provider to vend module loggers")
	}
}

func TestNewContainerGologgerLogging(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "console"
	cfg.Logging.Level = "debug"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected a go-logger provider")
	}
}

func TestNewContainerMarkdownFeature(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.MarkdownRender = true
	cfg.Markdown.Parser.HardWraps = true

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	parser := container.MarkdownParser()
	if parser == nil {
		t.Fatal("expected a markdown parser when rendering is enabled")
	}
	html, err := parser.Parse([]byte("plain *emphasis*"))
	if err != nil {
		t.Fatalf("parse markdown: %v", err)
	}
	if len(html) == 0 {
		t.Fatal("expected rendered HTML output")
	}
}

func TestNewContainerNavigation(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Routes = true
	cfg.Navigation.RouteConfig = &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "learn",
				BaseURL: "https://learn.example.com",
				Paths: map[string]string{
					"course": "/courses/:slug",
					"module": "/modules/:slug",
				},
			},
		},
	}
	cfg.Navigation.URLKit.DefaultGroup = "learn"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	resolver := container.RouteResolver()
	if resolver == nil {
		t.Fatal("expected a route resolver when navigation is configured")
	}
	href, err := resolver.ModuleHref("work-history")
	if err != nil {
		t.Fatalf("module href: %v", err)
	}
	if href != "https://learn.example.com/modules/work-history" {
		t.Fatalf("unexpected href: %q", href)
	}
	if container.RouteManager() == nil {
		t.Fatal("expected the urlkit manager exposed for host wiring")
	}
}

func TestNewContainerNavigationRequiresRouteConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Routes = true

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.RouteResolver() != nil {
		t.Fatal("expected no resolver without a route table")
	}
}

func TestNewContainerServiceOverride(t *testing.T) {
	override := &staticCompilerService{}

	container, err := NewContainer(runtimeconfig.DefaultConfig(), WithCompilerService(override))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.CompilerService() != override {
		t.Fatal("expected the compiler service override to win")
	}
}

func TestNewContainerCompilesCorpus(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := container.CompilerService().Compile(context.Background(), interfaces.CompileRequest{
		Files: map[string]string{
			"modules/work.md": "---\ntype: module\nslug: work-history\ntitle: Work\n---\n# Page: Welcome\n## Text\ncontent:: Start with the big picture.\n",
		},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(result.Modules) != 1 || result.Modules[0].Slug != "work-history" {
		t.Fatalf("expected the module compiled, got %+v", result.Modules)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no findings, got %+v", result.Errors)
	}
}

type staticCompilerService struct{}

func (staticCompilerService) Compile(context.Context, interfaces.CompileRequest) (*interfaces.CompileResult, error) {
	return &interfaces.CompileResult{}, nil
}

func (staticCompilerService) CompileModule(context.Context, interfaces.CompileRequest, string) (*interfaces.CompileResult, error) {
	return &interfaces.CompileResult{}, nil
}

func (staticCompilerService) Lint(context.Context, interfaces.CompileRequest) ([]interfaces.ContentError, error) {
	return nil, nil
}
