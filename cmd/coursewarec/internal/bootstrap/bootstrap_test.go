package bootstrap

import (
	"errors"
	"testing"

	"github.com/goliatone/go-courseware/internal/runtimeconfig"
)

func TestBuildModuleConfiguresCompiler(t *testing.T) {
	resources, err := BuildModule(Options{})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Module == nil {
		t.Fatal("expected module to be initialised")
	}
	if resources.Service == nil {
		t.Fatal("expected compiler service to be configured")
	}
	if resources.Logger == nil {
		t.Fatal("expected a logger, even without a provider")
	}
	if got := resources.Module.Config().ContentDir; got != "content" {
		t.Fatalf("expected the default content dir, got %q", got)
	}
}

func TestBuildModuleAppliesOptions(t *testing.T) {
	resources, err := BuildModule(Options{
		ContentDir:     "corpus",
		Pattern:        "*.markdown",
		Workers:        2,
		DefaultTier:    "wip",
		TierPrecedence: "outermost",
		RenderHTML:     true,
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}

	cfg := resources.Module.Config()
	if cfg.ContentDir != "corpus" || cfg.Markdown.Pattern != "*.markdown" {
		t.Fatalf("corpus options not applied: %+v", cfg)
	}
	if cfg.Compiler.Workers != 2 || cfg.Compiler.DefaultTier != "wip" || cfg.Compiler.TierPrecedence != "outermost" {
		t.Fatalf("compiler options not applied: %+v", cfg.Compiler)
	}
	if !cfg.Features.MarkdownRender {
		t.Fatal("render option should enable markdown rendering")
	}
	if resources.Module.Markdown() == nil {
		t.Fatal("expected a markdown parser when rendering is enabled")
	}
}

func TestBuildModuleLogLevelEnablesLogging(t *testing.T) {
	resources, err := BuildModule(Options{LogLevel: "debug"})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Module.Logging() == nil {
		t.Fatal("expected a logger provider when a level is requested")
	}
}

func TestBuildModuleRejectsInvalidTier(t *testing.T) {
	if _, err := BuildModule(Options{DefaultTier: "experimental"}); !errors.Is(err, runtimeconfig.ErrTierUnknown) {
		t.Fatalf("expected a tier validation error, got %v", err)
	}
}
