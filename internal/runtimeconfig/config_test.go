package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-courseware/internal/runtimeconfig"
)

func TestConfigValidate_Defaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Compiler.DefaultTier != "production" {
		t.Fatalf("unexpected default tier: %q", cfg.Compiler.DefaultTier)
	}
	if cfg.Compiler.TierPrecedence != "strictest" {
		t.Fatalf("unexpected precedence: %q", cfg.Compiler.TierPrecedence)
	}
}

func TestConfigValidate_RejectsNegativeWorkers(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Compiler.Workers = -1

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrWorkersInvalid) {
		t.Fatalf("expected ErrWorkersInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownTier(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Compiler.DefaultTier = "draft"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrTierUnknown) {
		t.Fatalf("expected ErrTierUnknown, got %v", err)
	}
}

func TestConfigValidate_AcceptsTierAliases(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Compiler.DefaultTier = "prod"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RejectsUnknownPrecedence(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Compiler.TierPrecedence = "loosest"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrPrecedenceUnknown) {
		t.Fatalf("expected ErrPrecedenceUnknown, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
