package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-courseware/internal/ast"
)

// ErrWorkersInvalid indicates a negative compiler worker count.
var ErrWorkersInvalid = errors.New("courseware config: compiler workers must be zero or positive")

// ErrTierUnknown indicates an unrecognized default tier label.
var ErrTierUnknown = errors.New("courseware config: default tier is invalid")

// ErrPrecedenceUnknown indicates an unrecognized tier precedence rule.
var ErrPrecedenceUnknown = errors.New("courseware config: tier precedence is invalid")

var ErrLoggingProviderRequired = errors.New("courseware config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("courseware config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("courseware config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("courseware config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the courseware
// module. Fields intentionally use simple types so host applications can map
// their own configuration formats onto it.
type Config struct {
	Enabled    bool
	ContentDir string
	Compiler   CompilerConfig
	Markdown   MarkdownConfig
	Navigation NavigationConfig
	Features   Features
	Commands   CommandsConfig
	Logging    LoggingConfig
}

// CompilerConfig tunes the compilation pipeline.
type CompilerConfig struct {
	// Workers bounds the parse pool; zero means one worker per CPU.
	Workers int
	// DefaultTier is assumed for files that declare no tier.
	DefaultTier string
	// TierPrecedence picks the tier governing an edge when tiers conflict
	// along a reference chain: strictest, outermost, or innermost.
	TierPrecedence string
}

// MarkdownConfig captures discovery and parser behaviour for corpus loading.
type MarkdownConfig struct {
	Pattern   string
	Recursive bool
	Parser    MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// NavigationConfig captures routing configuration for href resolution.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit backed href resolver.
type URLKitResolverConfig struct {
	DefaultGroup string
	CourseRoute  string
	ModuleRoute  string
	SlugParam    string
}

// Features toggles module functionality.
type Features struct {
	Commands       bool
	Logger         bool
	MarkdownRender bool
	Routes         bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	// LintCron schedules recurring corpus lint runs when a cron registrar is
	// wired, e.g. "@daily". Empty disables the schedule.
	LintCron string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a filesystem-backed corpus.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		ContentDir: "content",
		Compiler: CompilerConfig{
			Workers:        0,
			DefaultTier:    "production",
			TierPrecedence: "strictest",
		},
		Markdown: MarkdownConfig{
			Pattern:   "*.md",
			Recursive: true,
		},
		Navigation: NavigationConfig{},
		Features:   Features{},
		Commands:   CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Compiler.Workers < 0 {
		return ErrWorkersInvalid
	}
	if tier := strings.TrimSpace(cfg.Compiler.DefaultTier); tier != "" {
		if _, ok := ast.ParseTier(tier); !ok {
			return fmt.Errorf("%w: %s", ErrTierUnknown, tier)
		}
	}
	if rule := strings.TrimSpace(cfg.Compiler.TierPrecedence); rule != "" && !isSupportedPrecedence(rule) {
		return fmt.Errorf("%w: %s", ErrPrecedenceUnknown, rule)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func isSupportedPrecedence(rule string) bool {
	switch strings.ToLower(strings.TrimSpace(rule)) {
	case "strictest", "outermost", "innermost":
		return true
	default:
		return false
	}
}
