package courseware

import "github.com/goliatone/go-courseware/internal/runtimeconfig"

var (
	ErrWorkersInvalid          = runtimeconfig.ErrWorkersInvalid
	ErrTierUnknown             = runtimeconfig.ErrTierUnknown
	ErrPrecedenceUnknown       = runtimeconfig.ErrPrecedenceUnknown
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	CompilerConfig       = runtimeconfig.CompilerConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	NavigationConfig     = runtimeconfig.NavigationConfig
	URLKitResolverConfig = runtimeconfig.URLKitResolverConfig
	Features             = runtimeconfig.Features
	CommandsConfig       = runtimeconfig.CommandsConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

// DefaultConfig returns opinionated defaults for a filesystem-backed corpus.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
