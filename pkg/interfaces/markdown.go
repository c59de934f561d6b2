package interfaces

// MarkdownParser converts raw Markdown bytes into HTML. Implementations are
// expected to be reusable across calls so a single instance can serve
// concurrent compilations.
type MarkdownParser interface {
	// Parse renders Markdown with the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions renders Markdown with per-call overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions tunes rendering without rebuilding the parser. Names stay
// plain strings so they can be fed straight from configuration files and
// CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}
