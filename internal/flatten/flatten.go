// Package flatten resolves a module AST into the linear section list served
// to renderers. It is deliberately permissive: policy violations are reported
// and the content included anyway, except for branches into validator-ignore
// files and files the validator excluded. Cycle detection bounds every
// traversal.
package flatten

import (
	"github.com/google/uuid"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/fileset"
	"github.com/goliatone/go-courseware/internal/identity"
	"github.com/goliatone/go-courseware/internal/logging"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// Corpus is the read-only view of the parsed content set a flattening pass
// works against. Implementations must be safe for concurrent readers.
type Corpus interface {
	// Resolve maps a wikilink authored in fromFile onto a corpus path.
	Resolve(fromFile, link string) (string, bool)
	// Suggest proposes a near-miss correction for an unresolvable link.
	Suggest(fromFile, link string) string
	// Outcome returns the parsed learning outcome at path.
	Outcome(path string) (*ast.LearningOutcome, bool)
	// Lens returns the parsed lens at path.
	Lens(path string) (*ast.Lens, bool)
	// Source returns the frontmatter-split source file at path.
	Source(path string) (fileset.Source, bool)
	// Excluded reports whether validation excluded path from output.
	Excluded(path string) bool
	// Tier returns the maturity tier declared at path, "" when unset.
	Tier(path string) ast.Tier
}

// TierPrecedence selects which tier governs an edge when tiers conflict
// along a reference chain.
type TierPrecedence string

const (
	// PrecedenceStrictest holds every edge to the strictest tier seen so far.
	PrecedenceStrictest TierPrecedence = "strictest"
	// PrecedenceOutermost holds every edge to the root module's tier.
	PrecedenceOutermost TierPrecedence = "outermost"
	// PrecedenceInnermost holds each edge to the immediate referencer's tier.
	PrecedenceInnermost TierPrecedence = "innermost"
)

// Flattener links modules against a corpus. Safe for concurrent use; each
// Module call keeps its own traversal state.
type Flattener struct {
	corpus      Corpus
	markdown    interfaces.MarkdownParser
	logger      interfaces.Logger
	defaultTier ast.Tier
	precedence  TierPrecedence
}

// Option configures a Flattener.
type Option func(*Flattener)

// WithLogger attaches a logger for traversal trace output.
func WithLogger(logger interfaces.Logger) Option {
	return func(f *Flattener) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMarkdown renders segment content to HTML alongside the raw text.
func WithMarkdown(parser interfaces.MarkdownParser) Option {
	return func(f *Flattener) {
		f.markdown = parser
	}
}

// WithDefaultTier sets the tier assumed for files that declare none.
func WithDefaultTier(tier ast.Tier) Option {
	return func(f *Flattener) {
		if tier != "" {
			f.defaultTier = tier
		}
	}
}

// WithPrecedence selects the tier conflict rule.
func WithPrecedence(precedence TierPrecedence) Option {
	return func(f *Flattener) {
		switch precedence {
		case PrecedenceStrictest, PrecedenceOutermost, PrecedenceInnermost:
			f.precedence = precedence
		}
	}
}

// New constructs a Flattener over corpus.
func New(corpus Corpus, opts ...Option) *Flattener {
	f := &Flattener{
		corpus:      corpus,
		logger:      logging.NoOp(),
		defaultTier: ast.TierProduction,
		precedence:  PrecedenceStrictest,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Module flattens one module AST into its served form plus the findings
// gathered along the way.
func (f *Flattener) Module(module *ast.Module) (*interfaces.FlattenedModule, []interfaces.ContentError) {
	t := &traversal{
		f:       f,
		visited: map[string]bool{module.Path: true},
	}

	out := &interfaces.FlattenedModule{
		Slug:      module.Slug,
		Title:     module.Title,
		ContentID: module.ContentID,
	}
	if out.ContentID == uuid.Nil {
		out.ContentID = identity.ModuleUUID(module.Path)
	}

	rootTier := f.effectiveTier(module.Tier)
	for i, section := range module.Sections {
		switch s := section.(type) {
		case ast.PageSection:
			out.Sections = append(out.Sections, t.page(module, i, s))
		case ast.LearningOutcomeRef:
			t.outcomeRef(module.Path, rootTier, s, out)
		case ast.UncategorizedSection:
			for _, ref := range s.LensRefs {
				t.lensRef(module.Path, rootTier, ref, ref.Optional, out)
			}
		}
	}

	f.logger.Debug("module flattened",
		"file", module.Path,
		"slug", module.Slug,
		"sections", len(out.Sections),
		"errors", len(t.errors),
	)
	return out, t.errors
}

// render converts markdown content to HTML when a renderer is configured.
// Render failures are logged, not reported as content findings.
func (f *Flattener) render(file, content string) string {
	if f.markdown == nil || content == "" {
		return ""
	}
	html, err := f.markdown.Parse([]byte(content))
	if err != nil {
		f.logger.Warn("markdown render failed", "file", file, "error", err)
		return ""
	}
	return string(html)
}

// effectiveTier substitutes the configured default for unset tiers.
func (f *Flattener) effectiveTier(declared ast.Tier) ast.Tier {
	if declared == "" {
		return f.defaultTier
	}
	return declared
}

// nextTier computes the tier governing edges below a just-followed reference.
func (f *Flattener) nextTier(refTier, targetTier ast.Tier) ast.Tier {
	switch f.precedence {
	case PrecedenceOutermost:
		return refTier
	case PrecedenceInnermost:
		return targetTier
	default:
		if targetTier.Rank() > refTier.Rank() {
			return targetTier
		}
		return refTier
	}
}

// traversal is the state of one Module call: the visited-path set that
// detects circular references and the findings gathered so far.
type traversal struct {
	f       *Flattener
	visited map[string]bool
	errors  []interfaces.ContentError
}

func (t *traversal) errorf(file string, line int, message, suggestion string) {
	t.errors = append(t.errors, interfaces.ContentError{
		File:       file,
		Line:       line,
		Message:    message,
		Suggestion: suggestion,
		Severity:   interfaces.SeverityError,
	})
}

func (t *traversal) warnf(file string, line int, message, suggestion string) {
	t.errors = append(t.errors, interfaces.ContentError{
		File:       file,
		Line:       line,
		Message:    message,
		Suggestion: suggestion,
		Severity:   interfaces.SeverityWarning,
	})
}
