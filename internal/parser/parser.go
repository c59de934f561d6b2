package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/fileset"
	"github.com/goliatone/go-courseware/internal/logging"
	"github.com/goliatone/go-courseware/internal/markup"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// Parser builds typed per-kind ASTs from raw file text. Parsing is
// deliberately permissive: it reports grammar-level findings and keeps
// best-effort nodes wherever the text allows, leaving semantic enforcement to
// the validator. A Parser is stateless and safe for concurrent use.
type Parser struct {
	logger interfaces.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger attaches a logger for per-file trace output.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New constructs a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DetectKind classifies a corpus file. The frontmatter type key wins; path
// prefixes are the fallback; everything else is a leaf source file.
func DetectKind(path, raw string) ast.FileKind {
	src := fileset.SplitSource(raw)
	switch strings.ToLower(src.MetaString("type")) {
	case "course":
		return ast.KindCourse
	case "module":
		return ast.KindModule
	case "learning-outcome", "outcome":
		return ast.KindLearningOutcome
	case "lens":
		return ast.KindLens
	}

	normalized := fileset.Normalize(path)
	for _, segment := range strings.Split(normalized, "/") {
		switch strings.ToLower(segment) {
		case "courses":
			return ast.KindCourse
		case "modules":
			return ast.KindModule
		case "outcomes", "learning-outcomes":
			return ast.KindLearningOutcome
		case "lenses":
			return ast.KindLens
		}
	}
	return ast.KindSource
}

// fileHeader is the shared frontmatter preamble for the four strict kinds.
type fileHeader struct {
	fm   markup.Frontmatter
	body string
	tier ast.Tier
}

func (p *Parser) parseHeader(path, raw string, errs *[]interfaces.ContentError) fileHeader {
	fm, err := markup.SplitFrontmatter(raw)
	switch {
	case err == nil:
	case errors.Is(err, markup.ErrMissingFrontmatter):
		*errs = append(*errs, interfaces.ContentError{
			File:     path,
			Line:     1,
			Message:  "file does not start with a frontmatter block",
			Severity: interfaces.SeverityError,
		})
	case errors.Is(err, markup.ErrUnclosedFrontmatter):
		*errs = append(*errs, interfaces.ContentError{
			File:     path,
			Line:     1,
			Message:  "frontmatter block is never closed",
			Severity: interfaces.SeverityError,
		})
	case errors.Is(err, markup.ErrInvalidHeaderSyntax):
		*errs = append(*errs, interfaces.ContentError{
			File:     path,
			Line:     1,
			Message:  "frontmatter is not a key-value mapping",
			Severity: interfaces.SeverityError,
		})
	default:
		*errs = append(*errs, interfaces.ContentError{
			File:     path,
			Line:     1,
			Message:  err.Error(),
			Severity: interfaces.SeverityError,
		})
	}

	header := fileHeader{fm: fm, body: markup.StripCritic(fm.Body)}
	if label := fm.HeaderString("tier"); label != "" {
		tier, ok := ast.ParseTier(label)
		if !ok {
			*errs = append(*errs, interfaces.ContentError{
				File:       path,
				Line:       1,
				Message:    fmt.Sprintf("unrecognized tier %q", label),
				Suggestion: "expected production, wip, or validator-ignore",
				Severity:   interfaces.SeverityWarning,
			})
		}
		header.tier = tier
	}
	return header
}

// contentID reads the frontmatter id leniently; the validator reports missing
// or malformed ids.
func contentID(fm markup.Frontmatter) uuid.UUID {
	return parseUUID(fm.HeaderString("id"))
}

func parseUUID(value string) uuid.UUID {
	if id, err := uuid.Parse(strings.TrimSpace(value)); err == nil {
		return id
	}
	return uuid.Nil
}

// linkPath extracts the wikilink target from a field block's source field.
// Non-link values yield ""; the validator reports them.
func linkPath(fields markup.FieldBlock) string {
	if value, ok := fields.Get("source"); ok {
		if link, ok := markup.ParseWikilink(value); ok {
			return link.Path
		}
	}
	return ""
}

func boolField(fields markup.FieldBlock, name string) bool {
	return fields.Value(name) == "true"
}

// appendFindings converts grammar findings into content errors for file.
func appendFindings(errs []interfaces.ContentError, file string, findings []markup.Finding) []interfaces.ContentError {
	for _, finding := range findings {
		severity := interfaces.SeverityError
		if finding.Warning {
			severity = interfaces.SeverityWarning
		}
		errs = append(errs, interfaces.ContentError{
			File:       file,
			Line:       finding.Line,
			Message:    finding.Message,
			Suggestion: finding.Suggestion,
			Severity:   severity,
		})
	}
	return errs
}
