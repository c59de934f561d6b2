package compiler

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/fileset"
	"github.com/goliatone/go-courseware/internal/parser"
	"github.com/goliatone/go-courseware/internal/validate"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// corpus holds one compile's parsed state. Writes go through the mutex while
// the parse and flatten pools run; the sequential passes read it freely.
type corpus struct {
	files    *fileset.FileSet
	courses  map[string]*ast.Course
	modules  map[string]*ast.Module
	outcomes map[string]*ast.LearningOutcome
	lenses   map[string]*ast.Lens
	sources  map[string]fileset.Source
	tiers    map[string]ast.Tier
	excluded map[string]bool
	errors   map[string][]interfaces.ContentError
	mu       sync.Mutex
}

func newCorpus(files *fileset.FileSet) *corpus {
	return &corpus{
		files:    files,
		courses:  map[string]*ast.Course{},
		modules:  map[string]*ast.Module{},
		outcomes: map[string]*ast.LearningOutcome{},
		lenses:   map[string]*ast.Lens{},
		sources:  map[string]fileset.Source{},
		tiers:    map[string]ast.Tier{},
		excluded: map[string]bool{},
		errors:   map[string][]interfaces.ContentError{},
	}
}

func (c *corpus) append(path string, errs ...interfaces.ContentError) {
	if len(errs) == 0 {
		return
	}
	c.mu.Lock()
	c.errors[path] = append(c.errors[path], errs...)
	c.mu.Unlock()
}

func (c *corpus) errorf(path string, line int, format string, args ...any) {
	c.append(path, interfaces.ContentError{
		File:     path,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
		Severity: interfaces.SeverityError,
	})
}

func (c *corpus) warnf(path string, line int, format string, args ...any) {
	c.append(path, interfaces.ContentError{
		File:     path,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
		Severity: interfaces.SeverityWarning,
	})
}

// Resolve implements flatten.Corpus.
func (c *corpus) Resolve(fromFile, link string) (string, bool) {
	return c.files.Resolve(fromFile, link)
}

// Suggest implements flatten.Corpus.
func (c *corpus) Suggest(fromFile, link string) string {
	return c.files.Suggest(fromFile, link)
}

// Outcome implements flatten.Corpus.
func (c *corpus) Outcome(path string) (*ast.LearningOutcome, bool) {
	outcome, ok := c.outcomes[path]
	return outcome, ok
}

// Lens implements flatten.Corpus.
func (c *corpus) Lens(path string) (*ast.Lens, bool) {
	lens, ok := c.lenses[path]
	return lens, ok
}

// Source implements flatten.Corpus. Only files classified as sources
// qualify; a lens pointed at a module or course is a kind mismatch, not a
// readable source.
func (c *corpus) Source(path string) (fileset.Source, bool) {
	src, ok := c.sources[path]
	return src, ok
}

// Excluded implements flatten.Corpus.
func (c *corpus) Excluded(path string) bool {
	return c.excluded[path]
}

// Tier implements flatten.Corpus. The zero tier means the file declared
// none; the flattener substitutes its default.
func (c *corpus) Tier(path string) ast.Tier {
	return c.tiers[path]
}

func (c *corpus) modulePaths() []string {
	paths := make([]string, 0, len(c.modules))
	for path := range c.modules {
		if c.excluded[path] {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (c *corpus) coursePaths() []string {
	paths := make([]string, 0, len(c.courses))
	for path := range c.courses {
		if c.excluded[path] {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// sortedErrors flattens the per-file findings into one list ordered by file
// then line. Findings on the same line keep their insertion order.
func (c *corpus) sortedErrors() []interfaces.ContentError {
	paths := make([]string, 0, len(c.errors))
	for path := range c.errors {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var out []interfaces.ContentError
	for _, path := range paths {
		errs := append([]interfaces.ContentError(nil), c.errors[path]...)
		sort.SliceStable(errs, func(i, j int) bool {
			return errs[i].Line < errs[j].Line
		})
		out = append(out, errs...)
	}
	return out
}

// parsed carries one file's parse output back to the corpus maps.
type parsed struct {
	path    string
	kind    ast.FileKind
	course  *ast.Course
	module  *ast.Module
	outcome *ast.LearningOutcome
	lens    *ast.Lens
	source  fileset.Source
	tier    ast.Tier
	errs    []interfaces.ContentError
}

func (p parsed) store(c *corpus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch p.kind {
	case ast.KindCourse:
		c.courses[p.path] = p.course
	case ast.KindModule:
		c.modules[p.path] = p.module
	case ast.KindLearningOutcome:
		c.outcomes[p.path] = p.outcome
	case ast.KindLens:
		c.lenses[p.path] = p.lens
	case ast.KindSource:
		c.sources[p.path] = p.source
	}
	c.tiers[p.path] = p.tier
	if len(p.errs) > 0 {
		c.errors[p.path] = append(c.errors[p.path], p.errs...)
	}
}

// parseAll classifies and parses every file over the worker pool. Grammar
// findings accumulate; nothing is rejected yet.
func (s *Service) parseAll(ctx context.Context, files *fileset.FileSet) *corpus {
	c := newCorpus(files)
	s.forEach(ctx, files.Paths(), func(path string) {
		raw, ok := files.Get(path)
		if !ok {
			return
		}
		s.parseFile(path, raw).store(c)
	})
	return c
}

func (s *Service) parseFile(path, raw string) parsed {
	kind := parser.DetectKind(path, raw)
	p := parsed{path: path, kind: kind}
	switch kind {
	case ast.KindCourse:
		p.course, p.errs = s.parser.ParseCourse(path, raw)
		p.tier = p.course.Tier
	case ast.KindModule:
		p.module, p.errs = s.parser.ParseModule(path, raw)
		p.tier = p.module.Tier
	case ast.KindLearningOutcome:
		p.outcome, p.errs = s.parser.ParseLearningOutcome(path, raw)
		p.tier = p.outcome.Tier
	case ast.KindLens:
		p.lens, p.errs = s.parser.ParseLens(path, raw)
		p.tier = p.lens.Tier
	default:
		p.source = fileset.SplitSource(raw)
		if declared := p.source.MetaString("tier"); declared != "" {
			if tier, ok := ast.ParseTier(declared); ok {
				p.tier = tier
			}
		}
	}
	return p
}

// validateAll runs the strict pass sequentially. Files on the ignore tier
// skip validation entirely and drop out of the output; files the validator
// rejects stay visible to reference resolution but are excluded too.
func (s *Service) validateAll(c *corpus) {
	for _, path := range sortedKeys(c.tiers) {
		if s.effectiveTier(c.tiers[path]) == ast.TierValidatorIgnore {
			c.excluded[path] = true
			continue
		}
		var res validate.Result
		switch {
		case c.courses[path] != nil:
			res = s.validator.Course(c.courses[path])
		case c.modules[path] != nil:
			res = s.validator.Module(c.modules[path])
		case c.outcomes[path] != nil:
			res = s.validator.LearningOutcome(c.outcomes[path])
		case c.lenses[path] != nil:
			res = s.validator.Lens(c.lenses[path])
		default:
			continue
		}
		c.append(path, res.Errors...)
		if res.Excluded {
			c.excluded[path] = true
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
