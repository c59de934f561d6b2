// Package compiler orchestrates the compilation pipeline: every corpus file
// is classified and parsed with a bounded worker pool, the typed ASTs are
// validated, modules flatten concurrently, and course progressions resolve
// against the module set. All findings accumulate into one error list; a
// broken file never aborts the batch.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/fileset"
	"github.com/goliatone/go-courseware/internal/flatten"
	"github.com/goliatone/go-courseware/internal/logging"
	"github.com/goliatone/go-courseware/internal/parser"
	"github.com/goliatone/go-courseware/internal/routes"
	"github.com/goliatone/go-courseware/internal/validate"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// ErrModuleNotFound indicates CompileModule could not match its argument to a
// module file path or slug.
var ErrModuleNotFound = errors.New("compiler: module not found")

// Service implements interfaces.CompilerService. A Service is safe for
// concurrent use; each compile call builds its own corpus state.
type Service struct {
	logger      interfaces.Logger
	parser      *parser.Parser
	validator   *validate.Validator
	markdown    interfaces.MarkdownParser
	routes      *routes.Resolver
	workers     int
	defaultTier ast.Tier
	precedence  flatten.TierPrecedence
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger shared by the pipeline stages.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWorkers bounds the parse and flatten pools; zero means one per CPU.
func WithWorkers(workers int) Option {
	return func(s *Service) {
		s.workers = workers
	}
}

// WithDefaultTier sets the tier assumed for files that declare none.
func WithDefaultTier(tier ast.Tier) Option {
	return func(s *Service) {
		if tier != "" {
			s.defaultTier = tier
		}
	}
}

// WithTierPrecedence selects the tier conflict rule for reference chains.
func WithTierPrecedence(precedence flatten.TierPrecedence) Option {
	return func(s *Service) {
		if precedence != "" {
			s.precedence = precedence
		}
	}
}

// WithMarkdown renders segment content to HTML during flattening.
func WithMarkdown(renderer interfaces.MarkdownParser) Option {
	return func(s *Service) {
		s.markdown = renderer
	}
}

// WithRoutes resolves course and module hrefs in compiled output.
func WithRoutes(resolver *routes.Resolver) Option {
	return func(s *Service) {
		s.routes = resolver
	}
}

// New constructs a compiler Service.
func New(opts ...Option) *Service {
	s := &Service{
		logger:      logging.NoOp(),
		defaultTier: ast.TierProduction,
		precedence:  flatten.PrecedenceStrictest,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.parser = parser.New(parser.WithLogger(s.logger))
	s.validator = validate.New(validate.WithLogger(s.logger))
	return s
}

// Compile runs the full pipeline over the request corpus.
func (s *Service) Compile(ctx context.Context, req interfaces.CompileRequest) (*interfaces.CompileResult, error) {
	ctx = ensureContext(ctx)
	files := fileset.New(req.Files)
	s.logger.Info("compiling corpus", "root", req.Root, "files", files.Len())

	c := s.parseAll(ctx, files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.validateAll(c)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	modules := s.flattenModules(ctx, c, c.modulePaths())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	courses := s.resolveCourses(c)

	result := &interfaces.CompileResult{
		Modules: modules,
		Courses: courses,
		Errors:  c.sortedErrors(),
	}
	s.logger.Info("corpus compiled",
		"modules", len(result.Modules),
		"courses", len(result.Courses),
		"errors", len(result.Errors),
	)
	return result, nil
}

// CompileModule runs the pipeline but flattens only the named module. The
// module may be addressed by corpus path or by frontmatter slug. Courses are
// not resolved; the error list still covers the whole corpus, since the
// module's references reach across it.
func (s *Service) CompileModule(ctx context.Context, req interfaces.CompileRequest, module string) (*interfaces.CompileResult, error) {
	ctx = ensureContext(ctx)
	files := fileset.New(req.Files)

	c := s.parseAll(ctx, files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.validateAll(c)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.findModule(c, module)
	if path == "" {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, module)
	}

	var paths []string
	if !c.excluded[path] {
		paths = []string{path}
	}
	modules := s.flattenModules(ctx, c, paths)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &interfaces.CompileResult{
		Modules: modules,
		Errors:  c.sortedErrors(),
	}, nil
}

// Lint runs the full pipeline and returns only the findings. Cycle, tier,
// and excerpt diagnostics only surface while flattening, so linting is
// compiling with the output discarded.
func (s *Service) Lint(ctx context.Context, req interfaces.CompileRequest) ([]interfaces.ContentError, error) {
	result, err := s.Compile(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Errors, nil
}

// findModule matches the argument against corpus paths first, then against
// module slugs. Slug matches prefer the lexicographically first path so the
// answer is stable when slugs collide.
func (s *Service) findModule(c *corpus, key string) string {
	if normalized := fileset.Normalize(key); normalized != "" {
		if _, ok := c.modules[normalized]; ok {
			return normalized
		}
	}
	var best string
	for path, module := range c.modules {
		if module.Slug == key && (best == "" || path < best) {
			best = path
		}
	}
	return best
}

func (s *Service) effectiveTier(declared ast.Tier) ast.Tier {
	if declared == "" {
		return s.defaultTier
	}
	return declared
}

func (s *Service) effectiveWorkerCount(jobs int) int {
	workers := s.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if jobs > 0 && workers > jobs {
		return jobs
	}
	return workers
}

// forEach fans paths out over the worker pool. fn must synchronize its own
// writes; cancellation drains without error, callers check ctx afterwards.
func (s *Service) forEach(ctx context.Context, paths []string, fn func(path string)) {
	workers := s.effectiveWorkerCount(len(paths))
	if workers <= 1 {
		for _, path := range paths {
			if ctx.Err() != nil {
				return
			}
			fn(path)
		}
		return
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
					fn(path)
				}
			}
		}()
	}

feed:
	for _, path := range paths {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
