package compiler

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/flatten"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// flattenModules flattens the given module paths over the worker pool, then
// assembles the results sequentially so slug warnings and output order stay
// deterministic.
func (s *Service) flattenModules(ctx context.Context, c *corpus, paths []string) []interfaces.FlattenedModule {
	flattener := flatten.New(c,
		flatten.WithLogger(s.logger),
		flatten.WithMarkdown(s.markdown),
		flatten.WithDefaultTier(s.defaultTier),
		flatten.WithPrecedence(s.precedence),
	)

	results := make(map[string]*interfaces.FlattenedModule, len(paths))
	var mu sync.Mutex
	s.forEach(ctx, paths, func(path string) {
		flat, errs := flattener.Module(c.modules[path])
		mu.Lock()
		results[path] = flat
		mu.Unlock()
		c.append(path, errs...)
	})

	seen := map[string]string{}
	modules := make([]interfaces.FlattenedModule, 0, len(paths))
	for _, path := range paths {
		flat := results[path]
		if flat == nil {
			continue
		}
		if first, ok := seen[flat.Slug]; ok {
			c.warnf(path, 1, "module slug %q is already used by %s", flat.Slug, first)
		} else {
			seen[flat.Slug] = path
		}
		href, err := s.routes.ModuleHref(flat.Slug)
		if err != nil {
			s.logger.Warn("module href unresolved", "module", flat.Slug, "error", err)
		}
		flat.Href = href
		modules = append(modules, *flat)
	}
	sort.SliceStable(modules, func(i, j int) bool {
		return modules[i].Slug < modules[j].Slug
	})
	return modules
}

// resolveCourses maps each course progression onto compiled module slugs.
// Authored wikilink paths never leak into output; an entry either resolves to
// the target module's frontmatter slug or produces a finding.
func (s *Service) resolveCourses(c *corpus) []interfaces.Course {
	var courses []interfaces.Course
	for _, path := range c.coursePaths() {
		course := c.courses[path]
		courseTier := s.effectiveTier(course.Tier)

		items := make([]interfaces.ProgressionItem, 0, len(course.Items))
		for _, item := range course.Items {
			switch it := item.(type) {
			case ast.MeetingMarker:
				items = append(items, interfaces.ProgressionItem{
					Kind:   interfaces.ProgressionMeeting,
					Number: it.Number,
				})
			case ast.ModuleRef:
				if entry, ok := s.resolveModuleRef(c, path, courseTier, it); ok {
					items = append(items, entry)
				}
			}
		}

		href, err := s.routes.CourseHref(course.Slug)
		if err != nil {
			s.logger.Warn("course href unresolved", "course", course.Slug, "error", err)
		}
		courses = append(courses, interfaces.Course{
			Slug:        course.Slug,
			Title:       course.Title,
			Href:        href,
			Progression: items,
		})
	}
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].Slug < courses[j].Slug
	})
	return courses
}

func (s *Service) resolveModuleRef(c *corpus, path string, courseTier ast.Tier, ref ast.ModuleRef) (interfaces.ProgressionItem, bool) {
	if ref.LinkPath == "" {
		return interfaces.ProgressionItem{}, false
	}
	target, ok := c.files.Resolve(path, ref.LinkPath)
	if !ok {
		err := interfaces.ContentError{
			File:     path,
			Line:     ref.Line,
			Message:  fmt.Sprintf("cannot resolve [[%s]]", ref.LinkPath),
			Severity: interfaces.SeverityError,
		}
		if hint := c.files.Suggest(path, ref.LinkPath); hint != "" {
			err.Suggestion = fmt.Sprintf("source:: [[%s]]", hint)
		}
		c.append(path, err)
		return interfaces.ProgressionItem{}, false
	}
	module, ok := c.modules[target]
	if !ok {
		c.errorf(path, ref.Line, "%q is not a module", target)
		return interfaces.ProgressionItem{}, false
	}
	moduleTier := s.effectiveTier(c.tiers[target])
	if courseTier.Rank() > moduleTier.Rank() {
		c.errorf(path, ref.Line, "tier violation: %s content references %s file %q", courseTier, moduleTier, target)
	}
	if moduleTier == ast.TierValidatorIgnore || c.excluded[target] {
		return interfaces.ProgressionItem{}, false
	}
	if module.Slug == "" {
		c.errorf(path, ref.Line, "module %q has no slug", target)
		return interfaces.ProgressionItem{}, false
	}
	return interfaces.ProgressionItem{
		Kind:     interfaces.ProgressionModule,
		Slug:     module.Slug,
		Optional: ref.Optional,
	}, true
}
