// Package routes builds public hrefs for compiled courses and modules from a
// go-urlkit route table. Navigation is optional: a nil Resolver resolves
// every href to the empty string.
package routes

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// Options configures the go-urlkit backed resolver.
type Options struct {
	Manager     *urlkit.RouteManager
	Group       string
	CourseRoute string
	ModuleRoute string
	SlugParam   string
}

// Resolver resolves course and module hrefs using a go-urlkit RouteManager.
type Resolver struct {
	manager *urlkit.RouteManager

	group       string
	courseRoute string
	moduleRoute string
	slugParam   string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewResolver constructs a resolver backed by go-urlkit.
func NewResolver(opts Options) *Resolver {
	if opts.CourseRoute == "" {
		opts.CourseRoute = "course"
	}
	if opts.ModuleRoute == "" {
		opts.ModuleRoute = "module"
	}
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}

	return &Resolver{
		manager:     opts.Manager,
		group:       strings.TrimSpace(opts.Group),
		courseRoute: opts.CourseRoute,
		moduleRoute: opts.ModuleRoute,
		slugParam:   opts.SlugParam,
		groupCache:  make(map[string]*urlkit.Group),
	}
}

// CourseHref builds the public URL for a compiled course.
func (r *Resolver) CourseHref(slug string) (string, error) {
	if r == nil {
		return "", nil
	}
	return r.href(r.courseRoute, slug)
}

// ModuleHref builds the public URL for a compiled module.
func (r *Resolver) ModuleHref(slug string) (string, error) {
	if r == nil {
		return "", nil
	}
	return r.href(r.moduleRoute, slug)
}

func (r *Resolver) href(route, slug string) (string, error) {
	if r.manager == nil || r.group == "" || route == "" || strings.TrimSpace(slug) == "" {
		return "", nil
	}

	group, err := r.groupForPath(r.group)
	if err != nil || group == nil {
		return "", err
	}

	builder, err := r.safeBuilder(group, route)
	if err != nil || builder == nil {
		return "", err
	}

	builder.WithParam(r.slugParam, strings.TrimSpace(slug))
	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("routes: build %s href: %w", route, err)
	}
	return url, nil
}

func (r *Resolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	if len(parts) == 0 {
		return nil, fmt.Errorf("routes: invalid route group path %q", path)
	}

	root, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

// safeBuilder shields callers from urlkit's panic on unknown route names.
func (r *Resolver) safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("routes: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("routes: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("routes: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("routes: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("routes: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("routes: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, err
}
