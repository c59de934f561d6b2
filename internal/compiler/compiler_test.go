package compiler

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-courseware/pkg/interfaces"
	"github.com/goliatone/go-courseware/pkg/testsupport"
)

func courseFiles() map[string]string {
	return testsupport.Corpus()
}

func compile(t *testing.T, files map[string]string, opts ...Option) *interfaces.CompileResult {
	t.Helper()
	result, err := New(opts...).Compile(context.Background(), interfaces.CompileRequest{Files: files})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return result
}

func findMessage(errs []interfaces.ContentError, fragment string) (interfaces.ContentError, bool) {
	for _, e := range errs {
		if strings.Contains(e.Message, fragment) {
			return e, true
		}
	}
	return interfaces.ContentError{}, false
}

func TestCompileCorpus(t *testing.T) {
	result := compile(t, courseFiles())

	if len(result.Errors) != 0 {
		t.Fatalf("expected a clean corpus, got %v", result.Errors)
	}
	if len(result.Modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(result.Modules))
	}
	module := result.Modules[0]
	if module.Slug != "work-history" || module.Title != "Work" {
		t.Fatalf("unexpected module identity: %q %q", module.Slug, module.Title)
	}
	if len(module.Sections) != 2 {
		t.Fatalf("expected page and article sections, got %d", len(module.Sections))
	}

	if len(result.Courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(result.Courses))
	}
	course := result.Courses[0]
	if course.Slug != "deep-history" || course.Title != "Deep History" {
		t.Fatalf("unexpected course identity: %q %q", course.Slug, course.Title)
	}
	want := []interfaces.ProgressionItem{
		{Kind: interfaces.ProgressionMeeting, Number: 1},
		{Kind: interfaces.ProgressionModule, Slug: "work-history"},
	}
	if !reflect.DeepEqual(course.Progression, want) {
		t.Fatalf("unexpected progression: %+v", course.Progression)
	}
}

func TestCompileProgressionUsesModuleSlug(t *testing.T) {
	files := courseFiles()
	delete(files, "modules/work.md")
	files["modules/my-cool-module.md"] = `---
type: module
slug: cognitive-superpowers
title: Cognitive Superpowers
---
# Page: Welcome
## Text
content:: Minds are strange.
`
	files["courses/deep-history.md"] = `---
type: course
slug: deep-history
title: Deep History
---
# Module: Superpowers
source:: [[../modules/my-cool-module.md]]
`

	result := compile(t, files)
	if len(result.Courses) != 1 || len(result.Courses[0].Progression) != 1 {
		t.Fatalf("unexpected courses: %+v", result.Courses)
	}
	item := result.Courses[0].Progression[0]
	if item.Slug != "cognitive-superpowers" {
		t.Fatalf("progression must carry the frontmatter slug, got %q", item.Slug)
	}
}

func TestCompileOrdersOutputBySlug(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"zebra", "apple", "mango"} {
		files["modules/"+name+".md"] = `---
type: module
slug: ` + name + `
title: ` + strings.ToUpper(name) + `
---
# Page: One
## Text
content:: Body.
`
	}
	files["courses/b.md"] = "---\ntype: course\nslug: beta\ntitle: Beta\n---\n# Module: Z\nsource:: [[../modules/zebra.md]]\n"
	files["courses/a.md"] = "---\ntype: course\nslug: alpha\ntitle: Alpha\n---\n# Module: A\nsource:: [[../modules/apple.md]]\n"

	result := compile(t, files)
	var moduleSlugs []string
	for _, m := range result.Modules {
		moduleSlugs = append(moduleSlugs, m.Slug)
	}
	if !reflect.DeepEqual(moduleSlugs, []string{"apple", "mango", "zebra"}) {
		t.Fatalf("modules out of order: %v", moduleSlugs)
	}
	if result.Courses[0].Slug != "alpha" || result.Courses[1].Slug != "beta" {
		t.Fatalf("courses out of order: %v", result.Courses)
	}
}

func TestCompileWorkerCountInvariance(t *testing.T) {
	files := courseFiles()
	files["modules/extra.md"] = `---
type: module
slug: work-history
title: Duplicate Slug
---
# Page: One
## Text
content:: Body.
# Learning-outcome: Missing
source:: [[../outcomes/missing.md]]
`

	sequential := compile(t, files, WithWorkers(1))
	parallel := compile(t, files, WithWorkers(8))
	if !reflect.DeepEqual(sequential, parallel) {
		t.Fatalf("results vary with worker count:\n%+v\n%+v", sequential, parallel)
	}
}

func TestCompileDuplicateModuleSlugWarns(t *testing.T) {
	files := courseFiles()
	files["modules/also-work.md"] = `---
type: module
slug: work-history
title: Also Work
---
# Page: One
## Text
content:: Body.
`

	result := compile(t, files)
	warn, ok := findMessage(result.Errors, `slug "work-history" is already used by modules/also-work.md`)
	if !ok {
		t.Fatalf("expected a duplicate slug warning, got %v", result.Errors)
	}
	if warn.Severity != interfaces.SeverityWarning || warn.File != "modules/work.md" {
		t.Fatalf("unexpected finding: %+v", warn)
	}
	if len(result.Modules) != 2 {
		t.Fatalf("both modules stay in output, got %d", len(result.Modules))
	}
}

func TestCompileCourseUnresolvedModule(t *testing.T) {
	files := courseFiles()
	files["courses/deep-history.md"] = `---
type: course
slug: deep-history
title: Deep History
---
# Module: Missing
source:: [[../modules/missing.md]]
# Meeting: 1
`

	result := compile(t, files)
	if _, ok := findMessage(result.Errors, `cannot resolve [[../modules/missing.md]]`); !ok {
		t.Fatalf("expected an unresolved module error, got %v", result.Errors)
	}
	want := []interfaces.ProgressionItem{{Kind: interfaces.ProgressionMeeting, Number: 1}}
	if !reflect.DeepEqual(result.Courses[0].Progression, want) {
		t.Fatalf("broken ref should drop out of the progression: %+v", result.Courses[0].Progression)
	}
}

func TestCompileCourseRefToNonModule(t *testing.T) {
	files := courseFiles()
	files["courses/deep-history.md"] = `---
type: course
slug: deep-history
title: Deep History
---
# Module: Foraging
source:: [[../outcomes/foraging.md]]
`

	result := compile(t, files)
	if _, ok := findMessage(result.Errors, `"outcomes/foraging.md" is not a module`); !ok {
		t.Fatalf("expected a kind mismatch error, got %v", result.Errors)
	}
	if len(result.Courses[0].Progression) != 0 {
		t.Fatalf("mismatched ref should not appear: %+v", result.Courses[0].Progression)
	}
}

func TestCompileCourseTierViolation(t *testing.T) {
	files := courseFiles()
	files["modules/work.md"] = strings.Replace(files["modules/work.md"],
		"slug: work-history", "slug: work-history\ntier: wip", 1)

	result := compile(t, files)
	finding, ok := findMessage(result.Errors, "tier violation: production content references wip file")
	if !ok {
		t.Fatalf("expected a tier violation, got %v", result.Errors)
	}
	if finding.File != "courses/deep-history.md" {
		t.Fatalf("violation should land on the referencing course: %+v", finding)
	}
	// The violation does not exclude; the module still appears.
	if len(result.Courses[0].Progression) != 2 {
		t.Fatalf("wip module should stay in the progression: %+v", result.Courses[0].Progression)
	}
	if len(result.Modules) != 1 {
		t.Fatalf("wip module should still compile: %d", len(result.Modules))
	}
}

func TestCompileValidatorIgnoreModule(t *testing.T) {
	files := courseFiles()
	// No slug: would normally be a validation error, but the tier skips
	// validation entirely and keeps the file out of the output.
	files["modules/work.md"] = `---
type: module
title: Work
tier: validator-ignore
---
# Page: Welcome
## Text
content:: Start here.
`

	result := compile(t, files)
	if _, ok := findMessage(result.Errors, "needs a slug"); ok {
		t.Fatalf("ignored files must not be validated: %v", result.Errors)
	}
	if _, ok := findMessage(result.Errors, "tier violation"); !ok {
		t.Fatalf("expected the course to report a tier violation, got %v", result.Errors)
	}
	if len(result.Modules) != 0 {
		t.Fatalf("ignored module leaked into output: %+v", result.Modules)
	}
	if len(result.Courses[0].Progression) != 1 {
		t.Fatalf("ignored module should drop from the progression: %+v", result.Courses[0].Progression)
	}
}

func TestCompileErrorsSortedByFileThenLine(t *testing.T) {
	files := courseFiles()
	files["courses/alpha.md"] = `---
type: course
slug: alpha
title: Alpha
---
# Module: Missing
source:: [[../modules/missing.md]]
`
	files["courses/zulu.md"] = `---
type: course
slug: zulu
title: Zulu
---
# Module: Missing
source:: [[../modules/also-missing.md]]
`

	result := compile(t, files)
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 findings, got %v", result.Errors)
	}
	if result.Errors[0].File != "courses/alpha.md" || result.Errors[1].File != "courses/zulu.md" {
		t.Fatalf("findings out of order: %+v", result.Errors)
	}
}

func TestCompileModuleByPath(t *testing.T) {
	result, err := New().CompileModule(context.Background(), interfaces.CompileRequest{Files: courseFiles()}, "modules/work.md")
	if err != nil {
		t.Fatalf("compile module: %v", err)
	}
	if len(result.Modules) != 1 || result.Modules[0].Slug != "work-history" {
		t.Fatalf("unexpected modules: %+v", result.Modules)
	}
	if result.Courses != nil {
		t.Fatalf("single module compiles resolve no courses: %+v", result.Courses)
	}
}

func TestCompileModuleBySlug(t *testing.T) {
	result, err := New().CompileModule(context.Background(), interfaces.CompileRequest{Files: courseFiles()}, "work-history")
	if err != nil {
		t.Fatalf("compile module: %v", err)
	}
	if len(result.Modules) != 1 || result.Modules[0].Title != "Work" {
		t.Fatalf("unexpected modules: %+v", result.Modules)
	}
}

func TestCompileModuleNotFound(t *testing.T) {
	_, err := New().CompileModule(context.Background(), interfaces.CompileRequest{Files: courseFiles()}, "no-such-module")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
}

func TestCompileModuleReportsCorpusWideFindings(t *testing.T) {
	files := courseFiles()
	files["modules/broken.md"] = `---
type: module
title: No Slug Here
---
# Page: One
## Text
content:: Body.
`

	result, err := New().CompileModule(context.Background(), interfaces.CompileRequest{Files: files}, "work-history")
	if err != nil {
		t.Fatalf("compile module: %v", err)
	}
	finding, ok := findMessage(result.Errors, "needs a slug")
	if !ok {
		t.Fatalf("expected the sibling module's finding, got %v", result.Errors)
	}
	if finding.File != "modules/broken.md" {
		t.Fatalf("unexpected file: %+v", finding)
	}
}

func TestCompileExcludedModuleYieldsNoOutput(t *testing.T) {
	files := courseFiles()
	files["modules/work.md"] = `---
type: module
title: Work
---
# Page: Welcome
## Text
content:: Start here.
`

	result, err := New().CompileModule(context.Background(), interfaces.CompileRequest{Files: files}, "modules/work.md")
	if err != nil {
		t.Fatalf("compile module: %v", err)
	}
	if len(result.Modules) != 0 {
		t.Fatalf("excluded module should not flatten: %+v", result.Modules)
	}
	if _, ok := findMessage(result.Errors, "needs a slug"); !ok {
		t.Fatalf("expected the exclusion cause, got %v", result.Errors)
	}
}

func TestLintMatchesCompile(t *testing.T) {
	files := courseFiles()
	files["courses/deep-history.md"] = strings.Replace(files["courses/deep-history.md"],
		"[[../modules/work.md]]", "[[../modules/missing.md]]", 1)

	service := New()
	compiled, err := service.Compile(context.Background(), interfaces.CompileRequest{Files: files})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	linted, err := service.Lint(context.Background(), interfaces.CompileRequest{Files: files})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if !reflect.DeepEqual(compiled.Errors, linted) {
		t.Fatalf("lint diverged from compile:\n%+v\n%+v", compiled.Errors, linted)
	}
	if len(linted) == 0 {
		t.Fatal("expected findings from the broken link")
	}
}

func TestCompileCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Compile(ctx, interfaces.CompileRequest{Files: courseFiles()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCompileNilContext(t *testing.T) {
	result, err := New().Compile(nil, interfaces.CompileRequest{Files: courseFiles()})
	if err != nil || result == nil {
		t.Fatalf("nil context should compile: %v", err)
	}
}
