package validate

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-courseware/internal/ast"
)

// Module checks a parsed module file. Exclusion follows from a missing slug
// or an authored id that does not parse as a UUID; reference-level problems
// inside sections are reported but keep the module compilable.
func (v *Validator) Module(module *ast.Module) Result {
	var res Result
	file := module.Path
	res.Errors = append(res.Errors, headerIssues(file, module.Header)...)

	if module.Slug == "" {
		res.err(file, 1, "module frontmatter needs a slug", "slug: my-module")
		res.Excluded = true
	} else if !slug.IsValid(module.Slug) {
		suggestion := ""
		if normalized, err := slug.Normalize(module.Slug); err == nil {
			suggestion = "slug: " + normalized
		}
		res.warn(file, 1, fmt.Sprintf("slug %q is not url-safe", module.Slug), suggestion)
	}
	if module.Title == "" {
		res.warn(file, 1, "module frontmatter has no title", "")
	}
	v.checkAuthoredID(file, module.Header, &res)

	if len(module.Sections) == 0 {
		res.warn(file, 0, "module has no sections", "")
	}

	for _, section := range module.Sections {
		switch s := section.(type) {
		case ast.PageSection:
			v.checkFields(file, s.Raw, ast.PageFields, &res)
			if value, ok := s.Raw.Get("id"); ok {
				if _, err := uuid.Parse(strings.TrimSpace(value)); err != nil {
					field, _ := s.Raw.FieldFor("id")
					res.err(file, field.Line, "page id must be a UUID", "")
					res.Excluded = true
				}
			}
			if len(s.Segments) == 0 {
				res.warn(file, s.Line, "Page section has no segments", "")
			}
			v.checkSegments(file, s.Segments, pageScope, &res)
		case ast.LearningOutcomeRef:
			v.checkFields(file, s.Raw, ast.RefFields, &res)
			v.checkSourceRef(file, "Learning-outcome", s.Raw, s.Line, &res)
		case ast.UncategorizedSection:
			if len(s.LensRefs) == 0 {
				res.warn(file, s.Line, "Uncategorized section lists no lenses", "")
			}
			for _, ref := range s.LensRefs {
				v.checkFields(file, ref.Raw, ast.RefFields, &res)
				v.checkSourceRef(file, "Lens", ref.Raw, ref.Line, &res)
			}
		}
	}

	v.logger.Debug("module validated", "file", file, "findings", len(res.Errors), "excluded", res.Excluded)
	return res
}

// checkAuthoredID enforces that an authored frontmatter id parses as a UUID.
// The schema pass already reports non-string values; both cases reject the
// file so a bad id never reaches the output.
func (v *Validator) checkAuthoredID(file string, header map[string]any, res *Result) {
	raw, ok := header["id"]
	if !ok {
		return
	}
	value, isString := raw.(string)
	if !isString {
		res.Excluded = true
		return
	}
	if _, err := uuid.Parse(strings.TrimSpace(value)); err != nil {
		res.err(file, 1, "frontmatter id must be a UUID", "")
		res.Excluded = true
	}
}
