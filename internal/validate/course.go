package validate

import (
	"fmt"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/markup"
)

// Course checks a parsed course file. A course without a slug cannot be
// addressed and is excluded; everything else is reported without exclusion.
func (v *Validator) Course(course *ast.Course) Result {
	var res Result
	file := course.Path
	res.Errors = append(res.Errors, headerIssues(file, course.Header)...)

	if course.Slug == "" {
		res.err(file, 1, "course frontmatter needs a slug", "slug: my-course")
		res.Excluded = true
	} else if !slug.IsValid(course.Slug) {
		suggestion := ""
		if normalized, err := slug.Normalize(course.Slug); err == nil {
			suggestion = "slug: " + normalized
		}
		res.warn(file, 1, fmt.Sprintf("slug %q is not url-safe", course.Slug), suggestion)
	}
	if course.Title == "" {
		res.warn(file, 1, "course frontmatter has no title", "")
	}
	if len(course.Items) == 0 {
		res.warn(file, 0, "course lists no modules", "")
	}

	for _, item := range course.Items {
		ref, ok := item.(ast.ModuleRef)
		if !ok {
			continue
		}
		v.checkFields(file, ref.Raw, ast.RefFields, &res)
		if !v.checkSourceRef(file, "Module", ref.Raw, ref.Line, &res) {
			continue
		}
		if link, ok := markup.ParseWikilink(ref.Raw.Value("source")); ok && !link.IsRelative() {
			res.warn(file, ref.Line,
				fmt.Sprintf("module link %q has no directory; prefer a relative path", link.Path), "")
		}
	}

	v.logger.Debug("course validated", "file", file, "findings", len(res.Errors), "excluded", res.Excluded)
	return res
}
