package validate

import (
	"github.com/goliatone/go-courseware/internal/ast"
)

// Lens checks a parsed lens file. A lens must carry a UUID id and at least
// one Video or Article section, and every section needs a source plus at
// least one excerpt segment of the matching kind; failing any of these
// excludes the file.
func (v *Validator) Lens(lens *ast.Lens) Result {
	var res Result
	file := lens.Path
	res.Errors = append(res.Errors, headerIssues(file, lens.Header)...)

	v.checkRequiredID(file, lens.Header, "lens", &res)

	if len(lens.Sections) == 0 {
		res.err(file, 0, "lens has no Video or Article sections", "")
		res.Excluded = true
	}

	for _, section := range lens.Sections {
		v.checkFields(file, section.Raw, ast.LensSectionFields, &res)

		scope := articleScope
		kind := "Article"
		if section.Kind == ast.LensVideo {
			scope = videoScope
			kind = "Video"
		}

		if !v.checkSourceRef(file, kind, section.Raw, section.Line, &res) {
			res.Excluded = true
		}
		if countExcerpts(section) == 0 {
			res.err(file, section.Line, kind+" section needs at least one excerpt segment", "")
			res.Excluded = true
		}
		v.checkSegments(file, section.Segments, scope, &res)
	}

	v.logger.Debug("lens validated", "file", file, "findings", len(res.Errors), "excluded", res.Excluded)
	return res
}

// countExcerpts counts the excerpt segments whose kind matches the section;
// a stray excerpt of the wrong kind is reported separately and cannot stand
// in for the required one.
func countExcerpts(section ast.LensSection) int {
	count := 0
	for _, segment := range section.Segments {
		switch segment.(type) {
		case ast.ArticleExcerptSegment:
			if section.Kind == ast.LensArticle {
				count++
			}
		case ast.VideoExcerptSegment:
			if section.Kind == ast.LensVideo {
				count++
			}
		}
	}
	return count
}
