package parser

import (
	"strconv"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/markup"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// ParseCourse builds a course AST. Module sections keep their raw wikilink
// path; the corpus-wide resolution pass maps those onto module slugs after
// every file has parsed.
func (p *Parser) ParseCourse(path, raw string) (*ast.Course, []interfaces.ContentError) {
	var errs []interfaces.ContentError
	header := p.parseHeader(path, raw, &errs)

	course := &ast.Course{
		Path:   path,
		Slug:   header.fm.HeaderString("slug"),
		Title:  header.fm.HeaderString("title"),
		Tier:   header.tier,
		Header: header.fm.Header,
	}

	sections, findings := markup.Split(header.body, header.fm.BodyLine, 1, ast.CourseSectionKeywords)
	errs = appendFindings(errs, path, findings)

	for _, section := range sections {
		switch section.Keyword {
		case "Module":
			fields, fieldFindings := markup.ParseFields(section.Body, section.BodyLine, ast.RefFields)
			errs = appendFindings(errs, path, fieldFindings)
			course.Items = append(course.Items, ast.ModuleRef{
				Title:    section.Title,
				LinkPath: linkPath(fields),
				Optional: boolField(fields, "optional"),
				Line:     section.Line,
				Raw:      fields,
			})
		case "Meeting":
			number, err := strconv.Atoi(section.Title)
			if err != nil || number < 1 {
				errs = append(errs, interfaces.ContentError{
					File:       path,
					Line:       section.Line,
					Message:    "meeting marker needs a positive number",
					Suggestion: "# Meeting: 1",
					Severity:   interfaces.SeverityError,
				})
				continue
			}
			course.Items = append(course.Items, ast.MeetingMarker{Number: number, Line: section.Line})
		}
	}

	p.logger.Debug("course parsed", "file", path, "items", len(course.Items))
	return course, errs
}
