package parser

import (
	"fmt"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/markup"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// ParseModule builds a module AST. Only Page, Learning-outcome, and
// Uncategorized sections are legal at the top level; the legacy flat section
// kinds are recognized and rejected with an explicit error.
func (p *Parser) ParseModule(path, raw string) (*ast.Module, []interfaces.ContentError) {
	var errs []interfaces.ContentError
	header := p.parseHeader(path, raw, &errs)

	module := &ast.Module{
		Path:      path,
		Slug:      header.fm.HeaderString("slug"),
		Title:     header.fm.HeaderString("title"),
		ContentID: contentID(header.fm),
		Tier:      header.tier,
		Header:    header.fm.Header,
	}

	sections, findings := markup.Split(header.body, header.fm.BodyLine, 1, ast.ModuleSectionKeywords)
	errs = appendFindings(errs, path, findings)

	for _, section := range sections {
		switch section.Keyword {
		case "Page":
			page, pageErrs := p.parsePage(path, section)
			errs = append(errs, pageErrs...)
			module.Sections = append(module.Sections, page)
		case "Learning-outcome":
			fields, fieldFindings := markup.ParseFields(section.Body, section.BodyLine, ast.RefFields)
			errs = appendFindings(errs, path, fieldFindings)
			module.Sections = append(module.Sections, ast.LearningOutcomeRef{
				Title:      section.Title,
				SourcePath: linkPath(fields),
				Optional:   boolField(fields, "optional"),
				Line:       section.Line,
				Raw:        fields,
			})
		case "Uncategorized":
			bucket, bucketErrs := p.parseUncategorized(path, section)
			errs = append(errs, bucketErrs...)
			module.Sections = append(module.Sections, bucket)
		default:
			errs = append(errs, interfaces.ContentError{
				File:       path,
				Line:       section.Line,
				Message:    fmt.Sprintf("section type %q is not allowed in this format", section.Keyword),
				Suggestion: "use Page, Learning-outcome, or Uncategorized at the top level",
				Severity:   interfaces.SeverityError,
			})
		}
	}

	p.logger.Debug("module parsed", "file", path, "slug", module.Slug, "sections", len(module.Sections))
	return module, errs
}

func (p *Parser) parsePage(path string, section markup.Section) (ast.PageSection, []interfaces.ContentError) {
	var errs []interfaces.ContentError

	fields, findings := markup.ParseFields(section.Body, section.BodyLine, ast.PageFields)
	errs = appendFindings(errs, path, findings)

	page := ast.PageSection{
		Title: section.Title,
		Line:  section.Line,
		Raw:   fields,
	}
	if value, ok := fields.Get("id"); ok {
		page.ContentID = parseUUID(value)
	}

	if fields.RestLine > 0 {
		segments, segErrs := p.parseSegments(path, fields.Rest, fields.RestLine, 2)
		errs = append(errs, segErrs...)
		page.Segments = segments
	}
	return page, errs
}

func (p *Parser) parseUncategorized(path string, section markup.Section) (ast.UncategorizedSection, []interfaces.ContentError) {
	var errs []interfaces.ContentError
	bucket := ast.UncategorizedSection{Line: section.Line}

	lenses, findings := markup.Split(section.Body, section.BodyLine, 2, []string{"Lens"})
	errs = appendFindings(errs, path, findings)

	for _, lens := range lenses {
		fields, fieldFindings := markup.ParseFields(lens.Body, lens.BodyLine, ast.RefFields)
		errs = appendFindings(errs, path, fieldFindings)
		bucket.LensRefs = append(bucket.LensRefs, ast.LensRef{
			Title:      lens.Title,
			SourcePath: linkPath(fields),
			Optional:   boolField(fields, "optional"),
			Line:       lens.Line,
			Raw:        fields,
		})
	}
	return bucket, errs
}
