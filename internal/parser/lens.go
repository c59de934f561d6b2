package parser

import (
	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/markup"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// ParseLens reads a lens file: frontmatter identity plus one or more Video or
// Article sections, each holding the segment sequence rendered for learners.
func (p *Parser) ParseLens(path, raw string) (*ast.Lens, []interfaces.ContentError) {
	var errs []interfaces.ContentError
	header := p.parseHeader(path, raw, &errs)

	lens := &ast.Lens{
		Path:      path,
		Title:     header.fm.HeaderString("title"),
		ContentID: contentID(header.fm),
		Tier:      header.tier,
		Header:    header.fm.Header,
	}

	sections, findings := markup.Split(header.body, header.fm.BodyLine, 3, ast.LensSectionKeywords)
	errs = appendFindings(errs, path, findings)

	for _, section := range sections {
		fields, fieldFindings := markup.ParseFields(section.Body, section.BodyLine, ast.LensSectionFields)
		errs = appendFindings(errs, path, fieldFindings)

		kind := ast.LensArticle
		if section.Keyword == "Video" {
			kind = ast.LensVideo
		}

		parsed := ast.LensSection{
			Kind:       kind,
			Title:      section.Title,
			SourcePath: linkPath(fields),
			Line:       section.Line,
			Raw:        fields,
		}
		if fields.RestLine > 0 {
			segments, segErrs := p.parseSegments(path, fields.Rest, fields.RestLine, 4)
			parsed.Segments = segments
			errs = append(errs, segErrs...)
		}
		lens.Sections = append(lens.Sections, parsed)
	}

	p.logger.Debug("lens parsed",
		"file", path,
		"sections", len(lens.Sections),
		"errors", len(errs),
	)
	return lens, errs
}
