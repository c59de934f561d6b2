package markup

import (
	"fmt"
	"strings"
)

// Section is one region produced by Split: a recognized keyword header plus
// the text following it up to the next header at the same level.
type Section struct {
	Keyword  string
	Title    string
	Body     string
	Line     int
	BodyLine int
}

// Split divides a region into keyword sections by heading level. A header
// line is "<hashes> <Keyword>[: <title>]" with the keyword matched
// case-insensitively against the recognized set; an empty title is legal.
// Unknown keywords produce an error finding naming the valid alternatives and
// their regions are skipped. Free text before the first header is reported
// once as ignored.
func Split(region string, baseLine, level int, keywords []string) ([]Section, []Finding) {
	canon := make(map[string]string, len(keywords))
	for _, keyword := range keywords {
		canon[strings.ToLower(keyword)] = keyword
	}
	prefix := strings.Repeat("#", level) + " "

	var (
		sections []Section
		findings []Finding
		current  *Section
		body     []string
		skipping bool
		warned   bool
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.Join(body, "\n")
		sections = append(sections, *current)
		current = nil
		body = nil
	}

	lines := strings.Split(region, "\n")
	for i, rawLine := range lines {
		line := strings.TrimRight(rawLine, "\r")
		lineNo := baseLine + i

		if strings.HasPrefix(line, prefix) {
			flush()
			keyword, title := splitHeader(line, level)
			canonical, ok := canon[strings.ToLower(keyword)]
			if !ok {
				findings = append(findings, Finding{
					Line:       lineNo,
					Message:    fmt.Sprintf("unknown section type %q", keyword),
					Suggestion: "expected one of: " + strings.Join(keywords, ", "),
				})
				skipping = true
				continue
			}
			skipping = false
			current = &Section{Keyword: canonical, Title: title, Line: lineNo, BodyLine: lineNo + 1}
			continue
		}

		if current != nil {
			body = append(body, rawLine)
			continue
		}
		if skipping {
			continue
		}
		if strings.TrimSpace(line) != "" && !warned {
			findings = append(findings, warnf(lineNo, "text before the first section header is ignored"))
			warned = true
		}
	}
	flush()
	return sections, findings
}

func splitHeader(line string, level int) (keyword, title string) {
	rest := strings.TrimSpace(line[level+1:])
	if idx := strings.Index(rest, ":"); idx >= 0 {
		return strings.TrimSpace(rest[:idx]), strings.TrimSpace(rest[idx+1:])
	}
	return rest, ""
}
