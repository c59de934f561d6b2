package markup

import (
	"regexp"
	"strings"
)

var wikilinkPattern = regexp.MustCompile(`(!?)\[\[([^\]|]+)(?:\|([^\]]*))?\]\]`)

// Wikilink is a parsed [[path]], [[path|alias]], or ![[path]] reference. The
// embed form is semantically identical to the plain link form.
type Wikilink struct {
	Path  string
	Alias string
	Embed bool
}

// IsRelative reports whether the link names a path rather than a bare stem. A
// relative path must contain a separator; calling contexts that require
// relative links reject bare stems.
func (w Wikilink) IsRelative() bool {
	return strings.Contains(w.Path, "/")
}

// ParseWikilink parses text that must consist of exactly one wikilink, aside
// from surrounding whitespace. It returns false when text is not a single
// link expression.
func ParseWikilink(text string) (Wikilink, bool) {
	trimmed := strings.TrimSpace(text)
	loc := wikilinkPattern.FindStringSubmatchIndex(trimmed)
	if loc == nil || loc[0] != 0 || loc[1] != len(trimmed) {
		return Wikilink{}, false
	}
	return linkFromMatch(trimmed, loc), true
}

// FindWikilinks returns every wikilink in text, in order of appearance.
func FindWikilinks(text string) []Wikilink {
	matches := wikilinkPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	links := make([]Wikilink, 0, len(matches))
	for _, loc := range matches {
		links = append(links, linkFromMatch(text, loc))
	}
	return links
}

func linkFromMatch(text string, loc []int) Wikilink {
	link := Wikilink{
		Embed: loc[2] != loc[3],
		Path:  strings.TrimSpace(text[loc[4]:loc[5]]),
	}
	if loc[6] >= 0 {
		link.Alias = strings.TrimSpace(text[loc[6]:loc[7]])
	}
	return link
}
