package fileset

import (
	"strings"

	"github.com/adrg/frontmatter"
)

// Source is a leaf content file (article or video transcript) split into
// frontmatter metadata and body text.
type Source struct {
	Meta map[string]any
	Body string
}

// SplitSource separates a leaf file's optional frontmatter from its body.
// Leaf files do not follow the strict authoring contract, so parsing is
// lenient: a missing header yields empty metadata, and a malformed header
// yields empty metadata with the raw text kept as body.
func SplitSource(raw string) Source {
	var meta map[string]any
	body, err := frontmatter.Parse(strings.NewReader(raw), &meta)
	if err != nil {
		return Source{Meta: map[string]any{}, Body: raw}
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return Source{Meta: meta, Body: string(body)}
}

// MetaString returns the first non-empty string value stored under any of the
// given keys.
func (s Source) MetaString(keys ...string) string {
	for _, key := range keys {
		if value, ok := s.Meta[key]; ok {
			if text, ok := value.(string); ok && strings.TrimSpace(text) != "" {
				return strings.TrimSpace(text)
			}
		}
	}
	return ""
}
