package markup

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontmatter reports a file that does not open with the marker.
	ErrMissingFrontmatter = errors.New("markup: missing frontmatter")
	// ErrUnclosedFrontmatter reports an opening marker with no closing one.
	ErrUnclosedFrontmatter = errors.New("markup: unclosed frontmatter")
	// ErrInvalidHeaderSyntax reports a header region that is not a key-value
	// mapping. The best-effort body is still returned alongside it.
	ErrInvalidHeaderSyntax = errors.New("markup: invalid frontmatter syntax")
)

const frontmatterMarker = "---"

// Frontmatter is the strict split of an authored content file: the decoded
// header mapping, the body text, and the 1-based line where the body begins.
type Frontmatter struct {
	Header   map[string]any
	Body     string
	BodyLine int
}

// SplitFrontmatter separates the leading marker-delimited header from the
// body. The contract is strict: the marker must open the file at byte zero and
// close on its own line. Whatever the failure, the returned Frontmatter keeps
// the best-effort body so downstream stages can continue.
func SplitFrontmatter(raw string) (Frontmatter, error) {
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != frontmatterMarker {
		return Frontmatter{Header: map[string]any{}, Body: raw, BodyLine: 1}, ErrMissingFrontmatter
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == frontmatterMarker {
			closing = i
			break
		}
	}
	if closing == -1 {
		return Frontmatter{Header: map[string]any{}, BodyLine: len(lines) + 1}, ErrUnclosedFrontmatter
	}

	result := Frontmatter{
		Header:   map[string]any{},
		Body:     strings.Join(lines[closing+1:], "\n"),
		BodyLine: closing + 2,
	}

	region := strings.Join(lines[1:closing], "\n")
	if strings.TrimSpace(region) == "" {
		return result, nil
	}

	var header map[string]any
	if err := yaml.Unmarshal([]byte(region), &header); err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidHeaderSyntax, err)
	}
	if header != nil {
		result.Header = header
	}
	return result, nil
}

// HeaderString returns the trimmed value under key when it is a string.
// Non-string values yield "" so callers can distinguish a coerced number from
// authored text.
func (f Frontmatter) HeaderString(key string) string {
	if value, ok := f.Header[key]; ok {
		if text, ok := value.(string); ok {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

// HeaderValue returns the raw decoded value under key.
func (f Frontmatter) HeaderValue(key string) (any, bool) {
	value, ok := f.Header[key]
	return value, ok
}
