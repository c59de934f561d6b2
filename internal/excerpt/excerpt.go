// Package excerpt extracts bounded spans from source bodies: article text by
// literal substring anchors, video transcripts by timestamp range.
package excerpt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrAnchorNotFound reports a from anchor with no match in the body. The
	// accompanying text result is still usable; callers downgrade this to a
	// warning and keep the whole body.
	ErrAnchorNotFound = errors.New("excerpt: anchor not found")

	// ErrInvalidTimestamp reports a timestamp that is not M:SS or H:MM:SS.
	ErrInvalidTimestamp = errors.New("excerpt: invalid timestamp")
)

// Article returns the span of body between two literal anchors. Both anchors
// are optional: with neither set the body is returned unchanged, and with
// only a from anchor the span runs to the end. A from anchor that never
// matches returns the whole body alongside ErrAnchorNotFound. A to anchor
// that never matches, or that matches at or before the from anchor, extends
// the span to the end of the body. Anchors are plain substrings, never
// patterns; body is expected to be frontmatter-stripped already.
func Article(body, fromAnchor, toAnchor string) (string, error) {
	start := 0
	if fromAnchor != "" {
		idx := strings.Index(body, fromAnchor)
		if idx < 0 {
			return body, fmt.Errorf("%w: %q", ErrAnchorNotFound, fromAnchor)
		}
		start = idx
	}

	end := len(body)
	if toAnchor != "" {
		if idx := strings.Index(body, toAnchor); idx > start {
			end = idx
		}
	}
	return body[start:end], nil
}

// Seconds converts a M:SS or H:MM:SS timestamp into whole seconds. Trailing
// components must stay below 60.
func Seconds(timestamp string) (int, error) {
	parts := strings.Split(strings.TrimSpace(timestamp), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, timestamp)
	}

	total := 0
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || (i > 0 && n > 59) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, timestamp)
		}
		total = total*60 + n
	}
	return total, nil
}

var transcriptLinePattern = regexp.MustCompile(`^\s*(\d+(?::\d{1,2}){1,2})\s*-\s*`)

// TranscriptLines returns the lines of a "timestamp - text" transcript whose
// timestamps fall within [from, to) seconds. Lines without a leading
// timestamp marker belong to no span and are skipped.
func TranscriptLines(transcript string, from, to int) string {
	var kept []string
	for _, line := range strings.Split(transcript, "\n") {
		m := transcriptLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		sec, err := Seconds(m[1])
		if err != nil {
			continue
		}
		if sec >= from && sec < to {
			kept = append(kept, strings.TrimRight(line, " \t\r"))
		}
	}
	return strings.Join(kept, "\n")
}
