package excerpt

import (
	"errors"
	"strings"
	"testing"
)

const articleBody = `The original affluent society was one in which wants are easily satisfied.
Hunters keep banking hours.
In conclusion, scarcity is a judgment decreed by our economy.`

func TestArticleNoAnchors(t *testing.T) {
	got, err := Article(articleBody, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != articleBody {
		t.Fatalf("anchorless excerpt must return the body unchanged, got %q", got)
	}
}

func TestArticleFromOnly(t *testing.T) {
	got, err := Article(articleBody, "Hunters keep", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := articleBody[strings.Index(articleBody, "Hunters keep"):]
	if got != want {
		t.Fatalf("from-only excerpt = %q, want %q", got, want)
	}
}

func TestArticleFromAndTo(t *testing.T) {
	got, err := Article(articleBody, "Hunters keep", "In conclusion")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "Hunters keep banking hours.") {
		t.Fatalf("excerpt should start at the from anchor, got %q", got)
	}
	if strings.Contains(got, "In conclusion") {
		t.Fatalf("excerpt should stop before the to anchor, got %q", got)
	}
}

func TestArticleFromNotFound(t *testing.T) {
	got, err := Article(articleBody, "no such anchor", "")
	if !errors.Is(err, ErrAnchorNotFound) {
		t.Fatalf("expected ErrAnchorNotFound, got %v", err)
	}
	if got != articleBody {
		t.Fatalf("missing from anchor should fall back to the whole body, got %q", got)
	}
}

func TestArticleToNotFound(t *testing.T) {
	got, err := Article(articleBody, "Hunters keep", "no such anchor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := articleBody[strings.Index(articleBody, "Hunters keep"):]
	if got != want {
		t.Fatalf("missing to anchor should run to the end, got %q", got)
	}
}

func TestArticleToBeforeFrom(t *testing.T) {
	got, err := Article(articleBody, "Hunters keep", "The original")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(got, "decreed by our economy.") {
		t.Fatalf("misordered to anchor should run to the end, got %q", got)
	}
}

func TestSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"0:00", 0},
		{"5:00", 300},
		{"5:3", 303},
		{"12:30", 750},
		{"1:02:10", 3730},
		{" 2:15 ", 135},
	}
	for _, tc := range cases {
		got, err := Seconds(tc.in)
		if err != nil {
			t.Fatalf("Seconds(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Seconds(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSecondsInvalid(t *testing.T) {
	for _, in := range []string{"", "5", "1:75", "a:10", "1:2:3:4", "3:-1", "1:0a"} {
		if _, err := Seconds(in); !errors.Is(err, ErrInvalidTimestamp) {
			t.Fatalf("Seconds(%q) should fail with ErrInvalidTimestamp, got %v", in, err)
		}
	}
}

const transcript = `0:00 - Welcome to the lecture.
2:30 - The first claim is about wants.
Speaker pauses.
5:00 - The second claim is about time.
7:15 - Questions from the audience.`

func TestTranscriptLines(t *testing.T) {
	got := TranscriptLines(transcript, 150, 435)
	want := "2:30 - The first claim is about wants.\n5:00 - The second claim is about time."
	if got != want {
		t.Fatalf("TranscriptLines = %q, want %q", got, want)
	}
}

func TestTranscriptLinesBoundaries(t *testing.T) {
	if got := TranscriptLines(transcript, 0, 1); got != "0:00 - Welcome to the lecture." {
		t.Fatalf("from is inclusive, got %q", got)
	}
	if got := TranscriptLines(transcript, 0, 150); !strings.HasSuffix(got, "Welcome to the lecture.") {
		t.Fatalf("to is exclusive, got %q", got)
	}
	if got := TranscriptLines(transcript, 436, 1000); got != "" {
		t.Fatalf("expected empty span, got %q", got)
	}
}

func TestTranscriptLinesSkipsUnmarkedText(t *testing.T) {
	got := TranscriptLines(transcript, 0, 100000)
	if strings.Contains(got, "Speaker pauses.") {
		t.Fatalf("lines without timestamps should be skipped, got %q", got)
	}
	if lines := strings.Split(got, "\n"); len(lines) != 4 {
		t.Fatalf("expected 4 timestamped lines, got %d", len(lines))
	}
}
