package markup

import (
	"strings"
	"testing"
)

func TestParseFieldsInlineAndContinuation(t *testing.T) {
	region := "instructions:: Discuss the reading.\nAdd a follow-up question.\n\nKeep the blank line above.\ntitle:: Warmup\n"

	block, findings := ParseFields(region, 1, nil)
	if len(findings) != 0 {
		t.Fatalf("unexpected findings: %v", findings)
	}

	want := "Discuss the reading.\nAdd a follow-up question.\n\nKeep the blank line above."
	if got := block.Value("instructions"); got != want {
		t.Fatalf("instructions value:\nwant %q\ngot  %q", want, got)
	}
	if got := block.Value("title"); got != "Warmup" {
		t.Fatalf("title value: %q", got)
	}
}

func TestParseFieldsValueWithoutInlineText(t *testing.T) {
	block, _ := ParseFields("content::\nLine one\nLine two\n", 1, nil)
	if got := block.Value("content"); got != "Line one\nLine two" {
		t.Fatalf("expected continuation-only value, got %q", got)
	}
}

func TestParseFieldsStopsAtHeading(t *testing.T) {
	region := "source:: [[../lenses/a]]\noptional:: true\n#### Video-excerpt\nto:: 5:00"

	block, _ := ParseFields(region, 10, nil)
	if !block.Has("source") || !block.Has("optional") {
		t.Fatalf("expected fields before the heading, got %v", block.Names())
	}
	if block.Has("to") {
		t.Fatal("fields after the heading must not be consumed")
	}
	if block.RestLine != 12 {
		t.Fatalf("expected rest to begin at line 12, got %d", block.RestLine)
	}
	if !strings.HasPrefix(block.Rest, "#### Video-excerpt") {
		t.Fatalf("unexpected rest %q", block.Rest)
	}
}

func TestParseFieldsDuplicateLastWriteWins(t *testing.T) {
	block, findings := ParseFields("to:: 3:00\nto:: 5:00\n", 1, nil)

	if got := block.Value("to"); got != "5:00" {
		t.Fatalf("expected last write to win, got %q", got)
	}
	if len(findings) != 1 || !findings[0].Warning {
		t.Fatalf("expected one duplicate warning, got %v", findings)
	}
	if !strings.Contains(findings[0].Message, "duplicate field") {
		t.Fatalf("unexpected message %q", findings[0].Message)
	}
	if findings[0].Line != 2 {
		t.Fatalf("expected warning on line 2, got %d", findings[0].Line)
	}
}

func TestParseFieldsSingleColonTypo(t *testing.T) {
	_, findings := ParseFields("instructions: Do the thing\n", 4, []string{"instructions", "title"})

	if len(findings) != 2 {
		t.Fatalf("expected typo warning plus ignored-text warning, got %v", findings)
	}
	typo := findings[0]
	if !typo.Warning || !strings.Contains(typo.Message, "single colon") {
		t.Fatalf("unexpected typo finding %+v", typo)
	}
	if typo.Suggestion != "instructions:: Do the thing" {
		t.Fatalf("unexpected suggestion %q", typo.Suggestion)
	}
	if typo.Line != 4 {
		t.Fatalf("expected line 4, got %d", typo.Line)
	}
}

func TestParseFieldsIgnoresUnknownSingleColon(t *testing.T) {
	block, findings := ParseFields("content:: Note\nsee: https://example.com\n", 1, []string{"content"})

	if got := block.Value("content"); got != "Note\nsee: https://example.com" {
		t.Fatalf("expected unknown single-colon line to stay a continuation, got %q", got)
	}
	if len(findings) != 0 {
		t.Fatalf("unexpected findings: %v", findings)
	}
}

func TestParseFieldsWarnsLooseTextOnce(t *testing.T) {
	_, findings := ParseFields("stray line one\nstray line two\nname:: x\n", 1, nil)

	var warnings int
	for _, f := range findings {
		if f.Warning && strings.Contains(f.Message, "ignored") {
			warnings++
		}
	}
	if warnings != 1 {
		t.Fatalf("expected a single ignored-text warning, got %v", findings)
	}
}

func TestFieldBlockAccessors(t *testing.T) {
	block, _ := ParseFields("a:: 1\nb:: 2\na:: 3\n", 1, nil)

	if names := block.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("unexpected names %v", names)
	}
	if field, ok := block.FieldFor("a"); !ok || field.Line != 3 || field.Value != "3" {
		t.Fatalf("expected winning entry from line 3, got %+v", field)
	}
	if _, ok := block.Get("missing"); ok {
		t.Fatal("expected missing field lookup to fail")
	}
}
