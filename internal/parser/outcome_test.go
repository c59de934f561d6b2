package parser

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

const outcomeDoc = `---
type: learning-outcome
id: 16fd2706-8baf-433b-82eb-8c7fada847da
title: Foraging Economics
discussion: https://forum.example.com/t/802
tier: production
---
## Test: Foraging Check
source:: [[tests/foraging]]
## Lens: Original Affluence
source:: [[lenses/affluence]]
## Lens: Optional Reading
source:: [[lenses/optional-reading]]
optional:: true
`

func TestParseLearningOutcome(t *testing.T) {
	p := New()
	outcome, errs := p.ParseLearningOutcome("outcomes/foraging.md", outcomeDoc)

	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if outcome.ContentID != uuid.MustParse("16fd2706-8baf-433b-82eb-8c7fada847da") {
		t.Fatalf("unexpected content id: %s", outcome.ContentID)
	}
	if outcome.Title != "Foraging Economics" {
		t.Fatalf("unexpected title: %q", outcome.Title)
	}
	if outcome.DiscussionURL != "https://forum.example.com/t/802" {
		t.Fatalf("unexpected discussion url: %q", outcome.DiscussionURL)
	}
	if outcome.Tier != ast.TierProduction {
		t.Fatalf("unexpected tier: %q", outcome.Tier)
	}

	if outcome.TestRef == nil {
		t.Fatal("expected a test ref")
	}
	if outcome.TestRef.Title != "Foraging Check" || outcome.TestRef.SourcePath != "tests/foraging" {
		t.Fatalf("unexpected test ref: %+v", outcome.TestRef)
	}

	if len(outcome.LensRefs) != 2 {
		t.Fatalf("expected 2 lens refs, got %d", len(outcome.LensRefs))
	}
	if outcome.LensRefs[0].SourcePath != "lenses/affluence" || outcome.LensRefs[0].Optional {
		t.Fatalf("unexpected first lens ref: %+v", outcome.LensRefs[0])
	}
	if outcome.LensRefs[1].SourcePath != "lenses/optional-reading" || !outcome.LensRefs[1].Optional {
		t.Fatalf("unexpected second lens ref: %+v", outcome.LensRefs[1])
	}
}

func TestParseLearningOutcomeDuplicateTest(t *testing.T) {
	raw := `---
type: learning-outcome
id: 16fd2706-8baf-433b-82eb-8c7fada847da
title: Foraging
---
## Test: First
source:: [[tests/first]]
## Test: Second
source:: [[tests/second]]
## Lens: Reading
source:: [[lenses/reading]]
`
	p := New()
	outcome, errs := p.ParseLearningOutcome("outcomes/foraging.md", raw)

	if len(errs) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(errs), errs)
	}
	if errs[0].Severity != interfaces.SeverityWarning {
		t.Fatalf("expected warning severity, got %+v", errs[0])
	}
	if !strings.Contains(errs[0].Message, "duplicate Test section") {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
	if !strings.Contains(errs[0].Message, "line 6") {
		t.Fatalf("warning should name the overridden line, got %q", errs[0].Message)
	}
	if outcome.TestRef.SourcePath != "tests/second" {
		t.Fatalf("last test section should win, got %q", outcome.TestRef.SourcePath)
	}
}

func TestParseLearningOutcomeNonLinkSource(t *testing.T) {
	raw := `---
type: learning-outcome
id: 16fd2706-8baf-433b-82eb-8c7fada847da
title: Foraging
---
## Lens: Broken
source:: lenses/broken.md
`
	p := New()
	outcome, errs := p.ParseLearningOutcome("outcomes/foraging.md", raw)

	if len(errs) != 0 {
		t.Fatalf("parser should leave non-link sources to validation, got %v", errs)
	}
	if outcome.LensRefs[0].SourcePath != "" {
		t.Fatalf("non-wikilink source should stay empty, got %q", outcome.LensRefs[0].SourcePath)
	}
	if got := outcome.LensRefs[0].Raw.Value("source"); got != "lenses/broken.md" {
		t.Fatalf("raw field should keep the authored value, got %q", got)
	}
}
