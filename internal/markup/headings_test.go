package markup

import (
	"strings"
	"testing"
)

func TestSplitSectionsByKeyword(t *testing.T) {
	region := "# Module: Getting Started\nsource:: [[../modules/start]]\n# Meeting: 1\n# Module\nsource:: [[../modules/next]]\n"

	sections, findings := Split(region, 1, 1, []string{"Module", "Meeting"})
	if len(findings) != 0 {
		t.Fatalf("unexpected findings: %v", findings)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	if sections[0].Keyword != "Module" || sections[0].Title != "Getting Started" {
		t.Fatalf("unexpected first section %+v", sections[0])
	}
	if sections[0].Line != 1 || sections[0].BodyLine != 2 {
		t.Fatalf("unexpected first section lines %+v", sections[0])
	}
	if !strings.Contains(sections[0].Body, "source::") {
		t.Fatalf("expected body to carry fields, got %q", sections[0].Body)
	}
	if sections[1].Keyword != "Meeting" || sections[1].Title != "1" {
		t.Fatalf("unexpected meeting section %+v", sections[1])
	}
	if sections[2].Title != "" {
		t.Fatalf("empty title must be legal, got %q", sections[2].Title)
	}
}

func TestSplitKeywordCaseInsensitive(t *testing.T) {
	sections, findings := Split("# learning-outcome: A\n", 1, 1, []string{"Learning-outcome"})
	if len(findings) != 0 {
		t.Fatalf("unexpected findings: %v", findings)
	}
	if len(sections) != 1 || sections[0].Keyword != "Learning-outcome" {
		t.Fatalf("expected canonical keyword, got %+v", sections)
	}
}

func TestSplitUnknownKeywordNamesAlternatives(t *testing.T) {
	sections, findings := Split("# Bogus: x\nskipped body\n# Page: ok\n", 1, 1, []string{"Page", "Learning-outcome", "Uncategorized"})

	if len(sections) != 1 || sections[0].Keyword != "Page" {
		t.Fatalf("expected only the recognized section, got %+v", sections)
	}
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %v", findings)
	}
	finding := findings[0]
	if finding.Warning {
		t.Fatal("unknown keyword must be an error, not a warning")
	}
	if !strings.Contains(finding.Message, `"Bogus"`) {
		t.Fatalf("expected keyword in message, got %q", finding.Message)
	}
	if !strings.Contains(finding.Suggestion, "Page, Learning-outcome, Uncategorized") {
		t.Fatalf("expected alternatives in suggestion, got %q", finding.Suggestion)
	}
}

func TestSplitWarnsPreHeaderTextOnce(t *testing.T) {
	_, findings := Split("stray one\nstray two\n## Lens: a\n", 5, 2, []string{"Lens"})

	if len(findings) != 1 || !findings[0].Warning {
		t.Fatalf("expected a single ignored-text warning, got %v", findings)
	}
	if findings[0].Line != 5 {
		t.Fatalf("expected warning at line 5, got %d", findings[0].Line)
	}
}

func TestSplitKeepsDeeperHeadingsInBody(t *testing.T) {
	region := "### Video: Talk\nsource:: [[../sources/talk]]\n#### Video-excerpt\nto:: 5:00\n"

	sections, findings := Split(region, 1, 3, []string{"Video", "Article"})
	if len(findings) != 0 {
		t.Fatalf("unexpected findings: %v", findings)
	}
	if len(sections) != 1 {
		t.Fatalf("expected one section, got %d", len(sections))
	}
	if !strings.Contains(sections[0].Body, "#### Video-excerpt") {
		t.Fatalf("expected nested segment header in body, got %q", sections[0].Body)
	}
}

func TestSplitTitleMayContainColon(t *testing.T) {
	sections, _ := Split("# Page: Work: A Deep History\n", 1, 1, []string{"Page"})
	if len(sections) != 1 || sections[0].Title != "Work: A Deep History" {
		t.Fatalf("expected title split on first colon only, got %+v", sections)
	}
}
