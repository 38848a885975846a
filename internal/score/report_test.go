package score

import (
	"testing"

	"newslens/internal/aggregate"
)

const sampleReport = `Here is my analysis of the articles.

### Title: [Markets Rally After Rate Cut]
- Summary: Stocks climbed after the central bank lowered rates.
- Real vs Fake Probability: 85%
- Explanation: Consistent with multiple wire reports.
- Source Credibility: 8/10

### Title: Moon Made Of Cheese, Insider Claims
- Summary: An anonymous source makes an extraordinary claim.
- Real vs Fake Probability: 5%
- Explanation: No corroboration anywhere.
- Source Credibility: 1/10
`

func TestParseReport(t *testing.T) {
	t.Parallel()

	entries := ParseReport(sampleReport)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first, ok := entries[aggregate.NormalizeTitle("Markets Rally After Rate Cut")]
	if !ok {
		t.Fatal("first entry missing")
	}
	if first.Probability != 85 {
		t.Fatalf("probability = %d, want 85", first.Probability)
	}
	if first.Credibility != 8 {
		t.Fatalf("credibility = %d, want 8", first.Credibility)
	}
	if first.Summary != "Stocks climbed after the central bank lowered rates." {
		t.Fatalf("unexpected summary: %q", first.Summary)
	}

	second := entries[aggregate.NormalizeTitle("Moon Made Of Cheese, Insider Claims")]
	if second.Probability != 5 || second.Credibility != 1 {
		t.Fatalf("unexpected second entry: %+v", second)
	}
}

func TestParseReportMissingCredibilityDefaults(t *testing.T) {
	t.Parallel()

	report := `### Title: Half Formed Block
- Summary: Something happened.
- Real vs Fake Probability: 70%
- Explanation: Plausible.
`

	entry, ok := ParseReport(report)[aggregate.NormalizeTitle("Half Formed Block")]
	if !ok {
		t.Fatal("entry missing")
	}
	if entry.Probability != 70 {
		t.Fatalf("probability = %d, want 70", entry.Probability)
	}
	if entry.Credibility != DefaultCredibility {
		t.Fatalf("credibility = %d, want default %d", entry.Credibility, DefaultCredibility)
	}
}

func TestParseReportFullDefaults(t *testing.T) {
	t.Parallel()

	report := `### Title: Bare Block
Nothing matches the grammar here.
`

	entry := ParseReport(report)[aggregate.NormalizeTitle("Bare Block")]
	if entry.Probability != DefaultProbability || entry.Credibility != DefaultCredibility {
		t.Fatalf("expected full defaults, got %+v", entry)
	}
}

func TestParseReportClampsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	report := `### Title: Overshoot
- Real vs Fake Probability: 250%
- Source Credibility: 99/10
`

	entry := ParseReport(report)[aggregate.NormalizeTitle("Overshoot")]
	if entry.Probability != 100 {
		t.Fatalf("probability = %d, want clamped 100", entry.Probability)
	}
	if entry.Credibility != 10 {
		t.Fatalf("credibility = %d, want clamped 10", entry.Credibility)
	}
}

func TestParseReportGarbage(t *testing.T) {
	t.Parallel()

	if entries := ParseReport("the model refused to answer"); len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
