package score

import (
	"regexp"
	"strconv"
	"strings"

	"newslens/internal/aggregate"
)

// The judgment collaborator reports one block per article:
//
//	### Title: [TITLE]
//	- Summary: ...
//	- Real vs Fake Probability: NN%
//	- Explanation: ...
//	- Source Credibility: N/10
//
// The report is untrusted model output; any field that fails to parse takes
// its documented neutral default and never drops the article.

// Neutral defaults for fields missing from a judgment report block.
const (
	DefaultProbability = 50
	DefaultCredibility = 5
)

const titleMarker = "### Title:"

var (
	probabilityExpr = regexp.MustCompile(`Real vs Fake Probability:\s*(\d{1,3})\s*%`)
	credibilityExpr = regexp.MustCompile(`Source Credibility:\s*(\d{1,2})\s*/\s*10`)
	summaryExpr     = regexp.MustCompile(`Summary:\s*(.+)`)
	explanationExpr = regexp.MustCompile(`Explanation:\s*(.+)`)
)

// ReportEntry is one parsed article block from a judgment report.
type ReportEntry struct {
	Title       string
	Summary     string
	Probability int
	Explanation string
	Credibility int
}

// ParseReport splits a judgment report into entries keyed by normalized
// article title. Blocks that match no known article are kept under their own
// title; articles absent from the map take full defaults.
func ParseReport(report string) map[string]ReportEntry {
	entries := map[string]ReportEntry{}

	blocks := strings.Split(report, titleMarker)
	for _, block := range blocks[1:] {
		entry := parseBlock(block)
		if entry.Title == "" {
			continue
		}
		key := aggregate.NormalizeTitle(entry.Title)
		if _, dup := entries[key]; dup {
			continue
		}
		entries[key] = entry
	}

	return entries
}

func parseBlock(block string) ReportEntry {
	title := block
	if idx := strings.IndexByte(block, '\n'); idx >= 0 {
		title = block[:idx]
	}
	title = strings.Trim(strings.TrimSpace(title), "[]")

	entry := ReportEntry{
		Title:       title,
		Probability: DefaultProbability,
		Credibility: DefaultCredibility,
	}

	if m := probabilityExpr.FindStringSubmatch(block); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			entry.Probability = clampInt(v, 0, 100)
		}
	}
	if m := credibilityExpr.FindStringSubmatch(block); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			entry.Credibility = clampInt(v, 0, 10)
		}
	}
	if m := summaryExpr.FindStringSubmatch(block); m != nil {
		entry.Summary = strings.TrimSpace(m[1])
	}
	if m := explanationExpr.FindStringSubmatch(block); m != nil {
		entry.Explanation = strings.TrimSpace(m[1])
	}

	return entry
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
