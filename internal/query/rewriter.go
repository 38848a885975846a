package query

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"newslens/internal/domain"
)

const (
	maxTermsPerSegment = 3
	maxTerms           = 7
	minTokenLength     = 4
	fallbackCharBudget = 150
)

// conflictAugmentation widens recall for conflict queries that carry no
// explicit conflict term of their own.
const conflictAugmentation = "(conflict OR tensions OR attack)"

var (
	segmentSplit = regexp.MustCompile(`[.!?]+`)
	punctuation  = regexp.MustCompile(`[^\w\s]`)
)

// stopWords is the single canonical stop-word set shared by the rewriter and
// the related-content keyword extractor.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "and", "or", "but", "in", "on", "at", "to", "for",
		"is", "are", "was", "were", "be", "been", "being", "by", "with",
		"about", "against", "between", "into", "through", "during", "before",
		"after", "above", "below", "from", "up", "down", "of", "off", "over",
		"under", "again", "further", "then", "once", "here", "there", "when",
		"where", "why", "how", "all", "any", "both", "each", "few", "more",
		"most", "other", "some", "such", "no", "nor", "not", "only", "own",
		"same", "so", "than", "too", "very", "can", "could", "will", "would",
		"just", "should", "now", "this", "that", "these", "those", "what",
		"which", "who", "whom", "they", "them", "their", "have", "has", "had",
	} {
		stopWords[w] = struct{}{}
	}
}

// Rewrite turns a raw query into a search string under the policy selected
// by its intent. The result is never empty for non-empty input and is fully
// deterministic.
func Rewrite(raw string, intent domain.Intent) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}

	switch intent {
	case domain.IntentConflict:
		return augmentConflict(trimmed)
	case domain.IntentLongForm:
		return ExtractTerms(trimmed)
	default:
		if IsLong(trimmed) {
			return ExtractTerms(trimmed)
		}
		return trimmed
	}
}

// ExtractTerms reduces a long query to an OR-joined list of its most
// significant tokens: up to three per sentence-like segment, seven overall.
// When extraction yields one usable token or fewer it falls back to the
// original text truncated to a fixed character budget.
func ExtractTerms(raw string) string {
	trimmed := strings.TrimSpace(raw)

	var terms []string
	for _, segment := range segmentSplit.Split(trimmed, -1) {
		kept := 0
		for _, token := range tokenize(segment) {
			if kept >= maxTermsPerSegment {
				break
			}
			if len(token) < minTokenLength {
				continue
			}
			if _, stop := stopWords[token]; stop {
				continue
			}
			terms = append(terms, token)
			kept++
		}
	}

	if len(terms) <= 1 {
		return Truncate(trimmed, fallbackCharBudget)
	}
	if len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}
	return strings.Join(terms, " OR ")
}

func augmentConflict(trimmed string) string {
	if containsAny(strings.ToLower(trimmed), ConflictTerms) {
		return trimmed
	}
	return trimmed + " " + conflictAugmentation
}

func tokenize(segment string) []string {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(segment), "")
	return strings.Fields(cleaned)
}

// Truncate cuts s to at most budget bytes without splitting a multi-byte
// rune.
func Truncate(s string, budget int) string {
	if len(s) <= budget {
		return s
	}
	for budget > 0 && !utf8.RuneStart(s[budget]) {
		budget--
	}
	return s[:budget]
}
