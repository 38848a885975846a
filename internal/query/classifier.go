package query

import (
	"strings"

	"newslens/internal/domain"
)

// longQueryThreshold marks the boundary between plain and long-form queries.
const longQueryThreshold = 80

// ConflictTerms is the fixed lexicon of terms that mark a query as touching
// armed conflict or geopolitical tension.
var ConflictTerms = []string{
	"attack", "war", "conflict", "tension", "military", "strike", "border", "terrorism",
}

// SensitiveCountries is the fixed lexicon of countries and regions with
// active geopolitical tension. Entries are lowercase substrings.
var SensitiveCountries = []string{
	"india", "pakistan", "israel", "palestine", "russia", "ukraine",
	"china", "taiwan", "gaza", "iran", "iraq", "afghanistan",
	"syria", "yemen", "north korea", "south korea",
}

// SensitivePairs lists country pairs whose co-mention is itself an implicit
// conflict signal even without an explicit conflict term.
var SensitivePairs = [][2]string{
	{"india", "pakistan"},
	{"israel", "palestine"},
	{"russia", "ukraine"},
	{"china", "taiwan"},
	{"north korea", "south korea"},
}

// IsLong reports whether the query needs long-form term extraction.
func IsLong(query string) bool {
	return len(strings.TrimSpace(query)) > longQueryThreshold
}

// IsConflict reports whether the query combines a conflict term with a
// sensitive country or region.
func IsConflict(query string) bool {
	lower := strings.ToLower(query)
	return containsAny(lower, ConflictTerms) && containsAny(lower, SensitiveCountries)
}

// MentionsSensitivePair reports whether both sides of any sensitive country
// pair appear in the query.
func MentionsSensitivePair(query string) bool {
	lower := strings.ToLower(query)
	for _, pair := range SensitivePairs {
		if strings.Contains(lower, pair[0]) && strings.Contains(lower, pair[1]) {
			return true
		}
	}
	return false
}

// Classify routes a raw query to an intent. Conflict detection wins over
// long-form detection, and sensitive-pair co-mention escalates to conflict
// even when no explicit conflict term is present.
func Classify(query string) domain.Intent {
	if IsConflict(query) || MentionsSensitivePair(query) {
		return domain.IntentConflict
	}
	if IsLong(query) {
		return domain.IntentLongForm
	}
	return domain.IntentPlain
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
