package aggregate

import (
	"strings"

	"newslens/internal/domain"
)

// countryRule maps source-name substrings to an origin country. Rules are
// ordered; the first rule with a matching hint wins.
type countryRule struct {
	country domain.Country
	hints   []string
}

var countryRules = []countryRule{
	{domain.CountryIndia, []string{"india", "ndtv", "hindustan"}},
	{domain.CountryPakistan, []string{"pakistan", "dawn"}},
	{domain.CountryUK, []string{"bbc", "guardian", "telegraph", ".co.uk"}},
	{domain.CountryUSA, []string{"cnn", "fox", "nbc", "cbs", "usa today", "washington", "york"}},
	{domain.CountryCanada, []string{"canada", ".ca"}},
	{domain.CountryAustralia, []string{"australia", ".au"}},
	{domain.CountrySingapore, []string{"singapore", ".sg"}},
}

// categoryRule maps content keywords to a topical category, first match wins.
type categoryRule struct {
	category domain.Category
	keywords []string
}

var categoryRules = []categoryRule{
	{domain.CategoryBusiness, []string{"business", "economy", "market", "stock", "finance", "trade", "economic"}},
	{domain.CategoryTechnology, []string{"tech", "technology", "digital", "software", "hardware", "ai", "computing"}},
	{domain.CategoryHealth, []string{"health", "medical", "medicine", "disease", "treatment", "doctor", "patient"}},
	{domain.CategoryScience, []string{"science", "scientific", "research", "study", "discovery"}},
	{domain.CategorySports, []string{"sport", "sports", "team", "player", "game", "match", "tournament"}},
	{domain.CategoryPolitics, []string{"politics", "political", "government", "election", "policy", "minister", "president"}},
	{domain.CategoryEntertainment, []string{"entertainment", "movie", "film", "music", "celebrity", "actor", "actress"}},
}

// topicCategories converts user-facing topic names into API categories.
var topicCategories = map[string]domain.Category{
	"business":      domain.CategoryBusiness,
	"finance":       domain.CategoryBusiness,
	"stock":         domain.CategoryBusiness,
	"sports":        domain.CategorySports,
	"politics":      domain.CategoryPolitics,
	"technology":    domain.CategoryTechnology,
	"science":       domain.CategoryScience,
	"health":        domain.CategoryHealth,
	"entertainment": domain.CategoryEntertainment,
}

// countryCodes maps display countries to retrieval country codes. World has
// no code; it routes to relevance-sorted full-text search instead.
var countryCodes = map[domain.Country]string{
	domain.CountryIndia:     "in",
	domain.CountryUSA:       "us",
	domain.CountryUK:        "gb",
	domain.CountryCanada:    "ca",
	domain.CountrySingapore: "sg",
	domain.CountryAustralia: "au",
}

// InferCountry tags an article with a best-effort origin country derived
// from its source name. Unmatched sources stay Unknown.
func InferCountry(sourceName string) domain.Country {
	lower := strings.ToLower(sourceName)
	for _, rule := range countryRules {
		for _, hint := range rule.hints {
			if strings.Contains(lower, hint) {
				return rule.country
			}
		}
	}
	return domain.CountryUnknown
}

// InferCategory tags article content with a best-effort topical category.
// Unmatched content stays general.
func InferCategory(content string) domain.Category {
	lower := strings.ToLower(content)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return domain.CategoryGeneral
}

// CategoryForTopic resolves a user topic name to an API category,
// defaulting to general for unknown topics.
func CategoryForTopic(topic string) domain.Category {
	if category, ok := topicCategories[strings.ToLower(strings.TrimSpace(topic))]; ok {
		return category
	}
	return domain.CategoryGeneral
}

// CountryCode resolves a display country to its retrieval code. The second
// return is false for World, Unknown, and anything else without a code.
func CountryCode(country domain.Country) (string, bool) {
	code, ok := countryCodes[country]
	return code, ok
}

// ParseCountry maps a stored country name back onto the known enum,
// defaulting to Unknown.
func ParseCountry(name string) domain.Country {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "india":
		return domain.CountryIndia
	case "pakistan":
		return domain.CountryPakistan
	case "uk", "united kingdom":
		return domain.CountryUK
	case "usa", "us", "united states":
		return domain.CountryUSA
	case "canada":
		return domain.CountryCanada
	case "australia":
		return domain.CountryAustralia
	case "singapore":
		return domain.CountrySingapore
	case "world", "global":
		return domain.CountryWorld
	default:
		return domain.CountryUnknown
	}
}
