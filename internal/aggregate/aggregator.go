package aggregate

import (
	"log/slog"
	"strings"

	"newslens/internal/domain"
)

// Aggregator merges raw record batches into one ordered article set:
// records without title or description are dropped, titles are deduplicated
// after normalization keeping the first occurrence, every survivor carries a
// country and category tag, and the set is truncated to the requested count.
type Aggregator struct {
	logger *slog.Logger
}

// New builds an aggregator; the logger may be nil.
func New(logger *slog.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Merge applies the aggregation policy over batches in fetch order.
// A non-positive limit means no truncation.
func (a *Aggregator) Merge(batches [][]domain.Article, limit int) []domain.Article {
	seen := map[string]struct{}{}
	var merged []domain.Article
	dropped := 0

	for _, batch := range batches {
		for _, article := range batch {
			if strings.TrimSpace(article.Title) == "" || strings.TrimSpace(article.Description) == "" {
				dropped++
				continue
			}

			key := NormalizeTitle(article.Title)
			if _, dup := seen[key]; dup {
				dropped++
				continue
			}
			seen[key] = struct{}{}

			if article.Country == "" || article.Country == domain.CountryUnknown {
				article.Country = InferCountry(article.Source)
			}
			if article.Category == "" {
				article.Category = InferCategory(article.Title + " " + article.Description)
			}

			merged = append(merged, article)
		}
	}

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}

	a.debug("merge done", "batches", len(batches), "kept", len(merged), "dropped", dropped)
	return merged
}

// NormalizeTitle lowers the title and collapses internal whitespace so that
// case and spacing variants of the same headline deduplicate together.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

func (a *Aggregator) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
