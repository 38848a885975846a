package usecase

import (
	"context"
	"strings"

	"newslens/internal/aggregate"
	"newslens/internal/domain"
	"newslens/internal/fetch"
	"newslens/internal/query"
)

// longDescriptionMin is the description length above which the long-form
// term-extraction policy replaces plain keyword frequency.
const (
	longDescriptionMin   = 100
	descriptionExcerpt   = 250
	relatedKeywordsLimit = 5
)

// CategoryRelated is one related-content tab scoped to a single category.
type CategoryRelated struct {
	Category domain.Category
	Articles []domain.Article
}

// RelatedContent groups everything shown under an open article: a directly
// related set derived from the seed's own text, and one tab per liked
// category.
type RelatedContent struct {
	Direct     []domain.Article
	Categories []CategoryRelated
}

// Related derives secondary queries from the seed article and re-runs
// retrieval and aggregation for each view. The seed itself is excluded
// everywhere and each view is capped at the configured related limit.
func (p *Pipeline) Related(ctx context.Context, seed domain.Article, liked []domain.Category) RelatedContent {
	content := RelatedContent{
		Direct: p.relatedDirect(ctx, seed),
	}

	for _, category := range withSeedCategory(liked, seed.Category) {
		articles := p.CategoryNews(ctx, []domain.Category{category}, seed.Country)
		articles = excludeTitle(articles, seed.Title, p.search.RelatedCap)
		content.Categories = append(content.Categories, CategoryRelated{
			Category: category,
			Articles: articles,
		})
	}

	return content
}

// relatedDirect fetches articles for a query derived from the seed's text,
// topping up from category headlines when the derived search comes short.
func (p *Pipeline) relatedDirect(ctx context.Context, seed domain.Article) []domain.Article {
	derived := deriveQuery(seed)
	if derived == "" {
		return excludeTitle(p.CategoryNews(ctx, []domain.Category{seed.Category}, seed.Country), seed.Title, p.search.RelatedCap)
	}

	req := fetch.Request{
		Query:    derived,
		Language: p.search.Language,
		PageSize: p.search.RelatedCap + 1,
		Sort:     sortRelevancy,
	}

	batches := p.fetcher.Fetch(ctx, req)
	merged := p.aggregator.Merge(batches, 0)
	related := excludeTitle(merged, seed.Title, p.search.RelatedCap)

	if len(related) < p.search.RelatedCap {
		related = p.supplementFromCategory(ctx, seed, related)
	}
	return related
}

func (p *Pipeline) supplementFromCategory(ctx context.Context, seed domain.Article, related []domain.Article) []domain.Article {
	seen := map[string]struct{}{aggregate.NormalizeTitle(seed.Title): {}}
	for _, article := range related {
		seen[aggregate.NormalizeTitle(article.Title)] = struct{}{}
	}

	for _, article := range p.CategoryNews(ctx, []domain.Category{seed.Category}, seed.Country) {
		if len(related) >= p.search.RelatedCap {
			break
		}
		key := aggregate.NormalizeTitle(article.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		related = append(related, article)
	}
	return related
}

// deriveQuery builds the secondary search string from the seed article:
// long-form term extraction over title plus a description excerpt for
// substantial descriptions, keyword frequency otherwise. An empty string
// means no usable query could be derived.
func deriveQuery(seed domain.Article) string {
	description := seed.Description

	if len(description) > longDescriptionMin {
		excerpt := query.Truncate(description, descriptionExcerpt)
		return query.ExtractTerms(seed.Title + ". " + excerpt)
	}

	keywords := query.Keywords(seed.Title+" "+description, relatedKeywordsLimit)
	if len(keywords) == 0 {
		return ""
	}
	return strings.Join(keywords, " OR ")
}

func withSeedCategory(liked []domain.Category, seed domain.Category) []domain.Category {
	if seed == "" {
		seed = domain.CategoryGeneral
	}
	for _, category := range liked {
		if category == seed {
			return liked
		}
	}
	return append(append([]domain.Category{}, liked...), seed)
}

func excludeTitle(articles []domain.Article, title string, limit int) []domain.Article {
	key := aggregate.NormalizeTitle(title)
	var kept []domain.Article
	for _, article := range articles {
		if aggregate.NormalizeTitle(article.Title) == key {
			continue
		}
		kept = append(kept, article)
		if limit > 0 && len(kept) >= limit {
			break
		}
	}
	return kept
}
