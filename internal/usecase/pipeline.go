package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"newslens/internal/aggregate"
	"newslens/internal/config"
	"newslens/internal/domain"
	"newslens/internal/fetch"
	"newslens/internal/ports"
	"newslens/internal/query"
	"newslens/internal/score"
)

const (
	feedPageSize   = 5
	browsePageSize = 3
	browseCap      = 5
	sortRelevancy  = "relevancy"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Fetcher    *fetch.Fetcher
	Aggregator *aggregate.Aggregator
	Scorer     *score.Ensemble
	Profiles   ports.ProfileStore
	Activity   ports.ActivityStore
	Search     config.SearchConfig
	Logger     *slog.Logger
}

// Pipeline implements the query-routing, retrieval-aggregation, and
// ensemble-scoring workflow. All state is request-scoped; the pipeline
// itself holds only collaborators.
type Pipeline struct {
	fetcher    *fetch.Fetcher
	aggregator *aggregate.Aggregator
	scorer     *score.Ensemble
	profiles   ports.ProfileStore
	activity   ports.ActivityStore
	search     config.SearchConfig
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		fetcher:    deps.Fetcher,
		aggregator: deps.Aggregator,
		scorer:     deps.Scorer,
		profiles:   deps.Profiles,
		activity:   deps.Activity,
		search:     deps.Search,
		logger:     deps.Logger,
	}
}

// Search routes the raw query, retrieves and aggregates candidates, and
// scores the surviving set. A zero-article aggregation surfaces as
// domain.ErrNoResults so the caller can offer query relaxation.
func (p *Pipeline) Search(ctx context.Context, rawQuery string) ([]domain.ScoreBundle, error) {
	if p.fetcher == nil || p.aggregator == nil {
		return nil, fmt.Errorf("pipeline is not fully wired")
	}

	requestID := uuid.NewString()

	intent := query.Classify(rawQuery)
	rewritten := query.Rewrite(rawQuery, intent)
	if rewritten == "" {
		return nil, domain.ErrNoResults
	}

	p.info("query routed", "request_id", requestID, "intent", intent, "query", rewritten)

	req := fetch.Request{
		Query:    rewritten,
		Language: p.search.Language,
		PageSize: p.search.MaxResults,
		Sort:     sortRelevancy,
	}

	batches := p.fetcher.Fetch(ctx, req)
	articles := p.aggregator.Merge(batches, p.search.MaxResults)
	if len(articles) == 0 {
		p.info("search produced no articles", "request_id", requestID)
		return nil, domain.ErrNoResults
	}

	if p.scorer == nil {
		return nil, fmt.Errorf("ensemble scorer is not configured")
	}

	bundles := p.scorer.Score(ctx, articles)
	p.info("search scored", "request_id", requestID, "articles", len(bundles))
	return bundles, nil
}

// Feed assembles headlines for every (country, topic) pair in the user's
// interest profile. The World pseudo-country routes through full-text
// search on the category keyword instead of a headlines call.
func (p *Pipeline) Feed(ctx context.Context, userID int64) ([]domain.Article, error) {
	if p.profiles == nil {
		return nil, fmt.Errorf("profile store is not configured")
	}

	profile, err := p.profiles.Interests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load interests: %w", err)
	}
	if len(profile.Topics) == 0 {
		return nil, domain.ErrNoResults
	}

	countries := profile.Countries
	if len(countries) == 0 {
		countries = []string{string(domain.CountryWorld)}
	}

	var batches [][]domain.Article
	for _, name := range countries {
		country := aggregate.ParseCountry(name)
		for _, topic := range profile.Topics {
			category := aggregate.CategoryForTopic(topic)
			batches = append(batches, p.fetchScoped(ctx, country, category, feedPageSize)...)
		}
	}

	articles := p.aggregator.Merge(batches, p.search.FeedCap)
	if len(articles) == 0 {
		return nil, domain.ErrNoResults
	}
	return articles, nil
}

// CategoryNews fetches a small headline batch per category for one country.
// Used by the related-content tabs and as the keyword-extraction fallback;
// retrieval failures degrade to an empty result.
func (p *Pipeline) CategoryNews(ctx context.Context, categories []domain.Category, country domain.Country) []domain.Article {
	var batches [][]domain.Article
	for _, category := range categories {
		batches = append(batches, p.fetchScoped(ctx, country, category, browsePageSize)...)
	}
	return p.aggregator.Merge(batches, browseCap)
}

// RecordClick logs a click for recommendations. Sink failures are logged
// and swallowed; click logging must never break the reading flow.
func (p *Pipeline) RecordClick(ctx context.Context, userID int64, article domain.Article) {
	if p.activity == nil {
		return
	}
	if err := p.activity.LogClick(ctx, userID, article.Title, article.Category); err != nil {
		p.warn("click logging failed", "user_id", userID, "error", err)
	}
}

// SaveArticle persists an article to the user's saved list; failures are
// logged, not fatal.
func (p *Pipeline) SaveArticle(ctx context.Context, userID int64, article domain.Article) {
	if p.activity == nil {
		return
	}
	if err := p.activity.SaveArticle(ctx, userID, article); err != nil {
		p.warn("saving article failed", "user_id", userID, "error", err)
	}
}

// RecommendCategories returns the user's two most clicked categories, with
// a fixed default mix when there is no history to draw on.
func (p *Pipeline) RecommendCategories(ctx context.Context, userID int64) []domain.Category {
	fallback := []domain.Category{domain.CategoryTechnology, domain.CategoryGeneral, domain.CategorySports}

	if p.activity == nil {
		return fallback
	}

	liked, err := p.activity.LikedCategories(ctx, userID)
	if err != nil {
		p.warn("loading liked categories failed", "user_id", userID, "error", err)
		return fallback
	}
	if len(liked) == 0 {
		return fallback
	}

	counts := map[domain.Category]int{}
	var order []domain.Category
	for _, category := range liked {
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 2 {
		order = order[:2]
	}
	return order
}

// fetchScoped issues one headlines-style retrieval for a (country,
// category) pair and stamps the requested country onto the raw records.
// Countries without a retrieval code search the category keyword instead.
func (p *Pipeline) fetchScoped(ctx context.Context, country domain.Country, category domain.Category, pageSize int) [][]domain.Article {
	code, ok := aggregate.CountryCode(country)

	req := fetch.Request{
		Language: p.search.Language,
		PageSize: pageSize,
		Category: category,
	}
	if ok {
		req.CountryCode = code
	} else {
		req.Query = string(category)
		req.Sort = sortRelevancy
	}

	batches := p.fetcher.Fetch(ctx, req)
	if country == domain.CountryUnknown || country == "" {
		return batches
	}
	for _, batch := range batches {
		for i := range batch {
			batch[i].Country = country
		}
	}
	return batches
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
