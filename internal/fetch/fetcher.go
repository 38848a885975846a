package fetch

import (
	"context"
	"log/slog"

	"newslens/internal/domain"
)

// Fetcher fans one retrieval request across every enabled source. A failure
// in a single source degrades to an empty batch for that source so partial
// results still reach aggregation; no error ever propagates to the caller.
type Fetcher struct {
	registry *Registry
	enabled  []string
	minPage  int
	maxPage  int
	logger   *slog.Logger
}

// NewFetcher wires the source registry with the enabled source names, in
// priority order, and the configured page-size bounds.
func NewFetcher(reg *Registry, enabled []string, minPage, maxPage int, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		registry: reg,
		enabled:  enabled,
		minPage:  minPage,
		maxPage:  maxPage,
		logger:   logger,
	}
}

// Fetch executes the request against each enabled source sequentially and
// returns the raw batches in source order.
func (f *Fetcher) Fetch(ctx context.Context, req Request) [][]domain.Article {
	req.PageSize = f.clampPageSize(req.PageSize)

	batches := make([][]domain.Article, 0, len(f.enabled))
	for _, name := range f.enabled {
		source, err := f.registry.Resolve(name)
		if err != nil {
			f.warn("source unavailable", "source", name, "error", err)
			continue
		}

		articles, err := source.Search(ctx, req)
		if err != nil {
			f.warn("source call failed, degrading to empty batch", "source", name, "error", err)
			batches = append(batches, nil)
			continue
		}

		f.debug("source produced articles", "source", name, "count", len(articles))
		batches = append(batches, articles)
	}

	return batches
}

func (f *Fetcher) clampPageSize(size int) int {
	if size < f.minPage {
		return f.minPage
	}
	if size > f.maxPage {
		return f.maxPage
	}
	return size
}

func (f *Fetcher) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}

func (f *Fetcher) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
