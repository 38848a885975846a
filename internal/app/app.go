package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/lib/pq"

	"newslens/internal/aggregate"
	"newslens/internal/config"
	"newslens/internal/domain"
	"newslens/internal/fetch"
	"newslens/internal/infrastructure/llm"
	"newslens/internal/infrastructure/ml"
	"newslens/internal/infrastructure/newsapi"
	"newslens/internal/infrastructure/rssnews"
	"newslens/internal/infrastructure/storage"
	"newslens/internal/logging"
	"newslens/internal/score"
	"newslens/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := fetch.NewRegistry()
	registry.Register(newsapi.NewClient(cfg.NewsAPI.BaseURL, cfg.NewsAPI.APIKey, nil))

	enabled := []string{"newsapi"}
	if cfg.RSS.Enabled {
		registry.Register(rssnews.New(cfg.RSS.BaseURL, nil))
		enabled = append(enabled, "rssnews")
	}

	fetcher := fetch.NewFetcher(registry, enabled,
		cfg.Search.MinPageSize, cfg.Search.MaxPageSize,
		logging.Component(baseLogger, "fetcher"))

	aggregator := aggregate.New(logging.Component(baseLogger, "aggregator"))

	inference := ml.NewClient(cfg.ML.InferenceURL, cfg.ML.APIKey)

	scorerDeps := score.EnsembleDeps{
		Titles:          inference,
		Entities:        inference,
		JudgmentCap:     cfg.Search.JudgmentCap,
		JudgmentCharCap: cfg.Search.JudgmentCharCap,
		Logger:          logging.Component(baseLogger, "scorer"),
	}
	if cfg.Judgment.APIKey != "" {
		scorerDeps.Judge = llm.NewGeminiClient(cfg.Judgment)
	}

	var store *storage.PostgresStore
	if cfg.Database.DSN != "" {
		if db, err := sql.Open("postgres", cfg.Database.DSN); err != nil {
			baseLogger.Warn("database unavailable, profile features disabled", "error", err)
		} else {
			store = storage.NewPostgresStore(db)
		}
	}

	deps := usecase.PipelineDeps{
		Fetcher:    fetcher,
		Aggregator: aggregator,
		Scorer:     score.NewEnsemble(scorerDeps),
		Search:     cfg.Search,
		Logger:     logging.Component(baseLogger, "pipeline"),
	}
	if store != nil {
		deps.Profiles = store
		deps.Activity = store
	}

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		pipeline: usecase.NewPipeline(deps),
	}
}

// Run executes one search request end to end and prints the scored digest.
func (a *Application) Run(ctx context.Context, rawQuery string) error {
	if a.pipeline == nil {
		return nil
	}

	bundles, err := a.pipeline.Search(ctx, rawQuery)
	if errors.Is(err, domain.ErrNoResults) {
		a.logger.Info("no articles found; try a shorter or broader query")
		return nil
	}
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	fmt.Print(buildDigest(bundles))
	return nil
}

func buildDigest(bundles []domain.ScoreBundle) string {
	var b strings.Builder
	for _, bundle := range bundles {
		fmt.Fprintf(&b, "- %s\n  Credibility: %.2f%% (lexical %.2f / sequence %.2f / judgment %.2f)\n  %s | %s | %s\n  %s\n",
			bundle.Article.Title,
			bundle.CompositeScore,
			bundle.LexicalScore,
			bundle.SequenceScore,
			bundle.JudgmentScore,
			bundle.Article.Source,
			bundle.Article.Country,
			bundle.Article.Category,
			bundle.Article.URL)
	}
	return b.String()
}
