package ports

import (
	"context"

	"newslens/internal/domain"
)

// TitleScorer runs batch classifier inference over article titles. Each call
// returns one real-news probability in [0,1] per title, positionally aligned.
type TitleScorer interface {
	ScoreLexical(ctx context.Context, titles []string) ([]float64, error)
	ScoreSequence(ctx context.Context, titles []string) ([]float64, error)
}

// EntityExtractor pulls named entities out of free text.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) ([]domain.Entity, error)
}

// JudgmentClient submits an article batch to a language model and returns
// its free-text credibility report for downstream parsing.
type JudgmentClient interface {
	Analyze(ctx context.Context, articles []domain.Article) (string, error)
}

// ProfileStore reads and writes per-user interest selections.
type ProfileStore interface {
	Interests(ctx context.Context, userID int64) (domain.InterestProfile, error)
	SaveInterests(ctx context.Context, userID int64, profile domain.InterestProfile) error
}

// ActivityStore is a write-only sink for click logging and saved articles.
// Implementations must treat failures as loggable, never fatal.
type ActivityStore interface {
	LogClick(ctx context.Context, userID int64, title string, category domain.Category) error
	SaveArticle(ctx context.Context, userID int64, article domain.Article) error
	LikedCategories(ctx context.Context, userID int64) ([]domain.Category, error)
}
