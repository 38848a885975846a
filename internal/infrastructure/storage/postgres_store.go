package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"newslens/internal/domain"
	"newslens/internal/ports"
)

// recentClickWindow bounds how much click history feeds recommendations.
const recentClickWindow = 50

// PostgresStore persists interest profiles, click history, and saved
// articles. It backs both the profile and the activity ports.
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ProfileStore = (*PostgresStore)(nil)
var _ ports.ActivityStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Interests loads the user's topic and country selections. A user without
// a stored profile gets an empty profile, not an error.
func (s *PostgresStore) Interests(ctx context.Context, userID int64) (domain.InterestProfile, error) {
	if s.db == nil {
		return domain.InterestProfile{}, nil
	}

	sqlStr, args, err := s.builder.
		Select("topics", "countries").
		From("user_interests").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return domain.InterestProfile{}, fmt.Errorf("build query: %w", err)
	}

	var profile domain.InterestProfile
	row := s.db.QueryRowContext(ctx, sqlStr, args...)
	if err := row.Scan(pq.Array(&profile.Topics), pq.Array(&profile.Countries)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.InterestProfile{}, nil
		}
		return domain.InterestProfile{}, fmt.Errorf("scan interests: %w", err)
	}

	return profile, nil
}

// SaveInterests upserts the user's interest selections.
func (s *PostgresStore) SaveInterests(ctx context.Context, userID int64, profile domain.InterestProfile) error {
	if s.db == nil {
		return nil
	}

	sqlStr, args, err := s.builder.
		Insert("user_interests").
		Columns("user_id", "topics", "countries").
		Values(userID, pq.Array(profile.Topics), pq.Array(profile.Countries)).
		Suffix(`ON CONFLICT (user_id) DO UPDATE
                SET topics = EXCLUDED.topics,
                    countries = EXCLUDED.countries,
                    updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("upsert interests: %w", err)
	}
	return nil
}

// LogClick appends one click record for recommendation signals.
func (s *PostgresStore) LogClick(ctx context.Context, userID int64, title string, category domain.Category) error {
	if s.db == nil {
		return nil
	}

	sqlStr, args, err := s.builder.
		Insert("clicks").
		Columns("user_id", "title", "category").
		Values(userID, title, string(category)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert click: %w", err)
	}
	return nil
}

// SaveArticle stores an article snapshot on the user's saved list.
func (s *PostgresStore) SaveArticle(ctx context.Context, userID int64, article domain.Article) error {
	if s.db == nil {
		return nil
	}

	sqlStr, args, err := s.builder.
		Insert("saved_news").
		Columns("id", "user_id", "title", "url", "source", "category").
		Values(uuid.NewString(), userID, article.Title, article.URL, article.Source, string(article.Category)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert saved article: %w", err)
	}
	return nil
}

// LikedCategories returns the categories of the user's most recent clicks,
// newest first.
func (s *PostgresStore) LikedCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	if s.db == nil {
		return nil, nil
	}

	sqlStr, args, err := s.builder.
		Select("category").
		From("clicks").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("clicked_at DESC").
		Limit(recentClickWindow).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query clicks: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, domain.Category(category))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return categories, nil
}
