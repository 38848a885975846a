package domain

import (
	"errors"
	"time"
)

// ErrNoResults signals that aggregation produced zero articles for a request.
// Callers treat it as a prompt to relax the query, not as a pipeline fault.
var ErrNoResults = errors.New("no articles matched the query")

// Intent is the routing decision made for an incoming query.
type Intent string

const (
	IntentPlain    Intent = "plain"
	IntentLongForm Intent = "long_form"
	IntentConflict Intent = "conflict"
)

// Country is the inferred origin of an article's source.
type Country string

const (
	CountryIndia     Country = "India"
	CountryPakistan  Country = "Pakistan"
	CountryUK        Country = "UK"
	CountryUSA       Country = "USA"
	CountryCanada    Country = "Canada"
	CountryAustralia Country = "Australia"
	CountrySingapore Country = "Singapore"
	CountryWorld     Country = "World"
	CountryUnknown   Country = "Unknown"
)

// Category is the inferred topical bucket of an article.
type Category string

const (
	CategoryBusiness      Category = "business"
	CategoryEntertainment Category = "entertainment"
	CategoryGeneral       Category = "general"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategorySports        Category = "sports"
	CategoryTechnology    Category = "technology"
	CategoryPolitics      Category = "politics"
)

// Article is a candidate news record fetched from an external source and
// enriched during aggregation. Title is the dedup key after normalization.
type Article struct {
	Title       string
	Description string
	URL         string
	Source      string
	PublishedAt time.Time
	Country     Country
	Category    Category
}

// Entity is a named entity extracted from article text, informational only.
type Entity struct {
	Text  string
	Label string
}

// ScoreBundle carries the three independent credibility signals for one
// article plus their composite. All score fields are percentages in [0,100].
type ScoreBundle struct {
	Article        Article
	LexicalScore   float64
	SequenceScore  float64
	JudgmentScore  float64
	CompositeScore float64
	Summary        string
	Explanation    string
	Credibility    int
	Entities       []Entity
}

// InterestProfile is the externally owned set of user preferences consumed
// by the feed and related-content flows.
type InterestProfile struct {
	Topics    []string
	Countries []string
}
