package fetch

import (
	"context"
	"fmt"

	"newslens/internal/domain"
)

// Request carries all parameters required to execute one retrieval call.
// When both CountryCode and Category are set the call is headline-scoped,
// otherwise it is a relevance-sorted full-text search.
type Request struct {
	Query       string
	Language    string
	PageSize    int
	Category    domain.Category
	CountryCode string
	Sort        string
}

// Source captures a single news retrieval backend (NewsAPI, RSS, etc.).
type Source interface {
	Name() string
	Search(ctx context.Context, req Request) ([]domain.Article, error)
}

// Registry keeps a mapping from source names to their implementations.
type Registry struct {
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(source Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	r.sources[source.Name()] = source
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if source, ok := r.sources[name]; ok {
		return source, nil
	}
	return nil, fmt.Errorf("source %s is not registered", name)
}
