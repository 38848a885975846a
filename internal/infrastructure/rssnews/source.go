package rssnews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"newslens/internal/domain"
	"newslens/internal/fetch"
)

// Source retrieves candidates from a Google News style RSS search feed.
// It is a secondary backend: headline-scoped requests fall back to searching
// the category keyword within the requested country edition.
type Source struct {
	baseURL string
	http    *http.Client
}

var _ fetch.Source = (*Source)(nil)

// New builds the RSS source; a nil http.Client gets a 20s-timeout default.
func New(baseURL string, client *http.Client) *Source {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Source{baseURL: baseURL, http: client}
}

// Name identifies the source inside the registry.
func (s *Source) Name() string {
	return "rssnews"
}

// Search queries the RSS feed and maps its items to raw article records.
func (s *Source) Search(ctx context.Context, req fetch.Request) ([]domain.Article, error) {
	feedURL := s.buildFeedURL(req)

	parser := gofeed.NewParser()
	parser.Client = s.http

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	articles := make([]domain.Article, 0, req.PageSize)
	for _, item := range feed.Items {
		if len(articles) >= req.PageSize {
			break
		}
		articles = append(articles, itemToArticle(item, req.Category))
	}
	return articles, nil
}

func (s *Source) buildFeedURL(req fetch.Request) string {
	query := req.Query
	if req.CountryCode != "" && req.Category != "" {
		query = string(req.Category)
	}

	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	region := strings.ToUpper(req.CountryCode)
	if region == "" {
		region = "US"
	}

	return fmt.Sprintf("%s/search?q=%s&hl=%s&gl=%s&ceid=%s:%s",
		s.baseURL,
		url.QueryEscape(query),
		url.QueryEscape(lang),
		url.QueryEscape(region),
		url.QueryEscape(region),
		url.QueryEscape(lang),
	)
}

func itemToArticle(item *gofeed.Item, category domain.Category) domain.Article {
	title, source := splitTitleSource(item.Title)
	if source == "" {
		source = linkHost(item.Link)
	}

	published := time.Time{}
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.UTC()
	}

	return domain.Article{
		Title:       title,
		Description: stripHTML(item.Description),
		URL:         item.Link,
		Source:      source,
		PublishedAt: published,
		Country:     domain.CountryUnknown,
		Category:    category,
	}
}

// splitTitleSource separates the " - Publisher" suffix Google News appends
// to item titles.
func splitTitleSource(title string) (string, string) {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 {
		return strings.TrimSpace(title), ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}

// stripHTML reduces an HTML-formatted item description to its plain text.
func stripHTML(description string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return strings.TrimSpace(description)
	}
	return strings.TrimSpace(doc.Text())
}

func linkHost(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
