package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newslens/internal/domain"
	"newslens/internal/fetch"
)

const defaultSort = "relevancy"

// Client talks to a NewsAPI-compatible backend. Full-text requests go to
// the everything endpoint; (country, category) scoped requests go to
// top-headlines.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ fetch.Source = (*Client)(nil)

// NewClient builds a client; a nil http.Client gets a 20s-timeout default.
func NewClient(baseURL, apiKey string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, http: client}
}

// Name identifies the source inside the registry.
func (c *Client) Name() string {
	return "newsapi"
}

// Search executes one retrieval call and maps the raw records to articles.
// Backend errors come back as structured status+message failures, which are
// distinguishable from an empty result list.
func (c *Client) Search(ctx context.Context, req fetch.Request) ([]domain.Article, error) {
	endpoint, params := c.buildCall(req)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi %s: %s", payload.Code, payload.Message)
	}

	articles := make([]domain.Article, 0, len(payload.Articles))
	for _, raw := range payload.Articles {
		articles = append(articles, raw.toDomain(req.Category))
	}
	return articles, nil
}

func (c *Client) buildCall(req fetch.Request) (string, url.Values) {
	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(req.PageSize))

	if req.CountryCode != "" && req.Category != "" {
		params.Set("country", req.CountryCode)
		params.Set("category", string(req.Category))
		return c.baseURL + "/top-headlines", params
	}

	sort := req.Sort
	if sort == "" {
		sort = defaultSort
	}
	params.Set("q", req.Query)
	params.Set("sortBy", sort)
	if req.Language != "" {
		params.Set("language", req.Language)
	}
	return c.baseURL + "/everything", params
}

type apiResponse struct {
	Status   string       `json:"status"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

func (a apiArticle) toDomain(category domain.Category) domain.Article {
	published, _ := time.Parse(time.RFC3339, a.PublishedAt)
	return domain.Article{
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		Source:      a.Source.Name,
		PublishedAt: published,
		Country:     domain.CountryUnknown,
		Category:    category,
	}
}
