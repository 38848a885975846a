package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"newslens/internal/domain"
	"newslens/internal/ports"
)

// Model names accepted by the inference service.
const (
	modelLexical  = "lexical"
	modelSequence = "sequence"
)

// Client talks to an external inference service hosting the lexical and
// sequence title classifiers plus the named-entity extractor. The models
// are black boxes here; training and persistence live with the service.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.TitleScorer = (*Client)(nil)
var _ ports.EntityExtractor = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// ScoreLexical runs the surface-feature classifier over the title batch.
func (c *Client) ScoreLexical(ctx context.Context, titles []string) ([]float64, error) {
	return c.scoreTitles(ctx, modelLexical, titles)
}

// ScoreSequence runs the tokenize-pad-classify sequence model over the
// title batch.
func (c *Client) ScoreSequence(ctx context.Context, titles []string) ([]float64, error) {
	return c.scoreTitles(ctx, modelSequence, titles)
}

func (c *Client) scoreTitles(ctx context.Context, model string, titles []string) ([]float64, error) {
	if len(titles) == 0 {
		return nil, nil
	}

	payload := map[string]any{
		"model":  model,
		"titles": titles,
	}

	var resp struct {
		Scores []float64 `json:"scores"`
	}
	if err := c.post(ctx, "/classify", payload, &resp); err != nil {
		return nil, err
	}

	if len(resp.Scores) != len(titles) {
		return nil, fmt.Errorf("model %s returned %d scores for %d titles", model, len(resp.Scores), len(titles))
	}

	for i, score := range resp.Scores {
		resp.Scores[i] = clampUnit(score)
	}
	return resp.Scores, nil
}

// ExtractEntities returns named entities found in the text.
func (c *Client) ExtractEntities(ctx context.Context, text string) ([]domain.Entity, error) {
	payload := map[string]any{"text": text}

	var resp struct {
		Entities []struct {
			Text  string `json:"text"`
			Label string `json:"label"`
		} `json:"entities"`
	}
	if err := c.post(ctx, "/entities", payload, &resp); err != nil {
		return nil, err
	}

	entities := make([]domain.Entity, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		entities = append(entities, domain.Entity{Text: e.Text, Label: e.Label})
	}
	return entities, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func clampUnit(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
