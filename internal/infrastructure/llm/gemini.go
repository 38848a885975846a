package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"newslens/internal/config"
	"newslens/internal/domain"
	"newslens/internal/ports"
)

// analysisPrompt instructs the model to emit the block grammar consumed by
// the report parser. Field names and layout are load-bearing.
const analysisPrompt = `You are an AI trained to detect fake news.

Given the following aggregated news headlines and descriptions, analyze each one and respond with:
1. A short summary of what it says.
2. A real-vs-fake probability score (0-100%% real).
3. A short explanation of why you gave that score.
4. A credibility score for the source (0-10).

News Articles:
%s

Format your output like this:

### Title: [TITLE]
- Summary: ...
- Real vs Fake Probability: 85%%
- Explanation: ...
- Source Credibility: 8/10

Repeat for each article.`

// GeminiClient implements ports.JudgmentClient against the Gemini
// generateContent API.
type GeminiClient struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.JudgmentClient = (*GeminiClient)(nil)

// NewGeminiClient builds a client from configuration.
func NewGeminiClient(cfg config.JudgmentConfig) *GeminiClient {
	return &GeminiClient{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Analyze submits the article batch and returns the model's raw text report.
// The response is untrusted, partially structured input; parsing and default
// handling happen downstream.
func (c *GeminiClient) Analyze(ctx context.Context, articles []domain.Article) (string, error) {
	if c == nil {
		return "", fmt.Errorf("gemini client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("gemini client misconfigured")
	}
	if len(articles) == 0 {
		return "", fmt.Errorf("empty article batch")
	}

	prompt := fmt.Sprintf(analysisPrompt, CombineArticles(articles))

	body, err := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature": 0.3,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", strings.TrimSuffix(c.endpoint, "/"), c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send analysis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("gemini error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// CombineArticles renders the batch in the "title - description (source)"
// layout the prompt expects. Exported so the scorer can budget the combined
// length before issuing the call.
func CombineArticles(articles []domain.Article) string {
	blocks := make([]string, 0, len(articles))
	for _, article := range articles {
		blocks = append(blocks, fmt.Sprintf("%s - %s (%s)", article.Title, article.Description, article.Source))
	}
	return strings.Join(blocks, "\n\n")
}
