package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type classifyRequest struct {
	Model  string   `json:"model"`
	Titles []string `json:"titles"`
}

func TestScoreLexical(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotAuth string
	var gotBody classifyRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"scores":[0.8,1.7,-0.2]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	scores, err := client.ScoreLexical(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("ScoreLexical error: %v", err)
	}

	if gotPath != "/classify" {
		t.Fatalf("path = %s, want /classify", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if gotBody.Model != "lexical" || len(gotBody.Titles) != 3 {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}

	// Out-of-range scores clamp into the unit interval.
	if scores[0] != 0.8 || scores[1] != 1 || scores[2] != 0 {
		t.Fatalf("unexpected scores: %v", scores)
	}
}

func TestScoreSequenceModelName(t *testing.T) {
	t.Parallel()

	var gotBody classifyRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"scores":[0.5]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.ScoreSequence(context.Background(), []string{"a"}); err != nil {
		t.Fatalf("ScoreSequence error: %v", err)
	}
	if gotBody.Model != "sequence" {
		t.Fatalf("model = %q, want sequence", gotBody.Model)
	}
}

func TestScoreTitlesCountMismatch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"scores":[0.5]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.ScoreLexical(context.Background(), []string{"a", "b"})
	if err == nil {
		t.Fatal("expected count mismatch error")
	}
	if !strings.Contains(err.Error(), "1 scores for 2 titles") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScoreTitlesEmptyBatchSkipsCall(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty batch")
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	scores, err := client.ScoreLexical(context.Background(), nil)
	if err != nil {
		t.Fatalf("ScoreLexical error: %v", err)
	}
	if scores != nil {
		t.Fatalf("expected nil scores, got %v", scores)
	}
}

func TestScoreTitlesServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.ScoreLexical(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestExtractEntities(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"entities":[{"text":"Reuters","label":"ORG"},{"text":"Delhi","label":"GPE"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	entities, err := client.ExtractEntities(context.Background(), "Reuters reported from Delhi")
	if err != nil {
		t.Fatalf("ExtractEntities error: %v", err)
	}

	if gotPath != "/entities" {
		t.Fatalf("path = %s, want /entities", gotPath)
	}
	if len(entities) != 2 || entities[0].Text != "Reuters" || entities[1].Label != "GPE" {
		t.Fatalf("unexpected entities: %+v", entities)
	}
}
