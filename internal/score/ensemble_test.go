package score

import (
	"context"
	"fmt"
	"math"
	"testing"

	"newslens/internal/domain"
)

type stubTitleScorer struct {
	lexical  []float64
	sequence []float64
	err      error
}

func (s *stubTitleScorer) ScoreLexical(ctx context.Context, titles []string) ([]float64, error) {
	return s.lexical, s.err
}

func (s *stubTitleScorer) ScoreSequence(ctx context.Context, titles []string) ([]float64, error) {
	return s.sequence, s.err
}

type stubJudge struct {
	report string
	err    error
	calls  int
	last   []domain.Article
}

func (s *stubJudge) Analyze(ctx context.Context, articles []domain.Article) (string, error) {
	s.calls++
	s.last = articles
	return s.report, s.err
}

type stubEntities struct {
	entities []domain.Entity
	err      error
}

func (s *stubEntities) ExtractEntities(ctx context.Context, text string) ([]domain.Entity, error) {
	return s.entities, s.err
}

func testArticles(n int) []domain.Article {
	articles := make([]domain.Article, 0, n)
	for i := 0; i < n; i++ {
		articles = append(articles, domain.Article{
			Title:       fmt.Sprintf("Article %d", i),
			Description: "description",
			Source:      "Wire",
		})
	}
	return articles
}

func TestEnsembleCompositeIsMeanOfComponents(t *testing.T) {
	t.Parallel()

	judge := &stubJudge{report: `### Title: Article 0
- Summary: fine
- Real vs Fake Probability: 90%
- Explanation: fine
- Source Credibility: 9/10
`}

	ensemble := NewEnsemble(EnsembleDeps{
		Titles:   &stubTitleScorer{lexical: []float64{0.6}, sequence: []float64{0.3}},
		Entities: &stubEntities{entities: []domain.Entity{{Text: "Wire", Label: "ORG"}}},
		Judge:    judge,
	})

	bundles := ensemble.Score(context.Background(), testArticles(1))
	if len(bundles) != 1 {
		t.Fatalf("expected 1 bundle, got %d", len(bundles))
	}

	bundle := bundles[0]
	if bundle.LexicalScore != 60 || bundle.SequenceScore != 30 || bundle.JudgmentScore != 90 {
		t.Fatalf("unexpected component scores: %+v", bundle)
	}

	want := math.Round((0.6+0.3+0.9)/3*10000) / 100
	if bundle.CompositeScore != want {
		t.Fatalf("composite = %v, want %v", bundle.CompositeScore, want)
	}
	if bundle.Credibility != 9 {
		t.Fatalf("credibility = %d, want 9", bundle.Credibility)
	}
	if len(bundle.Entities) != 1 {
		t.Fatalf("expected entities to be attached: %+v", bundle.Entities)
	}
}

func TestEnsembleComponentFailureFallsBackToNeutral(t *testing.T) {
	t.Parallel()

	ensemble := NewEnsemble(EnsembleDeps{
		Titles: &stubTitleScorer{err: fmt.Errorf("inference down")},
		Judge:  &stubJudge{err: fmt.Errorf("judge down")},
	})

	bundles := ensemble.Score(context.Background(), testArticles(2))
	for _, bundle := range bundles {
		if bundle.LexicalScore != 50 || bundle.SequenceScore != 50 || bundle.JudgmentScore != 50 {
			t.Fatalf("expected neutral components, got %+v", bundle)
		}
		if bundle.CompositeScore != 50 {
			t.Fatalf("composite = %v, want 50", bundle.CompositeScore)
		}
		if bundle.Credibility != DefaultCredibility {
			t.Fatalf("credibility = %d, want default", bundle.Credibility)
		}
	}
}

func TestEnsembleCompositeInRange(t *testing.T) {
	t.Parallel()

	ensemble := NewEnsemble(EnsembleDeps{
		Titles: &stubTitleScorer{lexical: []float64{0, 1, 0.5}, sequence: []float64{1, 0, 0.5}},
	})

	for _, bundle := range ensemble.Score(context.Background(), testArticles(3)) {
		if bundle.CompositeScore < 0 || bundle.CompositeScore > 100 {
			t.Fatalf("composite out of range: %v", bundle.CompositeScore)
		}
	}
}

func TestEnsembleJudgmentBatchTruncation(t *testing.T) {
	t.Parallel()

	judge := &stubJudge{report: "no usable blocks"}
	ensemble := NewEnsemble(EnsembleDeps{
		Judge:           judge,
		JudgmentCap:     2,
		JudgmentCharCap: 50,
	})

	bundles := ensemble.Score(context.Background(), testArticles(6))
	if judge.calls != 1 {
		t.Fatalf("judge called %d times, want 1", judge.calls)
	}
	if len(judge.last) != 2 {
		t.Fatalf("judgment batch = %d articles, want 2", len(judge.last))
	}
	// Every article still gets a bundle, judged or not.
	if len(bundles) != 6 {
		t.Fatalf("expected 6 bundles, got %d", len(bundles))
	}
}

func TestEnsembleScoreCountMismatchFallsBackToNeutral(t *testing.T) {
	t.Parallel()

	ensemble := NewEnsemble(EnsembleDeps{
		Titles: &stubTitleScorer{lexical: []float64{0.9}, sequence: []float64{0.9}},
	})

	bundles := ensemble.Score(context.Background(), testArticles(3))
	for _, bundle := range bundles {
		if bundle.LexicalScore != 50 {
			t.Fatalf("mismatched batch must degrade to neutral, got %+v", bundle)
		}
	}
}
