package score

import (
	"context"
	"log/slog"
	"math"

	"newslens/internal/aggregate"
	"newslens/internal/domain"
	"newslens/internal/ports"
)

// neutralScore substitutes for any component whose scorer failed, so a
// single broken collaborator cannot zero out the composite for the batch.
const neutralScore = 0.5

// EnsembleDeps wires the scoring collaborators into the ensemble.
type EnsembleDeps struct {
	Titles   ports.TitleScorer
	Entities ports.EntityExtractor
	Judge    ports.JudgmentClient
	// JudgmentCap bounds how many articles reach the judgment collaborator
	// when the combined batch text exceeds JudgmentCharCap.
	JudgmentCap     int
	JudgmentCharCap int
	Logger          *slog.Logger
}

// Ensemble combines the lexical classifier, the sequence classifier, and
// the language-model judgment into one composite credibility score per
// article, plus extracted entities.
type Ensemble struct {
	titles          ports.TitleScorer
	entities        ports.EntityExtractor
	judge           ports.JudgmentClient
	judgmentCap     int
	judgmentCharCap int
	logger          *slog.Logger
}

// NewEnsemble constructs the scorer.
func NewEnsemble(deps EnsembleDeps) *Ensemble {
	return &Ensemble{
		titles:          deps.Titles,
		entities:        deps.Entities,
		judge:           deps.Judge,
		judgmentCap:     deps.JudgmentCap,
		judgmentCharCap: deps.JudgmentCharCap,
		logger:          deps.Logger,
	}
}

// Score computes one bundle per article, positionally aligned with the
// input. The two classifier signals run as batch inference; the judgment
// signal is parsed per article from the report text. Every component
// degrades independently to the neutral default on failure.
func (e *Ensemble) Score(ctx context.Context, articles []domain.Article) []domain.ScoreBundle {
	if len(articles) == 0 {
		return nil
	}

	titles := make([]string, len(articles))
	for i, article := range articles {
		titles[i] = article.Title
	}

	lexical := e.batchScores(ctx, titles, "lexical", e.scoreLexical)
	sequence := e.batchScores(ctx, titles, "sequence", e.scoreSequence)
	judged := e.judgmentEntries(ctx, articles)

	bundles := make([]domain.ScoreBundle, 0, len(articles))
	for i, article := range articles {
		entry, ok := judged[aggregate.NormalizeTitle(article.Title)]
		if !ok {
			entry = ReportEntry{Probability: DefaultProbability, Credibility: DefaultCredibility}
		}
		judgment := float64(entry.Probability) / 100

		composite := (lexical[i] + sequence[i] + judgment) / 3

		bundles = append(bundles, domain.ScoreBundle{
			Article:        article,
			LexicalScore:   percent(lexical[i]),
			SequenceScore:  percent(sequence[i]),
			JudgmentScore:  percent(judgment),
			CompositeScore: percent(composite),
			Summary:        entry.Summary,
			Explanation:    entry.Explanation,
			Credibility:    entry.Credibility,
			Entities:       e.extractEntities(ctx, article),
		})
	}

	return bundles
}

func (e *Ensemble) scoreLexical(ctx context.Context, titles []string) ([]float64, error) {
	return e.titles.ScoreLexical(ctx, titles)
}

func (e *Ensemble) scoreSequence(ctx context.Context, titles []string) ([]float64, error) {
	return e.titles.ScoreSequence(ctx, titles)
}

func (e *Ensemble) batchScores(ctx context.Context, titles []string, kind string, call func(context.Context, []string) ([]float64, error)) []float64 {
	if e.titles == nil {
		return neutralSlice(len(titles))
	}

	scores, err := call(ctx, titles)
	if err != nil || len(scores) != len(titles) {
		e.warn("classifier failed, using neutral scores", "model", kind, "error", err)
		return neutralSlice(len(titles))
	}
	return scores
}

// judgmentEntries runs the judgment collaborator over a deterministically
// truncated batch and parses its report. Oversize batches are cut to the
// configured article cap before the call; articles outside the judged
// window simply fall back to defaults.
func (e *Ensemble) judgmentEntries(ctx context.Context, articles []domain.Article) map[string]ReportEntry {
	if e.judge == nil {
		return nil
	}

	batch := articles
	if e.judgmentCharCap > 0 && combinedLength(batch) > e.judgmentCharCap {
		limit := e.judgmentCap
		if limit <= 0 || limit > len(batch) {
			limit = len(batch)
		}
		batch = batch[:limit]
		e.debug("judgment batch truncated", "articles", len(batch))
	}

	report, err := e.judge.Analyze(ctx, batch)
	if err != nil {
		e.warn("judgment call failed, using default fields", "error", err)
		return nil
	}

	return ParseReport(report)
}

func (e *Ensemble) extractEntities(ctx context.Context, article domain.Article) []domain.Entity {
	if e.entities == nil {
		return nil
	}

	entities, err := e.entities.ExtractEntities(ctx, article.Title+". "+article.Description)
	if err != nil {
		e.warn("entity extraction failed", "title", article.Title, "error", err)
		return nil
	}
	return entities
}

// combinedLength estimates the rendered size of the judgment batch text,
// matching the "title - description (source)" layout the client sends.
func combinedLength(articles []domain.Article) int {
	total := 0
	for _, article := range articles {
		total += len(article.Title) + len(article.Description) + len(article.Source) + 9
	}
	return total
}

func neutralSlice(n int) []float64 {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = neutralScore
	}
	return scores
}

// percent scales a unit score to 0-100 rounded to two decimals.
func percent(unit float64) float64 {
	return math.Round(unit*10000) / 100
}

func (e *Ensemble) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

func (e *Ensemble) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
