package analytics

import (
	"context"
	"sort"
	"strings"

	"backend/internal/models"

	"github.com/jonreiter/govader"
)

const maxExamplesPerSentiment = 5

// Sentiment category thresholds on the compound score.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// SentimentScores is the 4-component output of the lexicon scorer.
// Compound is normalized to [-1, 1].
type SentimentScores struct {
	Negative float64
	Neutral  float64
	Positive float64
	Compound float64
}

// Scorer is the lexicon-based sentiment scorer. It is synchronous, local
// and assumed non-failing.
type Scorer interface {
	Score(text string) SentimentScores
}

// vaderScorer wraps the VADER analyzer behind the Scorer contract.
type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates the VADER-backed lexicon scorer.
func NewVaderScorer() Scorer {
	return &vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *vaderScorer) Score(text string) SentimentScores {
	s := v.analyzer.PolarityScores(text)
	return SentimentScores{
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Positive: s.Positive,
		Compound: s.Compound,
	}
}

// categorizeSentiment maps a compound score to its category:
// >= 0.05 positive, <= -0.05 negative, neutral between.
func categorizeSentiment(compound float64) string {
	switch {
	case compound >= positiveThreshold:
		return "positive"
	case compound <= negativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// scoreBatch scores every message. Empty or whitespace-only messages get a
// fixed neutral score without invoking the scorer.
func (s *analyticsService) scoreBatch(messages []string) []SentimentScores {
	scores := make([]SentimentScores, len(messages))
	for i, message := range messages {
		if strings.TrimSpace(message) == "" {
			scores[i] = SentimentScores{Neutral: 1.0}
			continue
		}
		scores[i] = s.scorer.Score(message)
	}
	return scores
}

// SentimentAnalysis is KPI #13: per-category distribution with examples,
// batch mean compound score and the extremes at both ends.
func (s *analyticsService) SentimentAnalysis(ctx context.Context, f *models.AnalyticsFilters) (*models.SentimentAnalysisResult, error) {
	rows, err := s.repo.UserQueries(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &models.SentimentAnalysisResult{
		SentimentDistribution: []models.SentimentBucket{},
		MostPositiveMessages:  []models.ScoredMessage{},
		MostNegativeMessages:  []models.ScoredMessage{},
		FiltersApplied:        f.Applied(),
	}
	if len(rows) == 0 {
		return result, nil
	}

	messages := make([]string, len(rows))
	for i, row := range rows {
		messages[i] = row.UserQuery
	}
	scores := s.scoreBatch(messages)

	counts := map[string]int{}
	examples := map[string][]string{}
	scored := make([]models.ScoredMessage, len(messages))
	sumCompound := 0.0

	for i, message := range messages {
		compound := scores[i].Compound
		sumCompound += compound

		category := categorizeSentiment(compound)
		counts[category]++
		if len(examples[category]) < maxExamplesPerSentiment {
			examples[category] = append(examples[category], message)
		}

		scored[i] = models.ScoredMessage{Message: message, Score: compound}
	}

	// Stable descending sort keeps input order for equal compounds. The
	// negative extremes are the tail of the same ordering, most negative
	// first.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	topN := maxExamplesPerSentiment
	if topN > len(scored) {
		topN = len(scored)
	}
	for _, m := range scored[:topN] {
		result.MostPositiveMessages = append(result.MostPositiveMessages, models.ScoredMessage{
			Message: m.Message,
			Score:   round3(m.Score),
		})
	}
	tail := scored[len(scored)-topN:]
	for i := len(tail) - 1; i >= 0; i-- {
		result.MostNegativeMessages = append(result.MostNegativeMessages, models.ScoredMessage{
			Message: tail[i].Message,
			Score:   round3(tail[i].Score),
		})
	}

	total := len(messages)
	for _, category := range []string{"positive", "neutral", "negative"} {
		sampled := examples[category]
		if sampled == nil {
			sampled = []string{}
		}
		result.SentimentDistribution = append(result.SentimentDistribution, models.SentimentBucket{
			Category:        category,
			Count:           counts[category],
			Percentage:      percentage(counts[category], total),
			ExampleMessages: sampled,
		})
	}

	result.TotalMessages = total
	result.AvgSentimentScore = round3(sumCompound / float64(total))
	return result, nil
}
