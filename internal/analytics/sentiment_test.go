package analytics_test

import (
	"context"
	"testing"

	"backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distributionByCategory(result *models.SentimentAnalysisResult) map[string]models.SentimentBucket {
	buckets := map[string]models.SentimentBucket{}
	for _, b := range result.SentimentDistribution {
		buckets[b.Category] = b
	}
	return buckets
}

func TestSentimentThresholds(t *testing.T) {
	repo := &stubRepo{queries: queryRows("at positive", "at negative", "exactly zero", "just under", "just over")}
	scorer := &stubScorer{compounds: map[string]float64{
		"at positive":  0.05,
		"at negative":  -0.05,
		"exactly zero": 0.0,
		"just under":   0.049,
		"just over":    -0.049,
	}}
	svc := newService(repo, nil, scorer)

	result, err := svc.SentimentAnalysis(context.Background(), testFilters())
	require.NoError(t, err)

	buckets := distributionByCategory(result)
	assert.Equal(t, 1, buckets["positive"].Count)
	assert.Equal(t, 1, buckets["negative"].Count)
	assert.Equal(t, 3, buckets["neutral"].Count)
	assert.Contains(t, buckets["positive"].ExampleMessages, "at positive")
	assert.Contains(t, buckets["negative"].ExampleMessages, "at negative")
}

func TestSentimentEmptyInputSkipsScorer(t *testing.T) {
	repo := &stubRepo{queries: queryRows("", "  ", "great service")}
	scorer := &stubScorer{compounds: map[string]float64{"great service": 0.8}}
	svc := newService(repo, nil, scorer)

	result, err := svc.SentimentAnalysis(context.Background(), testFilters())
	require.NoError(t, err)

	// Blank messages get the fixed neutral score without a scorer call.
	assert.Equal(t, 1, scorer.calls)
	buckets := distributionByCategory(result)
	assert.Equal(t, 2, buckets["neutral"].Count)
	assert.Equal(t, 1, buckets["positive"].Count)
}

func TestSentimentStatistics(t *testing.T) {
	repo := &stubRepo{queries: queryRows("m1", "m2", "m3", "m4")}
	scorer := &stubScorer{compounds: map[string]float64{
		"m1": 0.9,
		"m2": -0.6,
		"m3": 0.1,
		"m4": -0.1,
	}}
	svc := newService(repo, nil, scorer)

	result, err := svc.SentimentAnalysis(context.Background(), testFilters())
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalMessages)
	assert.Equal(t, 0.075, result.AvgSentimentScore)

	require.NotEmpty(t, result.MostPositiveMessages)
	assert.Equal(t, "m1", result.MostPositiveMessages[0].Message)
	assert.Equal(t, 0.9, result.MostPositiveMessages[0].Score)
	require.NotEmpty(t, result.MostNegativeMessages)
	assert.Equal(t, "m2", result.MostNegativeMessages[0].Message)
	assert.Equal(t, -0.6, result.MostNegativeMessages[0].Score)

	sum := 0.0
	for _, bucket := range result.SentimentDistribution {
		sum += bucket.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.02)
}

func TestSentimentTiesKeepInputOrder(t *testing.T) {
	repo := &stubRepo{queries: queryRows("first", "second", "third")}
	scorer := &stubScorer{compounds: map[string]float64{
		"first":  0.5,
		"second": 0.5,
		"third":  0.5,
	}}
	svc := newService(repo, nil, scorer)

	result, err := svc.SentimentAnalysis(context.Background(), testFilters())
	require.NoError(t, err)

	require.Len(t, result.MostPositiveMessages, 3)
	assert.Equal(t, "first", result.MostPositiveMessages[0].Message)
	assert.Equal(t, "second", result.MostPositiveMessages[1].Message)
	assert.Equal(t, "third", result.MostPositiveMessages[2].Message)
}

func TestSentimentExampleCapAndAvgRounding(t *testing.T) {
	queries := make([]string, 7)
	compounds := map[string]float64{}
	for i := range queries {
		queries[i] = string(rune('a' + i))
		compounds[queries[i]] = 0.3
	}
	repo := &stubRepo{queries: queryRows(queries...)}
	scorer := &stubScorer{compounds: compounds}
	svc := newService(repo, nil, scorer)

	result, err := svc.SentimentAnalysis(context.Background(), testFilters())
	require.NoError(t, err)

	buckets := distributionByCategory(result)
	assert.Equal(t, 7, buckets["positive"].Count)
	assert.Len(t, buckets["positive"].ExampleMessages, 5)
	assert.Len(t, result.MostPositiveMessages, 5)
	assert.Len(t, result.MostNegativeMessages, 5)
	assert.Equal(t, 0.3, result.AvgSentimentScore)
}
