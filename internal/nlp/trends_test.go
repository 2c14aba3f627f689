package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boramlab/vlens/internal/model"
)

func entitiesAt(videoID string, published time.Time, sentiment model.Sentiment, keywords ...model.Keyword) VideoEntities {
	return VideoEntities{
		Meta: model.VideoMetadata{VideoID: videoID, PublishedAt: published},
		Extraction: model.EntityExtraction{
			VideoID:   videoID,
			Keywords:  keywords,
			Sentiment: sentiment,
		},
	}
}

func TestAnalyzeKeywordTrendsAggregation(t *testing.T) {
	now := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	window := 7 * 24 * time.Hour

	videos := []VideoEntities{
		entitiesAt("v1", now.Add(-6*24*time.Hour), model.SentimentPositive, model.Keyword{Term: "갤럭시", Count: 2}),
		entitiesAt("v2", now.Add(-2*24*time.Hour), model.SentimentPositive, model.Keyword{Term: "갤럭시", Count: 3}),
		entitiesAt("v3", now.Add(-24*time.Hour), model.SentimentNegative,
			model.Keyword{Term: "갤럭시", Count: 1}, model.Keyword{Term: "unboxing", Count: 1}),
	}

	trends := AnalyzeKeywordTrends(videos, window, now)
	require.Len(t, trends, 2)

	// Sorted by occurrences descending.
	galaxy := trends[0]
	assert.Equal(t, "갤럭시", galaxy.Keyword)
	assert.Equal(t, 6, galaxy.Occurrences)
	assert.Equal(t, 3, galaxy.VideoCount)
	// Span v1..v3 is 5 days: 6 occurrences / 5 days.
	assert.InDelta(t, 1.2, galaxy.GrowthRate, 1e-9)
	// Early half holds 2 occurrences, late half 4: momentum is positive.
	assert.Equal(t, model.DirectionRising, galaxy.Direction)
	assert.Equal(t, model.CompetitionLow, galaxy.Competition)
	// Two positive votes against one negative.
	assert.Equal(t, model.SentimentPositive, galaxy.Sentiment)
	assert.Equal(t, now.Add(-6*24*time.Hour), galaxy.FirstSeen)
	assert.Equal(t, now.Add(-24*time.Hour), galaxy.LastSeen)

	assert.Equal(t, "unboxing", trends[1].Keyword)
	assert.Equal(t, 1, trends[1].VideoCount)
}

func TestAnalyzeKeywordTrendsWindowFilter(t *testing.T) {
	now := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	window := 48 * time.Hour

	videos := []VideoEntities{
		entitiesAt("old", now.Add(-5*24*time.Hour), model.SentimentNeutral, model.Keyword{Term: "stale", Count: 9}),
		entitiesAt("future", now.Add(time.Hour), model.SentimentNeutral, model.Keyword{Term: "early", Count: 9}),
		entitiesAt("fresh", now.Add(-time.Hour), model.SentimentNeutral, model.Keyword{Term: "fresh", Count: 1}),
	}

	trends := AnalyzeKeywordTrends(videos, window, now)
	require.Len(t, trends, 1)
	assert.Equal(t, "fresh", trends[0].Keyword)
}

func TestAnalyzeKeywordTrendsDeclining(t *testing.T) {
	now := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	window := 6 * 24 * time.Hour

	videos := []VideoEntities{
		entitiesAt("v1", now.Add(-5*24*time.Hour), model.SentimentNeutral, model.Keyword{Term: "fad", Count: 8}),
		entitiesAt("v2", now.Add(-24*time.Hour), model.SentimentNeutral, model.Keyword{Term: "fad", Count: 1}),
	}

	trends := AnalyzeKeywordTrends(videos, window, now)
	require.Len(t, trends, 1)
	assert.Equal(t, model.DirectionDeclining, trends[0].Direction)
}

func TestAnalyzeKeywordTrendsStable(t *testing.T) {
	now := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	window := 6 * 24 * time.Hour

	videos := []VideoEntities{
		entitiesAt("v1", now.Add(-5*24*time.Hour), model.SentimentNeutral, model.Keyword{Term: "even", Count: 2}),
		entitiesAt("v2", now.Add(-24*time.Hour), model.SentimentNeutral, model.Keyword{Term: "even", Count: 2}),
	}

	trends := AnalyzeKeywordTrends(videos, window, now)
	require.Len(t, trends, 1)
	assert.Equal(t, model.DirectionStable, trends[0].Direction)
}

func TestCompetitionTiers(t *testing.T) {
	assert.Equal(t, model.CompetitionLow, competitionTier(10))
	assert.Equal(t, model.CompetitionMedium, competitionTier(11))
	assert.Equal(t, model.CompetitionMedium, competitionTier(20))
	assert.Equal(t, model.CompetitionHigh, competitionTier(21))
}

func TestAnalyzeKeywordTrendsEmpty(t *testing.T) {
	now := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, AnalyzeKeywordTrends(nil, 24*time.Hour, now))
}
