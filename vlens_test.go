package vlens_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vlens "github.com/boramlab/vlens"
)

func hourlySnapshots(videoID string, t0 time.Time, values ...int64) []vlens.Snapshot {
	out := make([]vlens.Snapshot, len(values))
	for i, v := range values {
		out[i] = vlens.Snapshot{
			VideoID:      videoID,
			CapturedAt:   t0.Add(time.Duration(i) * time.Hour),
			ViewCount:    v,
			LikeCount:    v / 10,
			CommentCount: v / 50,
		}
	}
	return out
}

func TestDetectTrend(t *testing.T) {
	engine := vlens.New()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	result := engine.DetectTrend(hourlySnapshots("vid-1", t0, 100, 200, 300, 400), vlens.MetricViews)
	assert.Equal(t, vlens.TrendRising, result.Type)
	assert.InDelta(t, 100.0, result.Slope, 1e-9)
	assert.Greater(t, result.Confidence, 0.9)
	assert.Greater(t, result.Prediction.NextValue, 400.0)
}

func TestDetectTrendCustomThresholds(t *testing.T) {
	// A slope of 100/h reads as stable when the stable band is widened
	// past it.
	engine := vlens.New(vlens.WithTrendThresholds(200, 0.1))
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	result := engine.DetectTrend(hourlySnapshots("vid-1", t0, 100, 200, 300, 400), vlens.MetricViews)
	assert.Equal(t, vlens.TrendStable, result.Type)
}

func TestFindViralMoments(t *testing.T) {
	engine := vlens.New()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	moments := engine.FindViralMoments(hourlySnapshots("vid-1", t0, 100, 110, 300, 900))
	require.Len(t, moments, 1)
	assert.Equal(t, "vid-1", moments[0].VideoID)
	assert.Equal(t, 600.0, moments[0].PeakHourlyGrowth)
	assert.Equal(t, int64(900), moments[0].ViewCount)
}

func TestExtractEntities(t *testing.T) {
	engine := vlens.New()

	entities := engine.ExtractEntities(vlens.Video{
		VideoID:     "vid-1",
		Title:       "삼성 갤럭시 언박싱 너무 좋아요!",
		Description: "새 스마트폰 첫인상 리뷰",
		Tags:        []string{"갤럭시", "리뷰"},
		PublishedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, vlens.LanguageKorean, entities.Language)
	assert.Contains(t, entities.Brands, "삼성")
	assert.Contains(t, entities.Brands, "갤럭시")
	assert.Equal(t, vlens.SentimentPositive, entities.Sentiment)
	assert.Contains(t, entities.Topics, "Technology")
}

func TestDetectLanguage(t *testing.T) {
	engine := vlens.New()

	assert.Equal(t, vlens.LanguageKorean, engine.DetectLanguage("갤럭시 언박싱 리뷰"))
	assert.Equal(t, vlens.LanguageEnglish, engine.DetectLanguage("galaxy unboxing review"))
	assert.Equal(t, vlens.LanguageMixed, engine.DetectLanguage("갤럭시 스마트폰 리뷰 galaxy review"))
}

func TestPredictPerformance(t *testing.T) {
	engine := vlens.New()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	video := vlens.Video{VideoID: "vid-1", Title: "갤럭시 리뷰", PublishedAt: t0.Add(-24 * time.Hour)}
	pred := engine.PredictPerformance(video, hourlySnapshots("vid-1", t0, 100, 200, 300, 400), 3, nil)

	assert.Equal(t, "vid-1", pred.VideoID)
	assert.Equal(t, 3, pred.HorizonDays)
	assert.NotEmpty(t, pred.GrowthTrajectory)
	assert.GreaterOrEqual(t, pred.PredictedViews, 0.0)
	assert.GreaterOrEqual(t, pred.ViralProbability, 0.0)
	assert.LessOrEqual(t, pred.ViralProbability, 1.0)
}

func TestBatchPredictPreservesOrder(t *testing.T) {
	engine := vlens.New()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	inputs := make([]vlens.PredictionInput, 10)
	for i := range inputs {
		id := fmt.Sprintf("video-%02d", i)
		inputs[i] = vlens.PredictionInput{
			Video:     vlens.Video{VideoID: id, PublishedAt: t0},
			Snapshots: hourlySnapshots(id, t0, 100, 200, 300, 400),
		}
	}

	preds := engine.BatchPredict(context.Background(), inputs, 0)
	require.Len(t, preds, len(inputs))
	for i, p := range preds {
		assert.Equal(t, inputs[i].Video.VideoID, p.VideoID)
	}
}

func TestFindViralCandidates(t *testing.T) {
	engine := vlens.New()

	preds := []vlens.Prediction{
		{VideoID: "low", ViralProbability: 0.2},
		{VideoID: "high", ViralProbability: 0.9},
		{VideoID: "mid", ViralProbability: 0.6},
	}
	candidates := engine.FindViralCandidates(preds, 10)
	require.Len(t, candidates, 2)
	assert.Equal(t, "high", candidates[0].VideoID)
	assert.Equal(t, "mid", candidates[1].VideoID)
}

func TestAnalyzeKeywordTrends(t *testing.T) {
	engine := vlens.New()
	now := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	videos := []vlens.VideoWithEntities{
		{
			Video: vlens.Video{VideoID: "a", PublishedAt: now.Add(-6 * 24 * time.Hour)},
			Entities: vlens.Entities{
				Keywords:  []vlens.Keyword{{Term: "갤럭시", Count: 2}},
				Sentiment: vlens.SentimentPositive,
			},
		},
		{
			Video: vlens.Video{VideoID: "b", PublishedAt: now.Add(-24 * time.Hour)},
			Entities: vlens.Entities{
				Keywords:  []vlens.Keyword{{Term: "갤럭시", Count: 3}},
				Sentiment: vlens.SentimentPositive,
			},
		},
	}

	trends := engine.AnalyzeKeywordTrends(videos, 7*24*time.Hour, now)
	require.Len(t, trends, 1)
	assert.Equal(t, "갤럭시", trends[0].Keyword)
	assert.Equal(t, 5, trends[0].Occurrences)
	assert.Equal(t, 2, trends[0].VideoCount)
}

func TestAnalyzeVideo(t *testing.T) {
	engine := vlens.New(vlens.WithTopKeywords(5), vlens.WithPredictionHorizon(5))
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	video := vlens.Video{
		VideoID:     "vid-1",
		Title:       "갤럭시 언박싱",
		PublishedAt: t0.Add(-12 * time.Hour),
	}
	analysis := engine.AnalyzeVideo(video, hourlySnapshots("vid-1", t0, 100, 110, 300, 900), nil)

	assert.Equal(t, "vid-1", analysis.VideoID)
	assert.NotEmpty(t, analysis.Trend.Type)
	assert.NotEmpty(t, analysis.Moments)
	assert.Equal(t, 5, analysis.Prediction.HorizonDays)
}

func TestExtractFeatures(t *testing.T) {
	engine := vlens.New()
	t0 := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC) // Monday

	video := vlens.Video{
		VideoID:     "vid-1",
		Title:       "갤럭시 리뷰",
		Tags:        []string{"갤럭시", "리뷰"},
		PublishedAt: t0,
	}
	features := engine.ExtractFeatures(video, hourlySnapshots("vid-1", t0, 100, 200), nil)

	assert.Equal(t, 6, features.TitleLength)
	assert.Equal(t, 2, features.TagCount)
	assert.Equal(t, 14, features.PublishedHour)
	assert.False(t, features.IsWeekend)
	assert.Equal(t, int64(1000), features.ChannelSubscribers)
}

func TestAnalyzePatterns(t *testing.T) {
	engine := vlens.New()
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	snaps := make([]vlens.Snapshot, 8)
	for i := range snaps {
		snaps[i] = vlens.Snapshot{
			VideoID:    "vid-1",
			CapturedAt: t0.Add(time.Duration(i) * time.Hour),
			ViewCount:  int64(100 * (i + 1)),
		}
	}

	patterns := engine.AnalyzePatterns(snaps, vlens.MetricViews)
	require.NotEmpty(t, patterns)
	assert.Equal(t, vlens.PatternTrend, patterns[0].Type)
}
