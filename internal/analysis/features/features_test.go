package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/boramlab/vlens/internal/model"
)

var t0 = time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC) // a Monday

func snap(offset time.Duration, views, likes, comments int64) model.VideoSnapshot {
	return model.VideoSnapshot{
		VideoID:      "v1",
		CapturedAt:   t0.Add(offset),
		ViewCount:    views,
		LikeCount:    likes,
		CommentCount: comments,
	}
}

func TestExtractMetadataSignals(t *testing.T) {
	meta := model.VideoMetadata{
		VideoID:     "v1",
		Title:       "갤럭시 리뷰", // rune length, not byte length
		Description: "short",
		Tags:        []string{"tech", "review"},
		PublishedAt: t0,
	}

	fv := Extract(meta, nil, nil)

	assert.Equal(t, 6, fv.TitleLength)
	assert.Equal(t, 5, fv.DescriptionLength)
	assert.Equal(t, 2, fv.TagCount)
	assert.Equal(t, 14, fv.PublishedHour)
	assert.False(t, fv.IsWeekend)
}

func TestExtractWeekend(t *testing.T) {
	saturday := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)
	fv := Extract(model.VideoMetadata{PublishedAt: saturday}, nil, nil)
	assert.True(t, fv.IsWeekend)
}

func TestExtractEmptySeries(t *testing.T) {
	fv := Extract(model.VideoMetadata{VideoID: "v1"}, nil, nil)

	assert.Zero(t, fv.InitialVelocity)
	assert.Zero(t, fv.Acceleration)
	assert.Zero(t, fv.EngagementRate)
	assert.Equal(t, 0.5, fv.ThumbnailQuality)
	assert.Equal(t, 0.5, fv.CategoryCompetitiveness)
}

func TestExtractChannelFallback(t *testing.T) {
	fv := Extract(model.VideoMetadata{}, nil, nil)
	assert.Equal(t, model.DefaultChannelStats.SubscriberCount, fv.ChannelSubscribers)
	assert.Equal(t, model.DefaultChannelStats.AvgViews, fv.ChannelAvgViews)

	ch := &model.ChannelStats{SubscriberCount: 500000, AvgViews: 20000}
	fv = Extract(model.VideoMetadata{}, nil, ch)
	assert.Equal(t, int64(500000), fv.ChannelSubscribers)
	assert.Equal(t, 20000.0, fv.ChannelAvgViews)
}

func TestExtractVelocityAndAcceleration(t *testing.T) {
	series := model.Series{
		snap(0, 100, 0, 0),
		snap(time.Hour, 200, 0, 0),   // 100/h
		snap(2*time.Hour, 500, 0, 0), // 300/h
		snap(3*time.Hour, 900, 0, 0), // 400/h
	}

	fv := Extract(model.VideoMetadata{}, series, nil)

	// No upstream rate on the first snapshot: the first derivable rate is
	// between snapshots 0 and 1.
	assert.InDelta(t, 100.0, fv.InitialVelocity, 1e-9)
	// Velocity sequence 0, 100, 300, 400: mean consecutive delta 400/3.
	assert.InDelta(t, 400.0/3, fv.Acceleration, 1e-9)
}

func TestExtractPrecomputedVelocityWins(t *testing.T) {
	vph := 250.0
	series := model.Series{
		{VideoID: "v1", CapturedAt: t0, ViewCount: 100, ViewsPerHour: &vph},
		snap(time.Hour, 200, 0, 0),
	}

	fv := Extract(model.VideoMetadata{}, series, nil)
	assert.Equal(t, 250.0, fv.InitialVelocity)
}

func TestExtractEngagementRate(t *testing.T) {
	series := model.Series{
		snap(0, 100, 1, 1),
		snap(time.Hour, 1000, 80, 20),
	}

	fv := Extract(model.VideoMetadata{}, series, nil)
	assert.InDelta(t, 0.1, fv.EngagementRate, 1e-9)
}

func TestExtractEngagementZeroViews(t *testing.T) {
	// A zero-view snapshot must not divide by zero.
	series := model.Series{snap(0, 0, 3, 2)}
	fv := Extract(model.VideoMetadata{}, series, nil)
	assert.InDelta(t, 5.0, fv.EngagementRate, 1e-9)
}

func TestExtractSingleSnapshot(t *testing.T) {
	series := model.Series{snap(0, 400, 10, 2)}
	fv := Extract(model.VideoMetadata{}, series, nil)

	assert.Zero(t, fv.InitialVelocity)
	assert.Zero(t, fv.Acceleration)
	assert.InDelta(t, 0.03, fv.EngagementRate, 1e-9)
}
