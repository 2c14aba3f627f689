// Package features converts a video's metadata and snapshot series into the
// fixed-size feature vector consumed by growth prediction. Extraction is a
// pure function of its inputs: no I/O, no clock reads, no shared state.
package features

import (
	"time"

	"github.com/boramlab/vlens/internal/model"
)

// Placeholder values for signals the pipeline does not measure yet. Kept as
// named constants so the feature vector shape stays stable when real
// thumbnail analysis and category data arrive.
const (
	placeholderThumbnailQuality        = 0.5
	placeholderCategoryCompetitiveness = 0.5
)

// Extract builds the feature vector for one video. The snapshot series is
// sorted first; a nil channel aggregate falls back to
// model.DefaultChannelStats rather than failing. Zero- and one-snapshot
// inputs yield zero velocity and acceleration.
func Extract(meta model.VideoMetadata, series model.Series, channel *model.ChannelStats) model.FeatureVector {
	sorted := series.Sorted()

	ch := model.DefaultChannelStats
	if channel != nil {
		ch = *channel
	}

	fv := model.FeatureVector{
		InitialVelocity:         initialVelocity(sorted),
		Acceleration:            meanAcceleration(sorted),
		EngagementRate:          engagementRate(sorted),
		TitleLength:             len([]rune(meta.Title)),
		DescriptionLength:       len([]rune(meta.Description)),
		TagCount:                len(meta.Tags),
		ChannelSubscribers:      ch.SubscriberCount,
		ChannelAvgViews:         ch.AvgViews,
		ThumbnailQuality:        placeholderThumbnailQuality,
		CategoryCompetitiveness: placeholderCategoryCompetitiveness,
	}

	if !meta.PublishedAt.IsZero() {
		fv.PublishedHour = meta.PublishedAt.Hour()
		wd := meta.PublishedAt.Weekday()
		fv.IsWeekend = wd == time.Saturday || wd == time.Sunday
	}

	return fv
}

// initialVelocity is the views-per-hour of the earliest snapshot, or zero
// when the series is empty or the first rate cannot be derived.
func initialVelocity(sorted model.Series) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if vph := sorted[0].ViewsPerHour; vph != nil {
		return *vph
	}
	// No upstream rate on the first snapshot: the first derivable rate is
	// between snapshots 0 and 1.
	v := sorted.Velocities()
	if len(v) > 1 {
		return v[1]
	}
	return 0
}

// meanAcceleration averages consecutive velocity deltas across the series.
func meanAcceleration(sorted model.Series) float64 {
	v := sorted.Velocities()
	if len(v) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(v); i++ {
		sum += v[i] - v[i-1]
	}
	return sum / float64(len(v)-1)
}

// engagementRate is (likes+comments)/views at the latest snapshot, with a
// max(1, views) guard so a zero-view video scores zero instead of dividing
// by zero.
func engagementRate(sorted model.Series) float64 {
	latest, ok := sorted.Latest()
	if !ok {
		return 0
	}
	views := latest.ViewCount
	if views < 1 {
		views = 1
	}
	return float64(latest.LikeCount+latest.CommentCount) / float64(views)
}
