// Package model defines the analytics engine's data model: snapshot series,
// video metadata, derived feature vectors, and the value objects produced by
// the analysis packages. Model types carry no behavior beyond series hygiene
// (sorting, delta clamping); all scoring lives under internal/analysis.
package model

import (
	"sort"
	"time"
)

// VideoSnapshot is one measurement of a video's public counters at a point in
// time. Snapshots are immutable and append-only; the engine only reads them.
type VideoSnapshot struct {
	VideoID      string    `json:"video_id"`
	CapturedAt   time.Time `json:"captured_at"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`

	// ViewsPerHour may be precomputed upstream. Nil means "derive from
	// consecutive snapshots" (see Series.Velocities).
	ViewsPerHour *float64 `json:"views_per_hour,omitempty"`
}

// Series is an ordered snapshot sequence for a single video.
type Series []VideoSnapshot

// Sorted returns the series ordered ascending by CapturedAt. The receiver is
// never mutated: callers hand in data they may reuse, and every analysis entry
// point sorts its input through this method.
func (s Series) Sorted() Series {
	if s.isSorted() {
		return s
	}
	out := make(Series, len(s))
	copy(out, s)
	sort.Slice(out, func(i, j int) bool { return out[i].CapturedAt.Before(out[j].CapturedAt) })
	return out
}

func (s Series) isSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i].CapturedAt.Before(s[i-1].CapturedAt) {
			return false
		}
	}
	return true
}

// Latest returns the last snapshot of the sorted series and false when empty.
func (s Series) Latest() (VideoSnapshot, bool) {
	if len(s) == 0 {
		return VideoSnapshot{}, false
	}
	sorted := s.Sorted()
	return sorted[len(sorted)-1], true
}

// Velocities returns the per-snapshot views-per-hour sequence for a sorted
// series. An upstream-supplied ViewsPerHour wins; otherwise the rate is
// derived from the previous snapshot. Counter decreases (data-correction
// events upstream) clamp to zero growth rather than going negative, and a
// zero time delta yields zero rather than dividing by it.
func (s Series) Velocities() []float64 {
	out := make([]float64, len(s))
	for i, snap := range s {
		if snap.ViewsPerHour != nil {
			out[i] = *snap.ViewsPerHour
			continue
		}
		if i == 0 {
			continue
		}
		hours := snap.CapturedAt.Sub(s[i-1].CapturedAt).Hours()
		if hours <= 0 {
			continue
		}
		delta := snap.ViewCount - s[i-1].ViewCount
		if delta < 0 {
			delta = 0
		}
		out[i] = float64(delta) / hours
	}
	return out
}

// MetricValue extracts one counter from a snapshot.
func (s VideoSnapshot) MetricValue(m Metric) float64 {
	switch m {
	case MetricLikes:
		return float64(s.LikeCount)
	case MetricComments:
		return float64(s.CommentCount)
	default:
		return float64(s.ViewCount)
	}
}

// Metric names a snapshot counter that trend and pattern analysis can run over.
type Metric string

const (
	MetricViews    Metric = "views"
	MetricLikes    Metric = "likes"
	MetricComments Metric = "comments"
)

// TimePoint is a (timestamp, value) pair, the input unit of trend detection.
type TimePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// MetricSeries projects one counter out of a snapshot series, sorted ascending.
func (s Series) MetricSeries(m Metric) []TimePoint {
	sorted := s.Sorted()
	out := make([]TimePoint, len(sorted))
	for i, snap := range sorted {
		out[i] = TimePoint{Timestamp: snap.CapturedAt, Value: snap.MetricValue(m)}
	}
	return out
}
