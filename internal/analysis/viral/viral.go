// Package viral scans snapshot series for bursts of view growth well above
// the series' own average rate and merges contiguous bursts into moments.
package viral

import (
	"github.com/boramlab/vlens/internal/model"
)

// DefaultThresholdMultiplier qualifies an interval as viral when its hourly
// growth exceeds this multiple of the series-wide average.
const DefaultThresholdMultiplier = 2.0

// Finder detects viral moments. The zero value uses
// DefaultThresholdMultiplier.
type Finder struct {
	multiplier float64
}

// NewFinder creates a Finder. A multiplier <= 0 falls back to the default.
func NewFinder(multiplier float64) *Finder {
	return &Finder{multiplier: multiplier}
}

// interval is one consecutive snapshot pair with its derived growth rate.
type interval struct {
	hours      float64
	hourlyRate float64
	end        model.VideoSnapshot
	start      model.VideoSnapshot
}

// Find returns the merged viral moments of a series. Fewer than two
// snapshots cannot form an interval and return an empty result. Counter
// decreases clamp to zero growth; zero-duration intervals are skipped.
func (f *Finder) Find(series model.Series) []model.ViralMoment {
	mult := DefaultThresholdMultiplier
	if f != nil && f.multiplier > 0 {
		mult = f.multiplier
	}

	sorted := series.Sorted()
	if len(sorted) < 2 {
		return nil
	}

	intervals := buildIntervals(sorted)
	if len(intervals) == 0 {
		return nil
	}

	var sum float64
	for _, iv := range intervals {
		sum += iv.hourlyRate
	}
	avg := sum / float64(len(intervals))
	if avg <= 0 {
		// Flat (or correction-only) series: nothing can exceed a multiple
		// of a zero average.
		return nil
	}
	threshold := avg * mult

	var moments []model.ViralMoment
	// Advance past each merged run so overlapping moments are impossible.
	for i := 0; i < len(intervals); {
		if intervals[i].hourlyRate <= threshold {
			i++
			continue
		}

		j := i
		duration := 0.0
		peak := 0.0
		for j < len(intervals) && intervals[j].hourlyRate > threshold {
			duration += intervals[j].hours
			if intervals[j].hourlyRate > peak {
				peak = intervals[j].hourlyRate
			}
			j++
		}

		last := intervals[j-1].end
		moments = append(moments, model.ViralMoment{
			VideoID:          last.VideoID,
			StartAt:          intervals[i].start.CapturedAt,
			EndAt:            last.CapturedAt,
			DurationHours:    duration,
			PeakHourlyGrowth: peak,
			Metrics: model.MomentMetrics{
				ViewCount:    last.ViewCount,
				LikeCount:    last.LikeCount,
				CommentCount: last.CommentCount,
			},
		})
		i = j
	}

	return moments
}

func buildIntervals(sorted model.Series) []interval {
	var out []interval
	for i := 1; i < len(sorted); i++ {
		hours := sorted[i].CapturedAt.Sub(sorted[i-1].CapturedAt).Hours()
		if hours <= 0 {
			continue
		}
		delta := sorted[i].ViewCount - sorted[i-1].ViewCount
		if delta < 0 {
			delta = 0
		}
		out = append(out, interval{
			hours:      hours,
			hourlyRate: float64(delta) / hours,
			start:      sorted[i-1],
			end:        sorted[i],
		})
	}
	return out
}
