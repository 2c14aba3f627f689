package viral

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boramlab/vlens/internal/model"
)

var t0 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func snap(offset time.Duration, views int64) model.VideoSnapshot {
	return model.VideoSnapshot{
		VideoID:    "v1",
		CapturedAt: t0.Add(offset),
		ViewCount:  views,
		LikeCount:  views / 10,
	}
}

func TestFindSpike(t *testing.T) {
	f := NewFinder(DefaultThresholdMultiplier)

	// Interval rates: 10/h, 190/h, 600/h. Average 266.7/h, threshold 533.3/h:
	// only the final spike qualifies.
	series := model.Series{
		snap(0, 100),
		snap(time.Hour, 110),
		snap(2*time.Hour, 300),
		snap(3*time.Hour, 900),
	}

	moments := f.Find(series)
	require.Len(t, moments, 1)

	m := moments[0]
	assert.Equal(t, "v1", m.VideoID)
	assert.Equal(t, t0.Add(2*time.Hour), m.StartAt)
	assert.Equal(t, t0.Add(3*time.Hour), m.EndAt)
	assert.InDelta(t, 1.0, m.DurationHours, 1e-9)
	assert.InDelta(t, 600.0, m.PeakHourlyGrowth, 1e-9)
	assert.Equal(t, int64(900), m.Metrics.ViewCount)
	assert.Equal(t, int64(90), m.Metrics.LikeCount)
}

func TestFindMergesContiguousIntervals(t *testing.T) {
	// A lower multiplier pulls the threshold under both late intervals
	// (190/h and 600/h), which must merge into a single moment spanning
	// t0+1h through t0+3h.
	f := NewFinder(0.7)

	series := model.Series{
		snap(0, 100),
		snap(time.Hour, 110),
		snap(2*time.Hour, 300),
		snap(3*time.Hour, 900),
	}

	moments := f.Find(series)
	require.Len(t, moments, 1)

	m := moments[0]
	assert.Equal(t, t0.Add(time.Hour), m.StartAt)
	assert.Equal(t, t0.Add(3*time.Hour), m.EndAt)
	assert.InDelta(t, 2.0, m.DurationHours, 1e-9)
	assert.InDelta(t, 600.0, m.PeakHourlyGrowth, 1e-9)
	assert.Equal(t, int64(900), m.Metrics.ViewCount)
}

func TestFindSeparateMoments(t *testing.T) {
	f := NewFinder(2.0)

	// Two spikes separated by a quiet interval yield two non-overlapping
	// moments.
	series := model.Series{
		snap(0, 0),
		snap(time.Hour, 1000), // 1000/h
		snap(2*time.Hour, 1010),
		snap(3*time.Hour, 1020),
		snap(4*time.Hour, 2020), // 1000/h
		snap(5*time.Hour, 2030),
	}

	moments := f.Find(series)
	require.Len(t, moments, 2)
	assert.True(t, moments[0].EndAt.Before(moments[1].StartAt) || moments[0].EndAt.Equal(moments[1].StartAt))
}

func TestFindFlatSeries(t *testing.T) {
	f := NewFinder(2.0)
	series := model.Series{snap(0, 500), snap(time.Hour, 500), snap(2*time.Hour, 500)}
	assert.Empty(t, f.Find(series))
}

func TestFindTooFewSnapshots(t *testing.T) {
	f := NewFinder(2.0)
	assert.Empty(t, f.Find(nil))
	assert.Empty(t, f.Find(model.Series{snap(0, 100)}))
}

func TestFindClampsCounterDecreases(t *testing.T) {
	f := NewFinder(2.0)
	// A correction event must not register as negative growth; with every
	// other interval flat the average is zero and nothing qualifies.
	series := model.Series{
		snap(0, 1000),
		snap(time.Hour, 900),
		snap(2*time.Hour, 900),
	}
	assert.Empty(t, f.Find(series))
}

func TestFindSkipsZeroDurationIntervals(t *testing.T) {
	f := NewFinder(2.0)
	series := model.Series{
		snap(0, 100),
		snap(0, 200), // duplicate timestamp
		snap(time.Hour, 110),
		snap(2*time.Hour, 300),
		snap(3*time.Hour, 900),
	}
	moments := f.Find(series)
	require.NotEmpty(t, moments)
	for _, m := range moments {
		assert.Greater(t, m.DurationHours, 0.0)
	}
}

func TestFindContainment(t *testing.T) {
	f := NewFinder(1.5)
	series := model.Series{
		snap(0, 0),
		snap(time.Hour, 50),
		snap(2*time.Hour, 400),
		snap(4*time.Hour, 1600),
		snap(5*time.Hour, 1650),
	}

	for _, m := range f.Find(series) {
		// Metrics equal the snapshot at the moment's end time.
		var end *model.VideoSnapshot
		for i := range series {
			if series[i].CapturedAt.Equal(m.EndAt) {
				end = &series[i]
			}
		}
		require.NotNil(t, end)
		assert.Equal(t, end.ViewCount, m.Metrics.ViewCount)
		assert.Equal(t, end.LikeCount, m.Metrics.LikeCount)

		// Duration equals the span of the merged run.
		assert.InDelta(t, m.EndAt.Sub(m.StartAt).Hours(), m.DurationHours, 1e-9)
	}
}

func TestFindIdempotent(t *testing.T) {
	f := NewFinder(2.0)
	series := model.Series{
		snap(0, 100),
		snap(time.Hour, 110),
		snap(2*time.Hour, 300),
		snap(3*time.Hour, 900),
	}

	first := f.Find(series)
	second := f.Find(series)
	assert.Equal(t, first, second)
}
