package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boramlab/vlens/internal/model"
)

var base = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

// points builds an hourly series from values.
func points(values ...float64) []model.TimePoint {
	out := make([]model.TimePoint, len(values))
	for i, v := range values {
		out[i] = model.TimePoint{Timestamp: base.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return out
}

func TestDetectClassification(t *testing.T) {
	d := NewDetector(DefaultThresholds())

	tests := []struct {
		name   string
		series []model.TimePoint
		want   model.TrendType
	}{
		{
			name:   "steady growth is rising",
			series: points(100, 200, 300, 400),
			want:   model.TrendRising,
		},
		{
			name:   "accelerating growth is viral",
			series: points(100, 105, 110, 300, 800, 2000),
			want:   model.TrendViral,
		},
		{
			name:   "steady decline is falling",
			series: points(1000, 900, 800, 700),
			want:   model.TrendFalling,
		},
		{
			name:   "accelerating decline is dying",
			series: points(2000, 1990, 1980, 1500, 800, 100),
			want:   model.TrendDying,
		},
		{
			name:   "flat series is stable",
			series: points(100, 100, 100, 100),
			want:   model.TrendStable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.series)
			assert.Equal(t, tt.want, got.Type)
		})
	}
}

func TestDetectTooFewPoints(t *testing.T) {
	d := NewDetector(DefaultThresholds())

	for _, series := range [][]model.TimePoint{nil, points(100), points(100, 200)} {
		got := d.Detect(series)
		assert.Equal(t, model.TrendStable, got.Type)
		assert.Zero(t, got.Slope)
		assert.Zero(t, got.Confidence)
	}
}

func TestDetectFlatSeries(t *testing.T) {
	// Ten identical values: stable, near-zero slope, zero confidence.
	d := NewDetector(DefaultThresholds())
	got := d.Detect(points(500, 500, 500, 500, 500, 500, 500, 500, 500, 500))

	assert.Equal(t, model.TrendStable, got.Type)
	assert.InDelta(t, 0.0, got.Slope, 1e-9)
	assert.Zero(t, got.Confidence)
}

func TestDetectPerfectLine(t *testing.T) {
	d := NewDetector(DefaultThresholds())
	got := d.Detect(points(100, 200, 300, 400))

	assert.InDelta(t, 100.0, got.Slope, 1e-9)
	// r² == 1 on a perfect fit, capped at 0.99.
	assert.InDelta(t, 0.99, got.Confidence, 1e-9)
	// Forecast lands 24h past the last observation: 100 + 100*(3+24).
	assert.InDelta(t, 2800.0, got.Prediction.NextValue, 1e-6)
	// Zero residuals collapse the interval onto the forecast.
	assert.InDelta(t, 2800.0, got.Prediction.ConfidenceInterval[0], 1e-6)
	assert.InDelta(t, 2800.0, got.Prediction.ConfidenceInterval[1], 1e-6)
}

func TestDetectConfidenceCapped(t *testing.T) {
	d := NewDetector(DefaultThresholds())
	for _, series := range [][]model.TimePoint{
		points(100, 200, 300, 400, 500),
		points(10, 400, 20, 900, 30),
		points(1000, 800, 600, 400),
	} {
		got := d.Detect(series)
		assert.LessOrEqual(t, got.Confidence, 0.99)
		assert.GreaterOrEqual(t, got.Confidence, 0.0)
	}
}

func TestDetectForecastNeverNegative(t *testing.T) {
	d := NewDetector(DefaultThresholds())
	// A steep decline extrapolated 24h ahead crosses zero; the forecast and
	// both interval bounds must clamp.
	got := d.Detect(points(300, 200, 100))

	assert.GreaterOrEqual(t, got.Prediction.NextValue, 0.0)
	assert.GreaterOrEqual(t, got.Prediction.ConfidenceInterval[0], 0.0)
	assert.GreaterOrEqual(t, got.Prediction.ConfidenceInterval[1], 0.0)
	assert.LessOrEqual(t, got.Prediction.ConfidenceInterval[0], got.Prediction.ConfidenceInterval[1])
}

func TestDetectUnsortedInput(t *testing.T) {
	d := NewDetector(DefaultThresholds())
	sorted := points(100, 200, 300, 400)
	shuffled := []model.TimePoint{sorted[2], sorted[0], sorted[3], sorted[1]}

	want := d.Detect(sorted)
	got := d.Detect(shuffled)
	assert.Equal(t, want, got)

	// The caller's slice order is preserved.
	assert.Equal(t, 300.0, shuffled[0].Value)
}

func TestDetectIdempotent(t *testing.T) {
	d := NewDetector(DefaultThresholds())
	series := points(100, 140, 260, 410, 700)

	first := d.Detect(series)
	second := d.Detect(series)
	assert.Equal(t, first, second)
}

func TestDetectMetric(t *testing.T) {
	d := NewDetector(DefaultThresholds())
	series := model.Series{
		{CapturedAt: base, ViewCount: 100, LikeCount: 400},
		{CapturedAt: base.Add(time.Hour), ViewCount: 200, LikeCount: 300},
		{CapturedAt: base.Add(2 * time.Hour), ViewCount: 300, LikeCount: 200},
		{CapturedAt: base.Add(3 * time.Hour), ViewCount: 400, LikeCount: 100},
	}

	assert.Equal(t, model.TrendRising, d.DetectMetric(series, model.MetricViews).Type)
	assert.Equal(t, model.TrendFalling, d.DetectMetric(series, model.MetricLikes).Type)
}

func TestDetectZeroValueDetectorUsesDefaults(t *testing.T) {
	var d Detector
	got := d.Detect(points(100, 200, 300, 400))
	require.Equal(t, model.TrendRising, got.Type)
}

func TestFitOLSDegenerate(t *testing.T) {
	// All x identical: flat line through the mean, no confidence.
	fit := fitOLS([]float64{1, 1, 1}, []float64{10, 20, 30})
	assert.Zero(t, fit.slope)
	assert.InDelta(t, 20.0, fit.intercept, 1e-9)
	assert.Zero(t, fit.r2)
}
