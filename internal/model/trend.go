package model

import "time"

// TrendType classifies the direction of a metric series.
type TrendType string

const (
	TrendRising  TrendType = "rising"
	TrendFalling TrendType = "falling"
	TrendStable  TrendType = "stable"
	TrendViral   TrendType = "viral" // rising with accelerating growth
	TrendDying   TrendType = "dying" // falling with accelerating decline
)

// TrendResult is the output of trend detection over one metric series.
// Pure value object: no identity, no lifecycle beyond the call.
type TrendResult struct {
	Type         TrendType  `json:"trend_type"`
	Slope        float64    `json:"slope"`        // units per elapsed hour
	Acceleration float64    `json:"acceleration"` // second-half slope minus first-half slope
	Confidence   float64    `json:"confidence"`   // [0, 0.99], from regression r²
	Prediction   Projection `json:"prediction"`
}

// Projection is a one-step-ahead forecast with a 95% confidence interval.
type Projection struct {
	NextValue          float64    `json:"next_value"`
	ConfidenceInterval [2]float64 `json:"confidence_interval"` // [low, high], both >= 0
}

// PatternType names a detected series pattern.
type PatternType string

const (
	PatternSeasonal  PatternType = "seasonal"
	PatternTrend     PatternType = "trend"
	PatternIrregular PatternType = "irregular"
)

// PatternAnalysis is one detected pattern. Several may co-occur for the same
// series; callers receive the full triggered set, not just the strongest.
type PatternAnalysis struct {
	Type        PatternType `json:"pattern_type"`
	Strength    float64     `json:"strength"`               // [0, 1]
	PeriodHours int         `json:"period_hours,omitempty"` // 24 for hour-of-day seasonality
	Description string      `json:"description"`
}

// ViralMoment is a merged run of consecutive intervals whose hourly view
// growth exceeded a multiple of the series average. Metrics are the counter
// values at the end of the merged run.
type ViralMoment struct {
	VideoID          string        `json:"video_id"`
	StartAt          time.Time     `json:"start_at"`
	EndAt            time.Time     `json:"end_at"`
	DurationHours    float64       `json:"duration_hours"`
	PeakHourlyGrowth float64       `json:"peak_hourly_growth"`
	Metrics          MomentMetrics `json:"metrics"`
}

// MomentMetrics are the snapshot counters at the end of a viral moment.
type MomentMetrics struct {
	ViewCount    int64 `json:"view_count"`
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
}
