package trend

import (
	"fmt"
	"math"

	"github.com/boramlab/vlens/internal/model"
)

// PatternThresholds gate the three pattern detectors. Defaults mirror the
// original calibration and are injectable for tests.
type PatternThresholds struct {
	// MinPoints: series shorter than this yield no patterns.
	MinPoints int

	// SeasonalVariance: mean hourly-bucket variance above this emits a
	// seasonal pattern. Units are the metric's units squared.
	SeasonalVariance float64

	// TrendSlope: |regression slope| above this emits a trend pattern.
	TrendSlope float64

	// IrregularDeviation: mean relative deviation from the moving average
	// above this emits an irregular pattern.
	IrregularDeviation float64
}

// DefaultPatternThresholds returns the stock pattern cutoffs.
func DefaultPatternThresholds() PatternThresholds {
	return PatternThresholds{
		MinPoints:          7,
		SeasonalVariance:   100,
		TrendSlope:         0.01,
		IrregularDeviation: 0.3,
	}
}

// PatternAnalyzer detects seasonal, trend, and irregular patterns in one
// metric of a snapshot series. Pattern types are independent: all that
// trigger are returned, not just the strongest.
type PatternAnalyzer struct {
	th       PatternThresholds
	detector *Detector
}

// NewPatternAnalyzer creates an analyzer sharing the given trend detector.
func NewPatternAnalyzer(th PatternThresholds, detector *Detector) *PatternAnalyzer {
	return &PatternAnalyzer{th: th, detector: detector}
}

// Analyze inspects one counter of the series. Fewer than MinPoints points
// returns an empty (never nil-dereferencing, never erroring) result.
func (a *PatternAnalyzer) Analyze(series model.Series, metric model.Metric) []model.PatternAnalysis {
	th := a.thresholds()
	pts := series.MetricSeries(metric)
	if len(pts) < th.MinPoints {
		return nil
	}

	var patterns []model.PatternAnalysis

	if v := meanHourlyVariance(pts); v > th.SeasonalVariance {
		strength := v / 1000
		if strength > 1 {
			strength = 1
		}
		patterns = append(patterns, model.PatternAnalysis{
			Type:        model.PatternSeasonal,
			Strength:    strength,
			PeriodHours: 24,
			Description: fmt.Sprintf("hour-of-day variance %.1f suggests a daily cycle", v),
		})
	}

	if result := a.detector.Detect(pts); math.Abs(result.Slope) > th.TrendSlope {
		patterns = append(patterns, model.PatternAnalysis{
			Type:        model.PatternTrend,
			Strength:    math.Abs(result.Confidence),
			Description: fmt.Sprintf("%s trend, slope %.3f/h", result.Type, result.Slope),
		})
	}

	if dev := meanMovingAvgDeviation(pts); dev > th.IrregularDeviation {
		strength := dev
		if strength > 1 {
			strength = 1
		}
		patterns = append(patterns, model.PatternAnalysis{
			Type:        model.PatternIrregular,
			Strength:    strength,
			Description: fmt.Sprintf("mean deviation %.0f%% from moving average", dev*100),
		})
	}

	return patterns
}

func (a *PatternAnalyzer) thresholds() PatternThresholds {
	if a == nil || (a.th == PatternThresholds{}) {
		return DefaultPatternThresholds()
	}
	return a.th
}

// meanHourlyVariance buckets values by hour of day (0-23) and returns the
// mean of the per-bucket population variances over non-empty buckets.
func meanHourlyVariance(pts []model.TimePoint) float64 {
	buckets := make(map[int][]float64)
	for _, p := range pts {
		h := p.Timestamp.Hour()
		buckets[h] = append(buckets[h], p.Value)
	}

	var total float64
	var n int
	for _, vals := range buckets {
		total += variance(vals)
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func variance(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var ss float64
	for _, v := range vals {
		ss += (v - mean) * (v - mean)
	}
	return ss / float64(len(vals))
}

// meanMovingAvgDeviation computes the mean relative deviation of raw values
// from a trailing moving average with window min(5, n/3). Zero-average
// positions are skipped rather than divided by.
func meanMovingAvgDeviation(pts []model.TimePoint) float64 {
	window := len(pts) / 3
	if window > 5 {
		window = 5
	}
	if window < 1 {
		return 0
	}

	var total float64
	var count int
	for i := window - 1; i < len(pts); i++ {
		var sum float64
		for j := i - window + 1; j <= i; j++ {
			sum += pts[j].Value
		}
		avg := sum / float64(window)
		if avg == 0 {
			continue
		}
		total += math.Abs(pts[i].Value-avg) / avg
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
