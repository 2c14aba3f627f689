// Package trend fits ordinary least-squares trends over metric series,
// classifies their direction, and forecasts one step ahead. The pattern
// analyzer (pattern.go) reuses the same regression.
package trend

import (
	"math"

	"github.com/boramlab/vlens/internal/model"
)

// Thresholds are the classification cutoffs. The defaults mirror the original
// calibration; they are injectable so tests and tuning runs can substitute
// deterministic values.
type Thresholds struct {
	// StableSlope: |slope| (units/hour) below this classifies as stable.
	StableSlope float64

	// Acceleration: positive slope with acceleration above this is viral;
	// negative slope with acceleration below its negation is dying.
	Acceleration float64
}

// DefaultThresholds returns the stock classification cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StableSlope:  0.01,
		Acceleration: 0.1,
	}
}

// Detector classifies metric series. The zero value uses DefaultThresholds.
type Detector struct {
	th Thresholds
}

// NewDetector creates a Detector with the given thresholds.
func NewDetector(th Thresholds) *Detector {
	return &Detector{th: th}
}

// Detect fits a linear trend over the series and classifies it.
//
// Fewer than three points carry no usable signal: the result is a well-formed
// "stable, zero confidence" sentinel, never an error. The series is sorted
// before regression regardless of input order.
func (d *Detector) Detect(series []model.TimePoint) model.TrendResult {
	th := d.thresholds()
	pts := sortPoints(series)
	if len(pts) < 3 {
		return model.TrendResult{Type: model.TrendStable}
	}

	xs, ys := toXY(pts)
	fit := fitOLS(xs, ys)

	// Acceleration: slope of the second half minus slope of the first half.
	// A half with fewer than two points contributes a zero slope.
	mid := len(pts) / 2
	firstXs, firstYs := xs[:mid], ys[:mid]
	secondXs, secondYs := xs[mid:], ys[mid:]
	accel := halfSlope(secondXs, secondYs) - halfSlope(firstXs, firstYs)

	trendType := classify(fit.slope, accel, th)

	// Forecast at the elapsed-hours mark 24h past the last observation.
	futureX := xs[len(xs)-1] + 24
	next := fit.intercept + fit.slope*futureX
	if next < 0 {
		next = 0
	}
	// 95% interval under a normal-error assumption, clamped non-negative.
	margin := 1.96 * fit.stdErr
	low := next - margin
	if low < 0 {
		low = 0
	}
	high := next + margin
	if high < 0 {
		high = 0
	}

	confidence := math.Abs(fit.r2)
	if confidence > 0.99 {
		confidence = 0.99
	}

	return model.TrendResult{
		Type:         trendType,
		Slope:        fit.slope,
		Acceleration: accel,
		Confidence:   confidence,
		Prediction: model.Projection{
			NextValue:          next,
			ConfidenceInterval: [2]float64{low, high},
		},
	}
}

// DetectMetric runs Detect over one counter of a snapshot series.
func (d *Detector) DetectMetric(series model.Series, metric model.Metric) model.TrendResult {
	return d.Detect(series.MetricSeries(metric))
}

func (d *Detector) thresholds() Thresholds {
	if d == nil || (d.th == Thresholds{}) {
		return DefaultThresholds()
	}
	return d.th
}

// classify applies the branch order from the calibration: stable wins ties,
// then accelerating growth, plain growth, accelerating decline, plain decline.
func classify(slope, accel float64, th Thresholds) model.TrendType {
	switch {
	case math.Abs(slope) < th.StableSlope:
		return model.TrendStable
	case slope > 0 && accel > th.Acceleration:
		return model.TrendViral
	case slope > 0:
		return model.TrendRising
	case accel < -th.Acceleration:
		return model.TrendDying
	default:
		return model.TrendFalling
	}
}

// olsFit holds a least-squares line plus goodness-of-fit diagnostics.
type olsFit struct {
	slope     float64
	intercept float64
	r2        float64
	stdErr    float64 // standard error of residuals
}

// fitOLS regresses ys against xs. A degenerate input (all x equal, or fewer
// than two points) yields a flat line through the mean with zero r².
func fitOLS(xs, ys []float64) olsFit {
	n := float64(len(xs))
	if len(xs) < 2 {
		var mean float64
		if len(ys) == 1 {
			mean = ys[0]
		}
		return olsFit{intercept: mean}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return olsFit{intercept: sumY / n}
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for i := range xs {
		pred := intercept + slope*xs[i]
		ssRes += (ys[i] - pred) * (ys[i] - pred)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return olsFit{
		slope:     slope,
		intercept: intercept,
		r2:        r2,
		stdErr:    math.Sqrt(ssRes / n),
	}
}

func halfSlope(xs, ys []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return fitOLS(xs, ys).slope
}

// toXY converts sorted points to regression inputs: x is elapsed hours since
// the first timestamp, y is the raw value.
func toXY(pts []model.TimePoint) (xs, ys []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	t0 := pts[0].Timestamp
	for i, p := range pts {
		xs[i] = p.Timestamp.Sub(t0).Hours()
		ys[i] = p.Value
	}
	return xs, ys
}

func sortPoints(series []model.TimePoint) []model.TimePoint {
	sorted := true
	for i := 1; i < len(series); i++ {
		if series[i].Timestamp.Before(series[i-1].Timestamp) {
			sorted = false
			break
		}
	}
	if sorted {
		return series
	}
	out := make([]model.TimePoint, len(series))
	copy(out, series)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Timestamp.Before(out[j-1].Timestamp); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
