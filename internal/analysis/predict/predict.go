// Package predict classifies a video's growth trajectory from its feature
// vector, scores a sigmoid-bounded viral probability, and projects counters
// a horizon of days ahead with a trajectory-specific growth model.
package predict

import (
	"math"
	"time"

	"github.com/boramlab/vlens/internal/analysis/features"
	"github.com/boramlab/vlens/internal/model"
)

// ModelVersion is stamped on every prediction so stored results stay
// comparable across calibration changes.
const ModelVersion = "heuristic-v1"

// DefaultHorizonDays is the projection horizon when the caller passes none.
const DefaultHorizonDays = 30

// Predictor produces growth predictions. Safe for concurrent use: it holds
// only immutable coefficients.
type Predictor struct {
	coeffs Coefficients
	now    func() time.Time
}

// New creates a Predictor. Zero-value coefficients fall back to the default
// calibration.
func New(coeffs Coefficients) *Predictor {
	if coeffs == (Coefficients{}) {
		coeffs = DefaultCoefficients()
	}
	return &Predictor{coeffs: coeffs, now: func() time.Time { return time.Now().UTC() }}
}

// Predict projects a video's views and likes horizonDays ahead. It never
// fails on sparse input: a single-snapshot video with zero velocity predicts
// its current view count with a wide interval and a low viral probability.
// A horizon <= 0 uses DefaultHorizonDays.
func (p *Predictor) Predict(meta model.VideoMetadata, series model.Series, horizonDays int, channel *model.ChannelStats) model.PredictionModel {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	fv := features.Extract(meta, series, channel)

	var currentViews float64
	if latest, ok := series.Latest(); ok {
		currentViews = float64(latest.ViewCount)
	}

	trajectory := p.classifyTrajectory(fv)
	views := p.projectViews(trajectory, currentViews, fv, horizonDays)
	if views < 0 {
		views = 0
	}
	likes := views * fv.EngagementRate * p.coeffs.LikeShare
	if likes < 0 {
		likes = 0
	}

	uncertainty := p.uncertainty(trajectory, fv)
	low := views * (1 - uncertainty)
	if low < 0 {
		low = 0
	}
	high := views * (1 + uncertainty)

	return model.PredictionModel{
		VideoID:            meta.VideoID,
		PredictedViews:     views,
		PredictedLikes:     likes,
		ConfidenceInterval: [2]float64{low, high},
		ViralProbability:   p.ViralProbability(fv),
		GrowthTrajectory:   trajectory,
		HorizonDays:        horizonDays,
		PredictionDate:     p.now(),
		ModelVersion:       ModelVersion,
	}
}

// classifyTrajectory scores each trajectory with a threshold-gated heuristic
// and picks the highest. All-zero scores default to linear: with no signal
// either way, straight-line extrapolation is the least wrong assumption.
func (p *Predictor) classifyTrajectory(fv model.FeatureVector) model.Trajectory {
	c := p.coeffs
	scores := map[model.Trajectory]float64{}

	// Exponential: viral-scale velocity that is still speeding up, with an
	// audience that engages.
	if fv.InitialVelocity >= c.ViralVelocity && fv.Acceleration > 0 && fv.EngagementRate >= c.MinEngagement {
		scores[model.TrajectoryExponential] = fv.InitialVelocity/c.ViralVelocity +
			fv.Acceleration/10 +
			fv.EngagementRate*10
	}

	// Declining: growth has effectively stopped and is still slowing.
	if fv.InitialVelocity < c.PlateauVelocity && fv.Acceleration < 0 {
		scores[model.TrajectoryDeclining] = 1 + math.Abs(fv.Acceleration)/10
	}

	// Plateau: little movement in either direction.
	if fv.InitialVelocity < c.PlateauVelocity && math.Abs(fv.Acceleration) <= 0.5 {
		scores[model.TrajectoryPlateau] = 1 - fv.InitialVelocity/c.PlateauVelocity
	}

	// Logarithmic: healthy velocity but decelerating, the usual tail of a
	// video past its peak reach.
	if fv.InitialVelocity >= c.PlateauVelocity && fv.Acceleration < 0 {
		scores[model.TrajectoryLogarithmic] = 1 + math.Abs(fv.Acceleration)/5
	}

	// Linear: steady velocity, no meaningful acceleration.
	if fv.InitialVelocity > 0 && math.Abs(fv.Acceleration) <= 0.5 {
		scores[model.TrajectoryLinear] = 0.5 + fv.InitialVelocity/c.ViralVelocity
	}

	best := model.TrajectoryLinear
	bestScore := 0.0
	// Fixed evaluation order keeps ties deterministic.
	for _, tr := range []model.Trajectory{
		model.TrajectoryExponential,
		model.TrajectoryLinear,
		model.TrajectoryLogarithmic,
		model.TrajectoryPlateau,
		model.TrajectoryDeclining,
	} {
		if s := scores[tr]; s > bestScore {
			best, bestScore = tr, s
		}
	}
	return best
}

// projectViews applies the trajectory's growth model.
func (p *Predictor) projectViews(tr model.Trajectory, current float64, fv model.FeatureVector, days int) float64 {
	c := p.coeffs
	hours := float64(days) * 24

	switch tr {
	case model.TrajectoryExponential:
		// Compound daily growth with an hourly decay on the growth rate so
		// long horizons cannot blow up: each successive day contributes a
		// geometrically smaller rate.
		projected := current
		for d := 1; d <= days; d++ {
			rate := (fv.Acceleration / 100) * math.Pow(c.HourlyDecay, float64(d)*24)
			if rate < 0 {
				rate = 0
			}
			projected *= 1 + rate
		}
		return projected

	case model.TrajectoryLogarithmic:
		return current + fv.InitialVelocity*c.LogGrowthScale*math.Log(1+float64(days))

	case model.TrajectoryPlateau:
		return current + fv.InitialVelocity*c.PlateauResidual*hours

	case model.TrajectoryDeclining:
		return current * math.Pow(c.DailyDeclineRate, float64(days))

	default: // linear
		return current + fv.InitialVelocity*24*float64(days)
	}
}

// ViralProbability maps the feature vector to (0,1) through a weighted score
// and a logistic sigmoid centered at 0.5. The sigmoid keeps the response
// smooth: a video just under a gate scores slightly less, not zero.
func (p *Predictor) ViralProbability(fv model.FeatureVector) float64 {
	c := p.coeffs

	velNorm := clamp01(fv.InitialVelocity / c.ViralVelocity)
	accNorm := clamp01(0.5 + fv.Acceleration/200) // maps [-100,+100] onto [0,1]
	engNorm := clamp01(fv.EngagementRate / 0.1)

	chNorm := 0.0
	if fv.ChannelSubscribers > 0 {
		chNorm = clamp01(math.Log10(float64(fv.ChannelSubscribers)) / 7)
	}

	raw := c.WeightVelocity*velNorm +
		c.WeightAcceleration*accNorm +
		c.WeightEngagement*engNorm +
		c.WeightChannel*chNorm +
		c.WeightMetadata*metadataQuality(fv)

	prob := 1 / (1 + math.Exp(-c.SigmoidSteepness*(raw-0.5)))
	return clamp01(prob)
}

// metadataQuality scores title, tag, and description hygiene in [0,1].
// Mid-length titles, a moderate tag set, and a substantive description each
// earn a third.
func metadataQuality(fv model.FeatureVector) float64 {
	var score float64
	if fv.TitleLength >= 20 && fv.TitleLength <= 70 {
		score += 1.0 / 3
	}
	if fv.TagCount >= 5 && fv.TagCount <= 15 {
		score += 1.0 / 3
	}
	if fv.DescriptionLength >= 100 {
		score += 1.0 / 3
	}
	return score
}

// uncertainty sizes the confidence interval: wide for exponential forecasts,
// narrow for declining ones, widened further on weak input signal.
func (p *Predictor) uncertainty(tr model.Trajectory, fv model.FeatureVector) float64 {
	c := p.coeffs

	u := c.BaseUncertainty
	switch tr {
	case model.TrajectoryExponential:
		u = c.ExponentialUncertainty
	case model.TrajectoryDeclining:
		u = c.DecliningUncertainty
	}

	if fv.InitialVelocity < c.LowVelocityFloor {
		u += c.LowVelocityPenalty
	}
	if fv.EngagementRate < c.LowEngagementFloor {
		u += c.LowEngagementPenalty
	}
	return u
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
