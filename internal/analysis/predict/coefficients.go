package predict

// Coefficients are the hand-tuned constants behind trajectory scoring, viral
// probability, and interval sizing. They are a named, injectable struct so
// tests can substitute deterministic values and tuning changes never touch
// code. Defaults carry the original calibration; treat them as starting
// points, not validated ground truth.
type Coefficients struct {
	// Trajectory gates (views per hour unless noted).
	ViralVelocity   float64 // velocity at or above this reads as viral-scale
	PlateauVelocity float64 // velocity below this reads as flattened out
	MinEngagement   float64 // engagement rate floor for exponential growth

	// Viral probability weights. Applied to normalized [0,1] signals and
	// summed before the sigmoid; they should total 1.
	WeightVelocity     float64
	WeightAcceleration float64
	WeightEngagement   float64
	WeightChannel      float64
	WeightMetadata     float64

	// SigmoidSteepness shapes the probability response around the 0.5
	// center: higher is closer to a hard threshold.
	SigmoidSteepness float64

	// Projection shape parameters.
	HourlyDecay      float64 // per-hour damping of exponential growth
	DailyDeclineRate float64 // multiplicative daily shrink for declining videos
	LogGrowthScale   float64 // multiplier on velocity inside the log model
	PlateauResidual  float64 // fraction of velocity that persists on a plateau

	// LikeShare is the fraction of engagement attributed to likes rather
	// than comments when deriving predicted likes.
	LikeShare float64

	// Uncertainty percentages for the confidence interval.
	BaseUncertainty        float64
	ExponentialUncertainty float64
	DecliningUncertainty   float64
	LowVelocityPenalty     float64 // widening when velocity is near zero
	LowEngagementPenalty   float64 // widening when engagement is near zero
	LowVelocityFloor       float64 // views/hour below this is "low velocity"
	LowEngagementFloor     float64 // engagement below this is "low engagement"
}

// DefaultCoefficients returns the stock calibration.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		ViralVelocity:   1000,
		PlateauVelocity: 10,
		MinEngagement:   0.05,

		WeightVelocity:     0.35,
		WeightAcceleration: 0.20,
		WeightEngagement:   0.20,
		WeightChannel:      0.15,
		WeightMetadata:     0.10,

		SigmoidSteepness: 4,

		HourlyDecay:      0.95,
		DailyDeclineRate: 0.80,
		LogGrowthScale:   100,
		PlateauResidual:  0.1,

		LikeShare: 0.8,

		BaseUncertainty:        0.20,
		ExponentialUncertainty: 0.40,
		DecliningUncertainty:   0.15,
		LowVelocityPenalty:     0.10,
		LowEngagementPenalty:   0.05,
		LowVelocityFloor:       1.0,
		LowEngagementFloor:     0.01,
	}
}
