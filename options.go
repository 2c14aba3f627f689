package vlens

import "log/slog"

// Option configures an Engine.
type Option func(*resolvedOptions)

// resolvedOptions holds all tunables after applying defaults.
// Unexported; callers use the With* functions.
type resolvedOptions struct {
	logger             *slog.Logger
	viralMultiplier    float64
	topKeywords        int
	predictionHorizon  int
	stableSlope        float64
	accelerationCutoff float64
}

// WithLogger sets the structured logger for the Engine.
// If not set, the default slog logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *resolvedOptions) { o.logger = logger }
}

// WithViralThresholdMultiplier overrides the hourly-growth multiple an
// interval must exceed to qualify as part of a viral moment (default 2.0).
func WithViralThresholdMultiplier(mult float64) Option {
	return func(o *resolvedOptions) { o.viralMultiplier = mult }
}

// WithTopKeywords overrides how many term-frequency keywords entity
// extraction returns (default 10).
func WithTopKeywords(n int) Option {
	return func(o *resolvedOptions) { o.topKeywords = n }
}

// WithPredictionHorizon overrides the default forecast horizon in days
// (default 30).
func WithPredictionHorizon(days int) Option {
	return func(o *resolvedOptions) { o.predictionHorizon = days }
}

// WithTrendThresholds overrides the slope magnitude below which a series is
// stable, and the acceleration magnitude that escalates rising to viral and
// falling to dying (defaults 0.01 and 0.1).
func WithTrendThresholds(stableSlope, acceleration float64) Option {
	return func(o *resolvedOptions) {
		o.stableSlope = stableSlope
		o.accelerationCutoff = acceleration
	}
}
