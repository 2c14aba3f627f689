// Package vlens is the public API of the vlens video analytics engine.
//
// The engine is pure computation over caller-supplied snapshot series and
// video metadata: trend detection, pattern analysis, viral moment finding,
// growth prediction, and heuristic Korean/English entity extraction. It
// does no fetching and no persistence; callers own the data.
//
//	engine := vlens.New(
//	    vlens.WithViralThresholdMultiplier(2.5),
//	    vlens.WithTopKeywords(15),
//	)
//	result := engine.DetectTrend(snapshots, vlens.MetricViews)
//
// The import graph enforces a strict no-cycle rule: vlens (root) imports
// internal/*, but internal/* never imports vlens (root). Public types are
// standalone structs with no internal imports; conversion helpers live in
// types.go because the root is the only package that sees both sides of the
// boundary.
package vlens

import (
	"context"
	"log/slog"
	"time"

	"github.com/boramlab/vlens/internal/analysis/predict"
	"github.com/boramlab/vlens/internal/analysis/trend"
	"github.com/boramlab/vlens/internal/model"
	"github.com/boramlab/vlens/internal/nlp"
	"github.com/boramlab/vlens/internal/service/analysis"
)

// Engine is the analytics entry point. Construct with New(). Safe for
// concurrent use: all components are immutable after construction.
type Engine struct {
	pipe   *analysis.Pipeline
	logger *slog.Logger
}

// New builds an Engine with the given options. Zero-value options fall back
// to the documented defaults.
func New(opts ...Option) *Engine {
	o := resolvedOptions{}
	for _, fn := range opts {
		fn(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	thresholds := trend.DefaultThresholds()
	if o.stableSlope != 0 {
		thresholds.StableSlope = o.stableSlope
	}
	if o.accelerationCutoff != 0 {
		thresholds.Acceleration = o.accelerationCutoff
	}

	pipe := analysis.NewPipeline(analysis.PipelineConfig{
		TrendThresholds:    thresholds,
		ViralMultiplier:    o.viralMultiplier,
		TopKeywords:        o.topKeywords,
		DefaultHorizonDays: o.predictionHorizon,
	})

	return &Engine{pipe: pipe, logger: logger}
}

// DetectTrend classifies the direction of one metric across a snapshot
// series. Fewer than three snapshots yield a stable result with zero
// confidence.
func (e *Engine) DetectTrend(snapshots []Snapshot, metric Metric) TrendResult {
	series := toInternalSnapshots(snapshots)
	return toPublicTrend(e.pipe.Detector().DetectMetric(series, model.Metric(metric)))
}

// AnalyzePatterns detects seasonal, trend, and irregular patterns in one
// metric across a snapshot series. Several patterns may co-occur; fewer than
// seven snapshots yield none.
func (e *Engine) AnalyzePatterns(snapshots []Snapshot, metric Metric) []PatternAnalysis {
	series := toInternalSnapshots(snapshots)
	return toPublicPatterns(e.pipe.Patterns().Analyze(series, model.Metric(metric)))
}

// FindViralMoments returns merged time windows where hourly view growth
// exceeded the configured multiple of the series average.
func (e *Engine) FindViralMoments(snapshots []Snapshot) []ViralMoment {
	series := toInternalSnapshots(snapshots)
	return toPublicMoments(e.pipe.Finder().Find(series))
}

// ExtractFeatures derives the numeric feature vector used by growth
// prediction. Nil channel stats degrade to a small-channel default.
func (e *Engine) ExtractFeatures(video Video, snapshots []Snapshot, channel *ChannelStats) FeatureVector {
	fv := e.pipe.ExtractFeatures(toInternalVideo(video), toInternalSnapshots(snapshots), toInternalChannel(channel))
	return toPublicFeatures(fv)
}

// PredictPerformance forecasts a video's views and likes at the horizon.
// horizonDays <= 0 falls back to the engine's configured default.
func (e *Engine) PredictPerformance(video Video, snapshots []Snapshot, horizonDays int, channel *ChannelStats) Prediction {
	p := e.pipe.Predictor().Predict(toInternalVideo(video), toInternalSnapshots(snapshots), horizonDays, toInternalChannel(channel))
	return toPublicPrediction(p)
}

// PredictionInput is one video's worth of batch prediction input.
type PredictionInput struct {
	Video     Video
	Snapshots []Snapshot
	Channel   *ChannelStats
}

// BatchPredict forecasts every input in parallel, preserving input order.
func (e *Engine) BatchPredict(ctx context.Context, inputs []PredictionInput, horizonDays int) []Prediction {
	internal := make([]predict.Input, len(inputs))
	for i, in := range inputs {
		internal[i] = predict.Input{
			Meta:    toInternalVideo(in.Video),
			Series:  toInternalSnapshots(in.Snapshots),
			Channel: toInternalChannel(in.Channel),
		}
	}

	preds := e.pipe.Predictor().BatchPredict(ctx, internal, horizonDays)
	out := make([]Prediction, len(preds))
	for i, p := range preds {
		out[i] = toPublicPrediction(p)
	}
	return out
}

// FindViralCandidates filters predictions to those with viral probability
// above 0.5, sorted descending, capped at limit (limit <= 0 means no cap).
func (e *Engine) FindViralCandidates(preds []Prediction, limit int) []Prediction {
	internal := make([]model.PredictionModel, len(preds))
	for i, p := range preds {
		internal[i] = model.PredictionModel{
			VideoID:            p.VideoID,
			PredictedViews:     p.PredictedViews,
			PredictedLikes:     p.PredictedLikes,
			ConfidenceInterval: p.ConfidenceInterval,
			ViralProbability:   p.ViralProbability,
			GrowthTrajectory:   model.Trajectory(p.GrowthTrajectory),
			HorizonDays:        p.HorizonDays,
			PredictionDate:     p.PredictionDate,
			ModelVersion:       p.ModelVersion,
		}
	}

	candidates := predict.FindViralCandidates(internal, limit)
	out := make([]Prediction, len(candidates))
	for i, p := range candidates {
		out[i] = toPublicPrediction(p)
	}
	return out
}

// ExtractEntities runs heuristic NLP over a video's title, description, and
// tags: language detection, keyword ranking, gazetteer entities, topic
// matching, and lexicon sentiment.
func (e *Engine) ExtractEntities(video Video) Entities {
	return toPublicEntities(e.pipe.Extractor().Extract(toInternalVideo(video)))
}

// DetectLanguage reports the dominant script of a text: Korean, English, or
// mixed.
func (e *Engine) DetectLanguage(text string) Language {
	return Language(nlp.DetectLanguage(text))
}

// VideoWithEntities pairs a video with its extraction, for cross-video
// keyword aggregation.
type VideoWithEntities struct {
	Video    Video
	Entities Entities
}

// AnalyzeKeywordTrends aggregates keyword momentum across videos published
// within the window ending at now.
func (e *Engine) AnalyzeKeywordTrends(videos []VideoWithEntities, window time.Duration, now time.Time) []KeywordTrend {
	trends := nlp.AnalyzeKeywordTrends(toInternalEntities(videos), window, now)
	return toPublicKeywordTrends(trends)
}

// AnalyzeVideo runs the full per-video pipeline: trend, patterns, viral
// moments, and prediction at the default horizon.
func (e *Engine) AnalyzeVideo(video Video, snapshots []Snapshot, channel *ChannelStats) VideoAnalysis {
	va := e.pipe.AnalyzeVideo(toInternalVideo(video), toInternalSnapshots(snapshots), toInternalChannel(channel))
	return VideoAnalysis{
		VideoID:    va.VideoID,
		Trend:      toPublicTrend(va.Trend),
		Patterns:   toPublicPatterns(va.Patterns),
		Moments:    toPublicMoments(va.Moments),
		Prediction: toPublicPrediction(va.Prediction),
	}
}
