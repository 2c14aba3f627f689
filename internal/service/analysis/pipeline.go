// Package analysis composes the detectors into the per-video pipeline and
// exposes the store-backed service the HTTP layer uses. The pipeline itself
// is pure computation; only the Service touches storage and telemetry.
package analysis

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/boramlab/vlens/internal/analysis/features"
	"github.com/boramlab/vlens/internal/analysis/predict"
	"github.com/boramlab/vlens/internal/analysis/trend"
	"github.com/boramlab/vlens/internal/analysis/viral"
	"github.com/boramlab/vlens/internal/model"
	"github.com/boramlab/vlens/internal/nlp"
	"github.com/boramlab/vlens/internal/report"
)

// PipelineConfig holds the tunables of every detector. Zero values fall back
// to each component's defaults.
type PipelineConfig struct {
	TrendThresholds    trend.Thresholds
	PatternThresholds  trend.PatternThresholds
	ViralMultiplier    float64
	Coefficients       predict.Coefficients
	Lexicon            nlp.Lexicon
	TopKeywords        int
	DefaultHorizonDays int
}

// Pipeline wires the detectors for single- and multi-video analysis.
// Safe for concurrent use: all components are immutable after construction.
type Pipeline struct {
	detector  *trend.Detector
	patterns  *trend.PatternAnalyzer
	finder    *viral.Finder
	predictor *predict.Predictor
	extractor *nlp.Extractor
	horizon   int
}

// NewPipeline builds a pipeline from config.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	detector := trend.NewDetector(cfg.TrendThresholds)
	horizon := cfg.DefaultHorizonDays
	if horizon <= 0 {
		horizon = predict.DefaultHorizonDays
	}
	return &Pipeline{
		detector:  detector,
		patterns:  trend.NewPatternAnalyzer(cfg.PatternThresholds, detector),
		finder:    viral.NewFinder(cfg.ViralMultiplier),
		predictor: predict.New(cfg.Coefficients),
		extractor: nlp.NewExtractor(cfg.Lexicon, cfg.TopKeywords),
		horizon:   horizon,
	}
}

// Detector exposes the trend detector for direct series-level calls.
func (p *Pipeline) Detector() *trend.Detector { return p.detector }

// Patterns exposes the pattern analyzer.
func (p *Pipeline) Patterns() *trend.PatternAnalyzer { return p.patterns }

// Finder exposes the viral moment finder.
func (p *Pipeline) Finder() *viral.Finder { return p.finder }

// Predictor exposes the growth predictor.
func (p *Pipeline) Predictor() *predict.Predictor { return p.predictor }

// Extractor exposes the NLP extractor.
func (p *Pipeline) Extractor() *nlp.Extractor { return p.extractor }

// ExtractFeatures runs feature extraction; kept on the pipeline so callers
// need only one entry point.
func (p *Pipeline) ExtractFeatures(meta model.VideoMetadata, series model.Series, channel *model.ChannelStats) model.FeatureVector {
	return features.Extract(meta, series, channel)
}

// AnalyzeVideo runs the full per-video pipeline: trend, patterns, viral
// moments, and prediction over the same immutable series.
func (p *Pipeline) AnalyzeVideo(meta model.VideoMetadata, series model.Series, channel *model.ChannelStats) report.VideoAnalysis {
	sorted := series.Sorted()
	return report.VideoAnalysis{
		VideoID:    meta.VideoID,
		Trend:      p.detector.DetectMetric(sorted, model.MetricViews),
		Patterns:   p.patterns.Analyze(sorted, model.MetricViews),
		Moments:    p.finder.Find(sorted),
		Prediction: p.predictor.Predict(meta, sorted, p.horizon, channel),
	}
}

// BatchAnalyze runs AnalyzeVideo over every input in parallel, preserving
// input order. Videos are independent, so this is pure throughput.
func (p *Pipeline) BatchAnalyze(ctx context.Context, inputs []predict.Input) []report.VideoAnalysis {
	out := make([]report.VideoAnalysis, len(inputs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out[i] = p.AnalyzeVideo(in.Meta, in.Series, in.Channel)
			return nil
		})
	}
	_ = g.Wait()

	return out
}
