package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/boramlab/vlens/internal/analysis/predict"
	"github.com/boramlab/vlens/internal/model"
	"github.com/boramlab/vlens/internal/nlp"
	"github.com/boramlab/vlens/internal/report"
	"github.com/boramlab/vlens/internal/storage"
	"github.com/boramlab/vlens/internal/telemetry"
)

// Report kinds as persisted in the reports table.
const (
	ReportKindTrends      = "trends"
	ReportKindPredictions = "predictions"
	ReportKindNLP         = "nlp"
)

// keywordTrendWindow bounds the recency filter of NLP keyword aggregation.
const keywordTrendWindow = 7 * 24 * time.Hour

// Service runs the analysis pipeline over stored data. It is the seam
// between the pure engine and the persistence/HTTP shell.
type Service struct {
	store  storage.Store
	pipe   *Pipeline
	logger *slog.Logger

	analyses   otelmetric.Int64Counter
	durationMs otelmetric.Float64Histogram
}

// NewService creates a Service. Metric instrument creation is best-effort:
// with no meter provider configured the instruments are no-ops.
func NewService(store storage.Store, pipe *Pipeline, logger *slog.Logger) *Service {
	meter := telemetry.Meter("vlens/analysis")
	analyses, err := meter.Int64Counter("vlens.analysis.total",
		otelmetric.WithDescription("Completed per-video analyses"))
	if err != nil {
		logger.Warn("metric init failed", "metric", "vlens.analysis.total", "error", err)
	}
	durationMs, err := meter.Float64Histogram("vlens.analysis.duration_ms",
		otelmetric.WithDescription("Per-video analysis latency in milliseconds"))
	if err != nil {
		logger.Warn("metric init failed", "metric", "vlens.analysis.duration_ms", "error", err)
	}

	return &Service{
		store:      store,
		pipe:       pipe,
		logger:     logger,
		analyses:   analyses,
		durationMs: durationMs,
	}
}

// Pipeline exposes the underlying pure pipeline.
func (s *Service) Pipeline() *Pipeline { return s.pipe }

// AnalyzeStored loads a video's metadata, snapshots, and channel stats and
// runs the full pipeline. A missing channel aggregate degrades to defaults
// inside the pipeline; a missing video is an error.
func (s *Service) AnalyzeStored(ctx context.Context, videoID string) (report.VideoAnalysis, error) {
	start := time.Now()

	in, err := s.loadInput(ctx, videoID)
	if err != nil {
		return report.VideoAnalysis{}, err
	}

	result := s.pipe.AnalyzeVideo(in.Meta, in.Series, in.Channel)
	s.record(ctx, "analyze", time.Since(start))
	return result, nil
}

// ExtractStoredEntities loads a video's metadata and runs NLP extraction.
func (s *Service) ExtractStoredEntities(ctx context.Context, videoID string) (model.EntityExtraction, error) {
	meta, err := s.store.GetVideo(ctx, videoID)
	if err != nil {
		return model.EntityExtraction{}, fmt.Errorf("analysis: load video %s: %w", videoID, err)
	}
	return s.pipe.Extractor().Extract(meta), nil
}

// TrendReport analyzes up to limit stored videos and persists the aggregate.
func (s *Service) TrendReport(ctx context.Context, limit int) (report.TrendReport, error) {
	start := time.Now()

	inputs, err := s.loadBatch(ctx, limit)
	if err != nil {
		return report.TrendReport{}, err
	}

	analyses := s.pipe.BatchAnalyze(ctx, inputs)
	r := report.BuildTrendReport(analyses)
	if err := s.persistReport(ctx, ReportKindTrends, r.ID, r.GeneratedAt, r); err != nil {
		return report.TrendReport{}, err
	}

	s.record(ctx, "trend_report", time.Since(start))
	s.logger.Info("trend report generated", "videos", r.VideoCount, "report_id", r.ID)
	return r, nil
}

// PredictionReport predicts up to limit stored videos and persists the aggregate.
func (s *Service) PredictionReport(ctx context.Context, limit int) (report.PredictionReport, error) {
	start := time.Now()

	inputs, err := s.loadBatch(ctx, limit)
	if err != nil {
		return report.PredictionReport{}, err
	}

	preds := s.pipe.Predictor().BatchPredict(ctx, inputs, 0)
	r := report.BuildPredictionReport(preds)
	if err := s.persistReport(ctx, ReportKindPredictions, r.ID, r.GeneratedAt, r); err != nil {
		return report.PredictionReport{}, err
	}

	s.record(ctx, "prediction_report", time.Since(start))
	s.logger.Info("prediction report generated", "videos", r.VideoCount, "report_id", r.ID)
	return r, nil
}

// NLPReport extracts entities from up to limit stored videos and persists
// the aggregate, including cross-video keyword trends.
func (s *Service) NLPReport(ctx context.Context, limit int) (report.NLPReport, []model.KeywordTrend, error) {
	start := time.Now()

	ids, err := s.store.ListVideoIDs(ctx, limit)
	if err != nil {
		return report.NLPReport{}, nil, fmt.Errorf("analysis: list videos: %w", err)
	}

	var extractions []model.EntityExtraction
	var entities []nlp.VideoEntities
	for _, id := range ids {
		meta, err := s.store.GetVideo(ctx, id)
		if err != nil {
			return report.NLPReport{}, nil, fmt.Errorf("analysis: load video %s: %w", id, err)
		}
		ex := s.pipe.Extractor().Extract(meta)
		extractions = append(extractions, ex)
		entities = append(entities, nlp.VideoEntities{Meta: meta, Extraction: ex})
	}

	r := report.BuildNLPReport(extractions)
	trends := nlp.AnalyzeKeywordTrends(entities, keywordTrendWindow, time.Now().UTC())
	if err := s.persistReport(ctx, ReportKindNLP, r.ID, r.GeneratedAt, r); err != nil {
		return report.NLPReport{}, nil, err
	}

	s.record(ctx, "nlp_report", time.Since(start))
	s.logger.Info("nlp report generated", "videos", r.VideoCount, "report_id", r.ID)
	return r, trends, nil
}

func (s *Service) loadInput(ctx context.Context, videoID string) (predict.Input, error) {
	meta, err := s.store.GetVideo(ctx, videoID)
	if err != nil {
		return predict.Input{}, fmt.Errorf("analysis: load video %s: %w", videoID, err)
	}
	series, err := s.store.ListSnapshots(ctx, videoID)
	if err != nil {
		return predict.Input{}, fmt.Errorf("analysis: load snapshots %s: %w", videoID, err)
	}

	var channel *model.ChannelStats
	if meta.ChannelID != "" {
		channel, err = s.store.GetChannelStats(ctx, meta.ChannelID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return predict.Input{}, fmt.Errorf("analysis: load channel %s: %w", meta.ChannelID, err)
		}
	}

	return predict.Input{Meta: meta, Series: series, Channel: channel}, nil
}

func (s *Service) loadBatch(ctx context.Context, limit int) ([]predict.Input, error) {
	ids, err := s.store.ListVideoIDs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("analysis: list videos: %w", err)
	}
	inputs := make([]predict.Input, 0, len(ids))
	for _, id := range ids {
		in, err := s.loadInput(ctx, id)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func (s *Service) persistReport(ctx context.Context, kind string, id uuid.UUID, generatedAt time.Time, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("analysis: marshal %s report: %w", kind, err)
	}
	stored := storage.StoredReport{
		ID:          id,
		Kind:        kind,
		GeneratedAt: generatedAt,
		Payload:     body,
	}
	if err := s.store.SaveReport(ctx, stored); err != nil {
		return fmt.Errorf("analysis: persist %s report: %w", kind, err)
	}
	return nil
}

func (s *Service) record(ctx context.Context, op string, elapsed time.Duration) {
	attrs := otelmetric.WithAttributes(attribute.String("op", op))
	if s.analyses != nil {
		s.analyses.Add(ctx, 1, attrs)
	}
	if s.durationMs != nil {
		s.durationMs.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	}
}
