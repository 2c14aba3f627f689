package vlens

import (
	"time"

	"github.com/boramlab/vlens/internal/model"
	"github.com/boramlab/vlens/internal/nlp"
)

// Snapshot is one measurement of a video's public counters at a point in time.
type Snapshot struct {
	VideoID      string
	CapturedAt   time.Time
	ViewCount    int64
	LikeCount    int64
	CommentCount int64

	// ViewsPerHour may be precomputed upstream. Nil means "derive from
	// consecutive snapshots".
	ViewsPerHour *float64
}

// Video holds the descriptive, largely static attributes of a video.
type Video struct {
	VideoID     string
	ChannelID   string
	Title       string
	Description string
	Tags        []string
	PublishedAt time.Time
}

// ChannelStats is the optional channel aggregate supplied alongside a video.
// Nil channel stats degrade to a small-channel default rather than failing.
type ChannelStats struct {
	SubscriberCount int64
	AvgViews        float64
}

// Metric selects which counter a series operation reads.
type Metric string

const (
	MetricViews    Metric = "views"
	MetricLikes    Metric = "likes"
	MetricComments Metric = "comments"
)

// TrendType classifies the direction of a metric series.
type TrendType string

const (
	TrendRising  TrendType = "rising"
	TrendFalling TrendType = "falling"
	TrendStable  TrendType = "stable"
	TrendViral   TrendType = "viral"
	TrendDying   TrendType = "dying"
)

// TrendResult is the output of trend detection over one metric series.
type TrendResult struct {
	Type         TrendType
	Slope        float64 // units per elapsed hour
	Acceleration float64 // second-half slope minus first-half slope
	Confidence   float64 // [0, 0.99]
	Prediction   Projection
}

// Projection is a one-step-ahead forecast with a 95% confidence interval.
type Projection struct {
	NextValue          float64
	ConfidenceInterval [2]float64 // [low, high], both >= 0
}

// PatternType names a detected series pattern.
type PatternType string

const (
	PatternSeasonal  PatternType = "seasonal"
	PatternTrend     PatternType = "trend"
	PatternIrregular PatternType = "irregular"
)

// PatternAnalysis is one detected pattern. Several may co-occur.
type PatternAnalysis struct {
	Type        PatternType
	Strength    float64 // [0, 1]
	PeriodHours int
	Description string
}

// ViralMoment is a merged run of consecutive intervals whose hourly view
// growth exceeded a multiple of the series average.
type ViralMoment struct {
	VideoID          string
	StartAt          time.Time
	EndAt            time.Time
	DurationHours    float64
	PeakHourlyGrowth float64
	ViewCount        int64
	LikeCount        int64
	CommentCount     int64
}

// Trajectory classifies a video's growth shape.
type Trajectory string

const (
	TrajectoryExponential Trajectory = "exponential"
	TrajectoryLinear      Trajectory = "linear"
	TrajectoryLogarithmic Trajectory = "logarithmic"
	TrajectoryPlateau     Trajectory = "plateau"
	TrajectoryDeclining   Trajectory = "declining"
)

// Prediction is the growth predictor's output for one video.
type Prediction struct {
	VideoID            string
	PredictedViews     float64
	PredictedLikes     float64
	ConfidenceInterval [2]float64
	ViralProbability   float64 // [0, 1]
	GrowthTrajectory   Trajectory
	HorizonDays        int
	PredictionDate     time.Time
	ModelVersion       string
}

// FeatureVector is the numeric input to growth prediction.
type FeatureVector struct {
	InitialVelocity         float64
	Acceleration            float64
	EngagementRate          float64
	TitleLength             int
	DescriptionLength       int
	TagCount                int
	PublishedHour           int
	IsWeekend               bool
	ChannelSubscribers      int64
	ChannelAvgViews         float64
	ThumbnailQuality        float64
	CategoryCompetitiveness float64
}

// Language is the dominant script of a video's text fields.
type Language string

const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"
	LanguageMixed   Language = "mixed"
)

// Sentiment is the lexicon-scored tone of a video's text fields.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Keyword is a term-frequency ranked token.
type Keyword struct {
	Term  string
	Count int
}

// Entities is the NLP extractor's output for one video.
type Entities struct {
	VideoID             string
	Language            Language
	Keywords            []Keyword
	Brands              []string
	People              []string
	Locations           []string
	Topics              []string
	Sentiment           Sentiment
	SentimentConfidence float64 // [0, 1]
	ExtractedAt         time.Time
}

// TrendDirection classifies a keyword's cross-video momentum.
type TrendDirection string

const (
	DirectionRising    TrendDirection = "RISING"
	DirectionDeclining TrendDirection = "DECLINING"
	DirectionStable    TrendDirection = "STABLE"
)

// CompetitionTier buckets how contested a keyword is by raw frequency.
type CompetitionTier string

const (
	CompetitionLow    CompetitionTier = "LOW"
	CompetitionMedium CompetitionTier = "MEDIUM"
	CompetitionHigh   CompetitionTier = "HIGH"
)

// KeywordTrend aggregates one keyword's behavior across a set of videos.
type KeywordTrend struct {
	Keyword     string
	Occurrences int
	VideoCount  int
	GrowthRate  float64 // occurrences per day of span
	Direction   TrendDirection
	Competition CompetitionTier
	Sentiment   Sentiment
	FirstSeen   time.Time
	LastSeen    time.Time
}

// VideoAnalysis bundles every per-video analysis result.
type VideoAnalysis struct {
	VideoID    string
	Trend      TrendResult
	Patterns   []PatternAnalysis
	Moments    []ViralMoment
	Prediction Prediction
}

// Conversion helpers between the public value types and internal/model.
// They live here because this is the only package that sees both sides.

func toInternalSnapshots(snapshots []Snapshot) model.Series {
	out := make(model.Series, len(snapshots))
	for i, s := range snapshots {
		out[i] = model.VideoSnapshot{
			VideoID:      s.VideoID,
			CapturedAt:   s.CapturedAt,
			ViewCount:    s.ViewCount,
			LikeCount:    s.LikeCount,
			CommentCount: s.CommentCount,
			ViewsPerHour: s.ViewsPerHour,
		}
	}
	return out
}

func toInternalVideo(v Video) model.VideoMetadata {
	return model.VideoMetadata{
		VideoID:     v.VideoID,
		ChannelID:   v.ChannelID,
		Title:       v.Title,
		Description: v.Description,
		Tags:        v.Tags,
		PublishedAt: v.PublishedAt,
	}
}

func toInternalChannel(c *ChannelStats) *model.ChannelStats {
	if c == nil {
		return nil
	}
	return &model.ChannelStats{
		SubscriberCount: c.SubscriberCount,
		AvgViews:        c.AvgViews,
	}
}

func toPublicTrend(t model.TrendResult) TrendResult {
	return TrendResult{
		Type:         TrendType(t.Type),
		Slope:        t.Slope,
		Acceleration: t.Acceleration,
		Confidence:   t.Confidence,
		Prediction: Projection{
			NextValue:          t.Prediction.NextValue,
			ConfidenceInterval: t.Prediction.ConfidenceInterval,
		},
	}
}

func toPublicPatterns(patterns []model.PatternAnalysis) []PatternAnalysis {
	out := make([]PatternAnalysis, len(patterns))
	for i, p := range patterns {
		out[i] = PatternAnalysis{
			Type:        PatternType(p.Type),
			Strength:    p.Strength,
			PeriodHours: p.PeriodHours,
			Description: p.Description,
		}
	}
	return out
}

func toPublicMoments(moments []model.ViralMoment) []ViralMoment {
	out := make([]ViralMoment, len(moments))
	for i, m := range moments {
		out[i] = ViralMoment{
			VideoID:          m.VideoID,
			StartAt:          m.StartAt,
			EndAt:            m.EndAt,
			DurationHours:    m.DurationHours,
			PeakHourlyGrowth: m.PeakHourlyGrowth,
			ViewCount:        m.Metrics.ViewCount,
			LikeCount:        m.Metrics.LikeCount,
			CommentCount:     m.Metrics.CommentCount,
		}
	}
	return out
}

func toPublicPrediction(p model.PredictionModel) Prediction {
	return Prediction{
		VideoID:            p.VideoID,
		PredictedViews:     p.PredictedViews,
		PredictedLikes:     p.PredictedLikes,
		ConfidenceInterval: p.ConfidenceInterval,
		ViralProbability:   p.ViralProbability,
		GrowthTrajectory:   Trajectory(p.GrowthTrajectory),
		HorizonDays:        p.HorizonDays,
		PredictionDate:     p.PredictionDate,
		ModelVersion:       p.ModelVersion,
	}
}

func toPublicFeatures(fv model.FeatureVector) FeatureVector {
	return FeatureVector{
		InitialVelocity:         fv.InitialVelocity,
		Acceleration:            fv.Acceleration,
		EngagementRate:          fv.EngagementRate,
		TitleLength:             fv.TitleLength,
		DescriptionLength:       fv.DescriptionLength,
		TagCount:                fv.TagCount,
		PublishedHour:           fv.PublishedHour,
		IsWeekend:               fv.IsWeekend,
		ChannelSubscribers:      fv.ChannelSubscribers,
		ChannelAvgViews:         fv.ChannelAvgViews,
		ThumbnailQuality:        fv.ThumbnailQuality,
		CategoryCompetitiveness: fv.CategoryCompetitiveness,
	}
}

func toPublicEntities(e model.EntityExtraction) Entities {
	keywords := make([]Keyword, len(e.Keywords))
	for i, k := range e.Keywords {
		keywords[i] = Keyword{Term: k.Term, Count: k.Count}
	}
	return Entities{
		VideoID:             e.VideoID,
		Language:            Language(e.Language),
		Keywords:            keywords,
		Brands:              e.Brands,
		People:              e.People,
		Locations:           e.Locations,
		Topics:              e.Topics,
		Sentiment:           Sentiment(e.Sentiment),
		SentimentConfidence: e.SentimentConfidence,
		ExtractedAt:         e.ExtractedAt,
	}
}

func toPublicKeywordTrends(trends []model.KeywordTrend) []KeywordTrend {
	out := make([]KeywordTrend, len(trends))
	for i, t := range trends {
		out[i] = KeywordTrend{
			Keyword:     t.Keyword,
			Occurrences: t.Occurrences,
			VideoCount:  t.VideoCount,
			GrowthRate:  t.GrowthRate,
			Direction:   TrendDirection(t.Direction),
			Competition: CompetitionTier(t.Competition),
			Sentiment:   Sentiment(t.Sentiment),
			FirstSeen:   t.FirstSeen,
			LastSeen:    t.LastSeen,
		}
	}
	return out
}

func toInternalEntities(videos []VideoWithEntities) []nlp.VideoEntities {
	out := make([]nlp.VideoEntities, len(videos))
	for i, v := range videos {
		out[i] = nlp.VideoEntities{
			Meta: toInternalVideo(v.Video),
			Extraction: model.EntityExtraction{
				VideoID:   v.Video.VideoID,
				Keywords:  toInternalKeywords(v.Entities.Keywords),
				Sentiment: model.Sentiment(v.Entities.Sentiment),
			},
		}
	}
	return out
}

func toInternalKeywords(keywords []Keyword) []model.Keyword {
	out := make([]model.Keyword, len(keywords))
	for i, k := range keywords {
		out[i] = model.Keyword{Term: k.Term, Count: k.Count}
	}
	return out
}
