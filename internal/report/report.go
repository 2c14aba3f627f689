// Package report rolls per-video analysis outputs up into batch-level
// distribution summaries for the dashboard layer: trend histograms, trajectory
// counts, top keywords and topics, growth leaders and decliners.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/boramlab/vlens/internal/analysis/predict"
	"github.com/boramlab/vlens/internal/model"
)

// defaultTopN caps leader/decliner/keyword lists in the reports.
const defaultTopN = 10

// VideoAnalysis bundles every detector's output for one video.
type VideoAnalysis struct {
	VideoID    string                  `json:"video_id"`
	Trend      model.TrendResult       `json:"trend"`
	Patterns   []model.PatternAnalysis `json:"patterns"`
	Moments    []model.ViralMoment     `json:"viral_moments"`
	Prediction model.PredictionModel   `json:"prediction"`
}

// VideoSlope names a video together with its fitted slope, for leader and
// decliner rankings.
type VideoSlope struct {
	VideoID string  `json:"video_id"`
	Slope   float64 `json:"slope"`
}

// LabelCount is a generic (label, count) pair for distribution summaries.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TrendReport summarizes trend and pattern detection across a video batch.
type TrendReport struct {
	ID               uuid.UUID                 `json:"id"`
	GeneratedAt      time.Time                 `json:"generated_at"`
	VideoCount       int                       `json:"video_count"`
	TrendCounts      map[model.TrendType]int   `json:"trend_counts"`
	PatternCounts    map[model.PatternType]int `json:"pattern_counts"`
	ViralMomentCount int                       `json:"viral_moment_count"`
	Leaders          []VideoSlope              `json:"leaders"`   // steepest positive slopes
	Decliners        []VideoSlope              `json:"decliners"` // steepest negative slopes
}

// BuildTrendReport aggregates per-video analyses into a TrendReport.
func BuildTrendReport(analyses []VideoAnalysis) TrendReport {
	r := TrendReport{
		ID:            uuid.New(),
		GeneratedAt:   time.Now().UTC(),
		VideoCount:    len(analyses),
		TrendCounts:   make(map[model.TrendType]int),
		PatternCounts: make(map[model.PatternType]int),
	}

	var slopes []VideoSlope
	for _, a := range analyses {
		r.TrendCounts[a.Trend.Type]++
		for _, p := range a.Patterns {
			r.PatternCounts[p.Type]++
		}
		r.ViralMomentCount += len(a.Moments)
		slopes = append(slopes, VideoSlope{VideoID: a.VideoID, Slope: a.Trend.Slope})
	}

	sort.Slice(slopes, func(i, j int) bool { return slopes[i].Slope > slopes[j].Slope })
	for _, s := range slopes {
		if s.Slope > 0 && len(r.Leaders) < defaultTopN {
			r.Leaders = append(r.Leaders, s)
		}
	}
	for i := len(slopes) - 1; i >= 0; i-- {
		if slopes[i].Slope < 0 && len(r.Decliners) < defaultTopN {
			r.Decliners = append(r.Decliners, slopes[i])
		}
	}

	return r
}

// PredictionReport summarizes a prediction batch.
type PredictionReport struct {
	ID                  uuid.UUID                `json:"id"`
	GeneratedAt         time.Time                `json:"generated_at"`
	VideoCount          int                      `json:"video_count"`
	TrajectoryCounts    map[model.Trajectory]int `json:"trajectory_counts"`
	AvgViralProbability float64                  `json:"avg_viral_probability"`
	TotalPredictedViews float64                  `json:"total_predicted_views"`
	ViralCandidates     []model.PredictionModel  `json:"viral_candidates"`
}

// BuildPredictionReport aggregates a prediction batch into a report, keeping
// the top viral candidates (probability > 0.5, descending).
func BuildPredictionReport(preds []model.PredictionModel) PredictionReport {
	r := PredictionReport{
		ID:               uuid.New(),
		GeneratedAt:      time.Now().UTC(),
		VideoCount:       len(preds),
		TrajectoryCounts: make(map[model.Trajectory]int),
	}

	var probSum float64
	for _, p := range preds {
		r.TrajectoryCounts[p.GrowthTrajectory]++
		r.TotalPredictedViews += p.PredictedViews
		probSum += p.ViralProbability
	}
	if len(preds) > 0 {
		r.AvgViralProbability = probSum / float64(len(preds))
	}
	r.ViralCandidates = predict.FindViralCandidates(preds, defaultTopN)

	return r
}

// NLPReport summarizes entity extraction across a video batch.
type NLPReport struct {
	ID              uuid.UUID               `json:"id"`
	GeneratedAt     time.Time               `json:"generated_at"`
	VideoCount      int                     `json:"video_count"`
	LanguageCounts  map[model.Language]int  `json:"language_counts"`
	SentimentCounts map[model.Sentiment]int `json:"sentiment_counts"`
	TopKeywords     []model.Keyword         `json:"top_keywords"`
	TopTopics       []LabelCount            `json:"top_topics"`
	TopBrands       []LabelCount            `json:"top_brands"`
}

// BuildNLPReport aggregates extraction results into an NLPReport.
func BuildNLPReport(extractions []model.EntityExtraction) NLPReport {
	r := NLPReport{
		ID:              uuid.New(),
		GeneratedAt:     time.Now().UTC(),
		VideoCount:      len(extractions),
		LanguageCounts:  make(map[model.Language]int),
		SentimentCounts: make(map[model.Sentiment]int),
	}

	keywordCounts := make(map[string]int)
	topicCounts := make(map[string]int)
	brandCounts := make(map[string]int)
	for _, e := range extractions {
		r.LanguageCounts[e.Language]++
		r.SentimentCounts[e.Sentiment]++
		for _, kw := range e.Keywords {
			keywordCounts[kw.Term] += kw.Count
		}
		for _, t := range e.Topics {
			topicCounts[t]++
		}
		for _, b := range e.Brands {
			brandCounts[b]++
		}
	}

	for term, count := range keywordCounts {
		r.TopKeywords = append(r.TopKeywords, model.Keyword{Term: term, Count: count})
	}
	sort.Slice(r.TopKeywords, func(i, j int) bool {
		if r.TopKeywords[i].Count != r.TopKeywords[j].Count {
			return r.TopKeywords[i].Count > r.TopKeywords[j].Count
		}
		return r.TopKeywords[i].Term < r.TopKeywords[j].Term
	})
	if len(r.TopKeywords) > defaultTopN {
		r.TopKeywords = r.TopKeywords[:defaultTopN]
	}

	r.TopTopics = topLabels(topicCounts, defaultTopN)
	r.TopBrands = topLabels(brandCounts, defaultTopN)

	return r
}

func topLabels(counts map[string]int, n int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
