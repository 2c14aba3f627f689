package model

import "time"

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
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// EntityExtraction is the NLP extractor's output for one video.
type EntityExtraction struct {
	VideoID             string    `json:"video_id"`
	Language            Language  `json:"language"`
	Keywords            []Keyword `json:"keywords"`
	Brands              []string  `json:"brands"`
	People              []string  `json:"people"`
	Locations           []string  `json:"locations"`
	Topics              []string  `json:"topics"`
	Sentiment           Sentiment `json:"sentiment"`
	SentimentConfidence float64   `json:"sentiment_confidence"` // [0, 1]
	ExtractedAt         time.Time `json:"extracted_at"`
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

// KeywordTrend aggregates one keyword's behavior across a recency window of
// videos: frequency, sentiment lean, and a crude occurrences-per-day growth
// rate.
type KeywordTrend struct {
	Keyword     string          `json:"keyword"`
	Occurrences int             `json:"occurrences"`
	VideoCount  int             `json:"video_count"`
	GrowthRate  float64         `json:"growth_rate"` // occurrences per day of span
	Direction   TrendDirection  `json:"direction"`
	Competition CompetitionTier `json:"competition"`
	Sentiment   Sentiment       `json:"sentiment"`
	FirstSeen   time.Time       `json:"first_seen"`
	LastSeen    time.Time       `json:"last_seen"`
}
