package model

// FeatureVector is the fixed-size numeric input to growth prediction. It is
// derived, ephemeral, and recomputed on every prediction call, never
// persisted by the engine.
type FeatureVector struct {
	// Series-derived signals.
	InitialVelocity float64 `json:"initial_velocity"` // views/hour at the earliest snapshot
	Acceleration    float64 `json:"acceleration"`     // mean consecutive velocity delta
	EngagementRate  float64 `json:"engagement_rate"`  // (likes+comments)/views at the latest snapshot

	// Metadata signals.
	TitleLength       int  `json:"title_length"`
	DescriptionLength int  `json:"description_length"`
	TagCount          int  `json:"tag_count"`
	PublishedHour     int  `json:"published_hour"`
	IsWeekend         bool `json:"is_weekend"`

	// Channel signals.
	ChannelSubscribers int64   `json:"channel_subscribers"`
	ChannelAvgViews    float64 `json:"channel_avg_views"`

	// Placeholder signals kept for model-shape stability until real image
	// analysis and category data are plumbed through.
	ThumbnailQuality        float64 `json:"thumbnail_quality"`
	CategoryCompetitiveness float64 `json:"category_competitiveness"`
}
