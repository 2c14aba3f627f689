package model

import "time"

// VideoMetadata holds the descriptive, largely static attributes of a video.
// Read-only feature input; ownership stays with the ingestion layer.
type VideoMetadata struct {
	VideoID     string    `json:"video_id"`
	ChannelID   string    `json:"channel_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"published_at"`
}

// ChannelStats is the optional channel aggregate supplied alongside a video.
// When absent, feature extraction falls back to DefaultChannelStats.
type ChannelStats struct {
	SubscriberCount int64   `json:"subscriber_count"`
	AvgViews        float64 `json:"avg_views"`
}

// DefaultChannelStats is the graceful-degradation fallback used when no
// channel context is available. An unknown channel is treated as small
// rather than failing the prediction.
var DefaultChannelStats = ChannelStats{
	SubscriberCount: 1000,
	AvgViews:        100,
}
