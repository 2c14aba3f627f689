// Package storage persists snapshot series, video metadata, channel
// aggregates, and generated reports. Two backends implement the same Store
// interface: Postgres (pgxpool) for the service deployment and SQLite
// (single file) for local offline analysis.
package storage

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/boramlab/vlens/internal/model"
)

// ErrNotFound is returned when a requested video or channel does not exist.
var ErrNotFound = errors.New("storage: not found")

// StoredReport is a generated report persisted as opaque JSON. The engine
// treats report payloads as write-once documents; queries only filter by
// kind and recency.
type StoredReport struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"` // "trends" | "predictions" | "nlp"
	GeneratedAt time.Time `json:"generated_at"`
	Payload     []byte    `json:"payload"`
}

// Store is the persistence boundary of the service shell. Snapshots are
// append-only; inserting a duplicate (video_id, captured_at) pair is a
// silent no-op so upstream pollers can re-deliver safely.
type Store interface {
	UpsertVideo(ctx context.Context, meta model.VideoMetadata) error
	GetVideo(ctx context.Context, videoID string) (model.VideoMetadata, error)
	ListVideoIDs(ctx context.Context, limit int) ([]string, error)

	InsertSnapshots(ctx context.Context, snaps []model.VideoSnapshot) (int, error)
	ListSnapshots(ctx context.Context, videoID string) (model.Series, error)

	UpsertChannelStats(ctx context.Context, channelID string, stats model.ChannelStats) error
	GetChannelStats(ctx context.Context, channelID string) (*model.ChannelStats, error)

	SaveReport(ctx context.Context, r StoredReport) error
	LatestReport(ctx context.Context, kind string) (*StoredReport, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open creates a Store from a DSN. postgres:// and postgresql:// DSNs get the
// pgx backend; anything else is treated as a SQLite file path.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgres(ctx, dsn, logger)
	}
	return NewSQLite(strings.TrimPrefix(dsn, "sqlite://"), logger)
}
