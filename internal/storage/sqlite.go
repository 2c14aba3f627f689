package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/boramlab/vlens/internal/model"
)

// sqliteSchema is applied on every open; all statements are idempotent.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS videos (
	video_id TEXT PRIMARY KEY,
	channel_id TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	published_at TIMESTAMP
);
CREATE TABLE IF NOT EXISTS snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id TEXT NOT NULL,
	captured_at TIMESTAMP NOT NULL,
	view_count INTEGER NOT NULL DEFAULT 0,
	like_count INTEGER NOT NULL DEFAULT 0,
	comment_count INTEGER NOT NULL DEFAULT 0,
	views_per_hour REAL,
	UNIQUE (video_id, captured_at)
);
CREATE INDEX IF NOT EXISTS idx_snapshots_video ON snapshots (video_id, captured_at);
CREATE TABLE IF NOT EXISTS channel_stats (
	channel_id TEXT PRIMARY KEY,
	subscriber_count INTEGER NOT NULL DEFAULT 0,
	avg_views REAL NOT NULL DEFAULT 0,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	generated_at TIMESTAMP NOT NULL,
	payload BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_kind ON reports (kind, generated_at);
`

// SQLite is the single-file Store used for local offline analysis.
type SQLite struct {
	conn   *sql.DB
	logger *slog.Logger
}

// NewSQLite opens (creating if needed) a SQLite database at path and applies
// the schema. ":memory:" works for tests.
func NewSQLite(path string, logger *slog.Logger) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("storage: create data directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: set journal mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: enable foreign keys: %w", err)
	}
	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}

	return &SQLite{conn: conn, logger: logger}, nil
}

func (s *SQLite) UpsertVideo(ctx context.Context, meta model.VideoMetadata) error {
	tags, err := json.Marshal(meta.Tags)
	if err != nil {
		return fmt.Errorf("storage: marshal tags: %w", err)
	}
	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO videos (video_id, channel_id, title, description, tags, published_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (video_id) DO UPDATE SET
			channel_id = excluded.channel_id,
			title = excluded.title,
			description = excluded.description,
			tags = excluded.tags,
			published_at = excluded.published_at`,
		meta.VideoID, meta.ChannelID, meta.Title, meta.Description, string(tags), meta.PublishedAt)
	if err != nil {
		return fmt.Errorf("storage: upsert video: %w", err)
	}
	return nil
}

func (s *SQLite) GetVideo(ctx context.Context, videoID string) (model.VideoMetadata, error) {
	var meta model.VideoMetadata
	var tags string
	var published sql.NullTime
	err := s.conn.QueryRowContext(ctx, `
		SELECT video_id, channel_id, title, description, tags, published_at
		FROM videos WHERE video_id = ?`, videoID,
	).Scan(&meta.VideoID, &meta.ChannelID, &meta.Title, &meta.Description, &tags, &published)
	if errors.Is(err, sql.ErrNoRows) {
		return model.VideoMetadata{}, ErrNotFound
	}
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("storage: get video: %w", err)
	}
	if published.Valid {
		meta.PublishedAt = published.Time
	}
	if err := json.Unmarshal([]byte(tags), &meta.Tags); err != nil {
		return model.VideoMetadata{}, fmt.Errorf("storage: unmarshal tags: %w", err)
	}
	return meta, nil
}

func (s *SQLite) ListVideoIDs(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT video_id FROM videos ORDER BY published_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: list videos: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: scan video id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *SQLite) InsertSnapshots(ctx context.Context, snaps []model.VideoSnapshot) (int, error) {
	inserted := 0
	for _, snap := range snaps {
		res, err := s.conn.ExecContext(ctx, `
			INSERT INTO snapshots (video_id, captured_at, view_count, like_count, comment_count, views_per_hour)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (video_id, captured_at) DO NOTHING`,
			snap.VideoID, snap.CapturedAt, snap.ViewCount, snap.LikeCount, snap.CommentCount, snap.ViewsPerHour)
		if err != nil {
			return inserted, fmt.Errorf("storage: insert snapshot: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

func (s *SQLite) ListSnapshots(ctx context.Context, videoID string) (model.Series, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT video_id, captured_at, view_count, like_count, comment_count, views_per_hour
		FROM snapshots WHERE video_id = ? ORDER BY captured_at ASC`, videoID)
	if err != nil {
		return nil, fmt.Errorf("storage: list snapshots: %w", err)
	}
	defer rows.Close()

	var out model.Series
	for rows.Next() {
		var snap model.VideoSnapshot
		var vph sql.NullFloat64
		if err := rows.Scan(&snap.VideoID, &snap.CapturedAt, &snap.ViewCount, &snap.LikeCount, &snap.CommentCount, &vph); err != nil {
			return nil, fmt.Errorf("storage: scan snapshot: %w", err)
		}
		if vph.Valid {
			v := vph.Float64
			snap.ViewsPerHour = &v
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (s *SQLite) UpsertChannelStats(ctx context.Context, channelID string, stats model.ChannelStats) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO channel_stats (channel_id, subscriber_count, avg_views, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (channel_id) DO UPDATE SET
			subscriber_count = excluded.subscriber_count,
			avg_views = excluded.avg_views,
			updated_at = excluded.updated_at`,
		channelID, stats.SubscriberCount, stats.AvgViews, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storage: upsert channel stats: %w", err)
	}
	return nil
}

func (s *SQLite) GetChannelStats(ctx context.Context, channelID string) (*model.ChannelStats, error) {
	var stats model.ChannelStats
	err := s.conn.QueryRowContext(ctx,
		`SELECT subscriber_count, avg_views FROM channel_stats WHERE channel_id = ?`, channelID,
	).Scan(&stats.SubscriberCount, &stats.AvgViews)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get channel stats: %w", err)
	}
	return &stats, nil
}

func (s *SQLite) SaveReport(ctx context.Context, r StoredReport) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO reports (id, kind, generated_at, payload) VALUES (?, ?, ?, ?)`,
		r.ID.String(), r.Kind, r.GeneratedAt, r.Payload)
	if err != nil {
		return fmt.Errorf("storage: save report: %w", err)
	}
	return nil
}

func (s *SQLite) LatestReport(ctx context.Context, kind string) (*StoredReport, error) {
	var r StoredReport
	var id string
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, kind, generated_at, payload FROM reports
		WHERE kind = ? ORDER BY generated_at DESC LIMIT 1`, kind,
	).Scan(&id, &r.Kind, &r.GeneratedAt, &r.Payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: latest report: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("storage: parse report id: %w", err)
	}
	r.ID = parsed
	return &r, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *SQLite) Close(_ context.Context) error {
	return s.conn.Close()
}
