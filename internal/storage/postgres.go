package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boramlab/vlens/internal/model"
)

// Postgres is the pgxpool-backed Store used by the service deployment.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgres connects a pool and verifies it with a ping.
func NewPostgres(ctx context.Context, dsn string, logger *slog.Logger) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}
	return &Postgres{pool: pool, logger: logger}, nil
}

// Pool exposes the underlying pool for migrations and tests.
func (p *Postgres) Pool() *pgxpool.Pool { return p.pool }

// RunMigrations applies every .sql file in migrationsFS in name order,
// tracking applied files in schema_migrations so re-runs are no-ops.
func (p *Postgres) RunMigrations(ctx context.Context, migrationsFS fs.FS) error {
	if _, err := p.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return fmt.Errorf("storage: create schema_migrations: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, ".")
	if err != nil {
		return fmt.Errorf("storage: read migrations dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && len(e.Name()) > 4 && e.Name()[len(e.Name())-4:] == ".sql" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var applied bool
		if err := p.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE filename = $1)`, name,
		).Scan(&applied); err != nil {
			return fmt.Errorf("storage: check migration %s: %w", name, err)
		}
		if applied {
			continue
		}

		sqlBytes, err := fs.ReadFile(migrationsFS, name)
		if err != nil {
			return fmt.Errorf("storage: read migration %s: %w", name, err)
		}
		if _, err := p.pool.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("storage: apply migration %s: %w", name, err)
		}
		if _, err := p.pool.Exec(ctx,
			`INSERT INTO schema_migrations (filename) VALUES ($1)`, name); err != nil {
			return fmt.Errorf("storage: record migration %s: %w", name, err)
		}
		p.logger.Info("migration applied", "file", name)
	}
	return nil
}

func (p *Postgres) UpsertVideo(ctx context.Context, meta model.VideoMetadata) error {
	tags, err := json.Marshal(meta.Tags)
	if err != nil {
		return fmt.Errorf("storage: marshal tags: %w", err)
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO videos (video_id, channel_id, title, description, tags, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (video_id) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			tags = EXCLUDED.tags,
			published_at = EXCLUDED.published_at`,
		meta.VideoID, meta.ChannelID, meta.Title, meta.Description, tags, meta.PublishedAt)
	if err != nil {
		return fmt.Errorf("storage: upsert video: %w", err)
	}
	return nil
}

func (p *Postgres) GetVideo(ctx context.Context, videoID string) (model.VideoMetadata, error) {
	var meta model.VideoMetadata
	var tags []byte
	err := p.pool.QueryRow(ctx, `
		SELECT video_id, channel_id, title, description, tags, published_at
		FROM videos WHERE video_id = $1`, videoID,
	).Scan(&meta.VideoID, &meta.ChannelID, &meta.Title, &meta.Description, &tags, &meta.PublishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.VideoMetadata{}, ErrNotFound
	}
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("storage: get video: %w", err)
	}
	if err := json.Unmarshal(tags, &meta.Tags); err != nil {
		return model.VideoMetadata{}, fmt.Errorf("storage: unmarshal tags: %w", err)
	}
	return meta, nil
}

func (p *Postgres) ListVideoIDs(ctx context.Context, limit int) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT video_id FROM videos ORDER BY published_at DESC NULLS LAST LIMIT $1`, limit)
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

func (p *Postgres) InsertSnapshots(ctx context.Context, snaps []model.VideoSnapshot) (int, error) {
	inserted := 0
	for _, s := range snaps {
		tag, err := p.pool.Exec(ctx, `
			INSERT INTO snapshots (video_id, captured_at, view_count, like_count, comment_count, views_per_hour)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (video_id, captured_at) DO NOTHING`,
			s.VideoID, s.CapturedAt, s.ViewCount, s.LikeCount, s.CommentCount, s.ViewsPerHour)
		if err != nil {
			return inserted, fmt.Errorf("storage: insert snapshot: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (p *Postgres) ListSnapshots(ctx context.Context, videoID string) (model.Series, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT video_id, captured_at, view_count, like_count, comment_count, views_per_hour
		FROM snapshots WHERE video_id = $1 ORDER BY captured_at ASC`, videoID)
	if err != nil {
		return nil, fmt.Errorf("storage: list snapshots: %w", err)
	}
	defer rows.Close()

	var out model.Series
	for rows.Next() {
		var s model.VideoSnapshot
		if err := rows.Scan(&s.VideoID, &s.CapturedAt, &s.ViewCount, &s.LikeCount, &s.CommentCount, &s.ViewsPerHour); err != nil {
			return nil, fmt.Errorf("storage: scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *Postgres) UpsertChannelStats(ctx context.Context, channelID string, stats model.ChannelStats) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO channel_stats (channel_id, subscriber_count, avg_views, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (channel_id) DO UPDATE SET
			subscriber_count = EXCLUDED.subscriber_count,
			avg_views = EXCLUDED.avg_views,
			updated_at = EXCLUDED.updated_at`,
		channelID, stats.SubscriberCount, stats.AvgViews, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storage: upsert channel stats: %w", err)
	}
	return nil
}

func (p *Postgres) GetChannelStats(ctx context.Context, channelID string) (*model.ChannelStats, error) {
	var stats model.ChannelStats
	err := p.pool.QueryRow(ctx,
		`SELECT subscriber_count, avg_views FROM channel_stats WHERE channel_id = $1`, channelID,
	).Scan(&stats.SubscriberCount, &stats.AvgViews)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get channel stats: %w", err)
	}
	return &stats, nil
}

func (p *Postgres) SaveReport(ctx context.Context, r StoredReport) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO reports (id, kind, generated_at, payload)
		VALUES ($1, $2, $3, $4)`,
		r.ID, r.Kind, r.GeneratedAt, r.Payload)
	if err != nil {
		return fmt.Errorf("storage: save report: %w", err)
	}
	return nil
}

func (p *Postgres) LatestReport(ctx context.Context, kind string) (*StoredReport, error) {
	var r StoredReport
	err := p.pool.QueryRow(ctx, `
		SELECT id, kind, generated_at, payload FROM reports
		WHERE kind = $1 ORDER BY generated_at DESC LIMIT 1`, kind,
	).Scan(&r.ID, &r.Kind, &r.GeneratedAt, &r.Payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: latest report: %w", err)
	}
	return &r, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close(_ context.Context) error {
	p.pool.Close()
	return nil
}
