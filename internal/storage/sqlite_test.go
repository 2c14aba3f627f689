package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boramlab/vlens/internal/model"
	"github.com/boramlab/vlens/internal/storage"
	"github.com/boramlab/vlens/internal/testutil"
)

func newMemoryStore(t *testing.T) *storage.SQLite {
	t.Helper()
	store, err := storage.NewSQLite(":memory:", testutil.TestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func TestSQLiteVideoRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	meta := model.VideoMetadata{
		VideoID:     "vid-1",
		ChannelID:   "chan-1",
		Title:       "갤럭시 언박싱",
		Description: "새 스마트폰 리뷰",
		Tags:        []string{"갤럭시", "리뷰"},
		PublishedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.UpsertVideo(ctx, meta))

	got, err := store.GetVideo(ctx, "vid-1")
	require.NoError(t, err)
	assert.Equal(t, meta.VideoID, got.VideoID)
	assert.Equal(t, meta.ChannelID, got.ChannelID)
	assert.Equal(t, meta.Title, got.Title)
	assert.Equal(t, meta.Tags, got.Tags)
	assert.True(t, got.PublishedAt.Equal(meta.PublishedAt))

	// Upsert replaces, never duplicates.
	meta.Title = "갤럭시 언박싱 (업데이트)"
	require.NoError(t, store.UpsertVideo(ctx, meta))
	got, err = store.GetVideo(ctx, "vid-1")
	require.NoError(t, err)
	assert.Equal(t, "갤럭시 언박싱 (업데이트)", got.Title)

	ids, err := store.ListVideoIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"vid-1"}, ids)
}

func TestSQLiteGetVideoNotFound(t *testing.T) {
	store := newMemoryStore(t)

	_, err := store.GetVideo(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLiteListVideoIDsLimit(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.UpsertVideo(ctx, model.VideoMetadata{
			VideoID:     string(rune('a' + i)),
			PublishedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	ids, err := store.ListVideoIDs(ctx, 3)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	// Newest first.
	assert.Equal(t, []string{"e", "d", "c"}, ids)
}

func TestSQLiteInsertSnapshotsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	vph := 150.0
	snaps := []model.VideoSnapshot{
		{VideoID: "vid-1", CapturedAt: t0, ViewCount: 100, LikeCount: 10, CommentCount: 2},
		{VideoID: "vid-1", CapturedAt: t0.Add(time.Hour), ViewCount: 250, LikeCount: 25, CommentCount: 5, ViewsPerHour: &vph},
	}

	n, err := store.InsertSnapshots(ctx, snaps)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Re-delivery of the same batch is a silent no-op.
	n, err = store.InsertSnapshots(ctx, snaps)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := store.ListSnapshots(ctx, "vid-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].CapturedAt.Before(got[1].CapturedAt))
	assert.Equal(t, int64(100), got[0].ViewCount)
	assert.Nil(t, got[0].ViewsPerHour)
	require.NotNil(t, got[1].ViewsPerHour)
	assert.Equal(t, 150.0, *got[1].ViewsPerHour)
}

func TestSQLiteListSnapshotsSorted(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// Insert out of order.
	_, err := store.InsertSnapshots(ctx, []model.VideoSnapshot{
		{VideoID: "vid-1", CapturedAt: t0.Add(2 * time.Hour), ViewCount: 300},
		{VideoID: "vid-1", CapturedAt: t0, ViewCount: 100},
		{VideoID: "vid-1", CapturedAt: t0.Add(time.Hour), ViewCount: 200},
		{VideoID: "other", CapturedAt: t0, ViewCount: 999},
	})
	require.NoError(t, err)

	got, err := store.ListSnapshots(ctx, "vid-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range got {
		assert.Equal(t, "vid-1", got[i].VideoID)
		assert.Equal(t, int64(100*(i+1)), got[i].ViewCount)
	}
}

func TestSQLiteChannelStats(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	_, err := store.GetChannelStats(ctx, "chan-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.UpsertChannelStats(ctx, "chan-1", model.ChannelStats{SubscriberCount: 5000, AvgViews: 1200}))
	got, err := store.GetChannelStats(ctx, "chan-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.SubscriberCount)
	assert.Equal(t, 1200.0, got.AvgViews)

	require.NoError(t, store.UpsertChannelStats(ctx, "chan-1", model.ChannelStats{SubscriberCount: 6000, AvgViews: 1300}))
	got, err = store.GetChannelStats(ctx, "chan-1")
	require.NoError(t, err)
	assert.Equal(t, int64(6000), got.SubscriberCount)
}

func TestSQLiteReports(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	_, err := store.LatestReport(ctx, "trends")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	older := storage.StoredReport{ID: uuid.New(), Kind: "trends", GeneratedAt: t0, Payload: []byte(`{"v":1}`)}
	newer := storage.StoredReport{ID: uuid.New(), Kind: "trends", GeneratedAt: t0.Add(time.Hour), Payload: []byte(`{"v":2}`)}
	other := storage.StoredReport{ID: uuid.New(), Kind: "nlp", GeneratedAt: t0.Add(2 * time.Hour), Payload: []byte(`{"v":3}`)}
	for _, r := range []storage.StoredReport{older, newer, other} {
		require.NoError(t, store.SaveReport(ctx, r))
	}

	got, err := store.LatestReport(ctx, "trends")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.Equal(t, "trends", got.Kind)
	assert.JSONEq(t, `{"v":2}`, string(got.Payload))
}

func TestSQLitePing(t *testing.T) {
	store := newMemoryStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
