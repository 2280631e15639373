package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litdebate/backend/internal/domain"
)

func testRecord(id string) *Record {
	return &Record{
		ID:        id,
		Status:    StatusPending,
		Message:   "Analysis task created",
		CreatedAt: time.Now(),
		Book:      domain.BookInfo{Title: "Holes", Author: "Louis Sachar", ARLevel: 4.6},
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, testRecord("j1")))

	record, err := store.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, record.Status)

	record.Status = StatusProcessing
	record.Progress = 0.1
	require.NoError(t, store.Update(ctx, record))

	updated, err := store.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, updated.Status)
	assert.Equal(t, 0.1, updated.Progress)

	require.NoError(t, store.Delete(ctx, "j1"))
	_, err = store.Get(ctx, "j1")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestMemoryStoreUpdateUnknown(t *testing.T) {
	store := NewMemoryStore()
	err := store.Update(context.Background(), testRecord("missing"))
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestMemoryStoreClonesRecords(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	record := testRecord("j1")
	require.NoError(t, store.Create(ctx, record))

	// Mutating the caller's copy must not affect the stored record.
	record.Status = StatusFailed

	stored, err := store.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, testRecord("j1")))
	require.NoError(t, store.Create(ctx, testRecord("j2")))

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSweepRetention(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	fresh := testRecord("fresh")
	fresh.CreatedAt = time.Now().Add(-23 * time.Hour)
	require.NoError(t, store.Create(ctx, fresh))

	stale := testRecord("stale")
	stale.Status = StatusCompleted
	stale.CreatedAt = time.Now().Add(-25 * time.Hour)
	require.NoError(t, store.Create(ctx, stale))

	staleFailed := testRecord("stale-failed")
	staleFailed.Status = StatusFailed
	staleFailed.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, store.Create(ctx, staleFailed))

	removed, err := Sweep(ctx, store, RetentionWindow)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "stale")
	assert.ErrorIs(t, err, ErrJobNotFound)
	_, err = store.Get(ctx, "stale-failed")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestRecordTerminal(t *testing.T) {
	assert.False(t, (&Record{Status: StatusPending}).Terminal())
	assert.False(t, (&Record{Status: StatusProcessing}).Terminal())
	assert.True(t, (&Record{Status: StatusCompleted}).Terminal())
	assert.True(t, (&Record{Status: StatusFailed}).Terminal())
}
