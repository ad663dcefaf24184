package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"linkshort-go/internal/apperrors"
)

func TestRecordUnknownLinkFailsWithIntegrityError(t *testing.T) {
	db := newTestDB(t)
	store := NewStatisticStore(db)

	ctx := context.Background()

	_, err := store.Record(ctx, "no-such-link", strPtr("https://example.com"), nil)
	require.Error(t, err)
	require.True(t, apperrors.IsKind(err, apperrors.KindIntegrity), "expected integrity error, got %v", err)

	// 失败时不能留下任何行
	stats, err := store.ListByLink(ctx, "no-such-link")
	require.NoError(t, err)
	require.Empty(t, stats)
}

func TestListByLinkWithoutRecordsReturnsEmpty(t *testing.T) {
	db := newTestDB(t)
	store := NewStatisticStore(db)
	seedLink(t, db, "lonely")

	stats, err := store.ListByLink(context.Background(), "lonely")
	require.NoError(t, err)
	require.NotNil(t, stats)
	require.Empty(t, stats)
}

func TestListByLinkOnlyReturnsOwnRecords(t *testing.T) {
	db := newTestDB(t)
	store := NewStatisticStore(db)
	seedLink(t, db, "first")
	seedLink(t, db, "second")

	ctx := context.Background()

	_, err := store.Record(ctx, "first", nil, strPtr("curl/8.0"))
	require.NoError(t, err)
	_, err = store.Record(ctx, "second", nil, nil)
	require.NoError(t, err)

	stats, err := store.ListByLink(ctx, "first")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, "first", stats[0].LinkID)
}

func TestCountByLinkGroupsByRefererAndUserAgent(t *testing.T) {
	db := newTestDB(t)
	store := NewStatisticStore(db)
	seedLink(t, db, "abc123")

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Record(ctx, "abc123", strPtr("https://example.com"), strPtr("Mozilla/5.0"))
		require.NoError(t, err)
	}
	_, err := store.Record(ctx, "abc123", nil, nil)
	require.NoError(t, err)

	counted, err := store.CountByLink(ctx, "abc123")
	require.NoError(t, err)
	require.Len(t, counted, 2)

	var seenBrowser, seenAnonymous bool
	for _, c := range counted {
		if c.Referer != nil {
			require.Equal(t, int64(3), c.Amount)
			require.Equal(t, "https://example.com", *c.Referer)
			require.Equal(t, "Mozilla/5.0", *c.UserAgent)
			seenBrowser = true
		} else {
			require.Equal(t, int64(1), c.Amount)
			require.Nil(t, c.UserAgent)
			seenAnonymous = true
		}
	}
	require.True(t, seenBrowser)
	require.True(t, seenAnonymous)
}

func TestConcurrentRecordsAllPersisted(t *testing.T) {
	db := newTestDB(t)
	store := NewStatisticStore(db)
	seedLink(t, db, "busy")

	const n = 20

	var wg sync.WaitGroup
	ids := make(chan uint64, n)
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.Record(context.Background(), "busy", nil, strPtr("load-test"))
			if err != nil {
				errs <- err
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent record failed: %v", err)
	}

	seen := make(map[uint64]bool)
	for id := range ids {
		require.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	require.Len(t, seen, n)

	stats, err := store.ListByLink(context.Background(), "busy")
	require.NoError(t, err)
	require.Len(t, stats, n)
}
