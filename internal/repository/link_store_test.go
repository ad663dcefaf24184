package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"linkshort-go/internal/apperrors"
	"linkshort-go/internal/model"
)

func TestLinkStoreCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	store := NewLinkStore(db)

	ctx := context.Background()

	err := store.Create(ctx, &model.Link{ID: "abc123", TargetURL: "https://example.com/page"})
	require.NoError(t, err)

	link, err := store.FindByID(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, link)
	require.Equal(t, "https://example.com/page", link.TargetURL)

	missing, err := store.FindByID(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestLinkStoreCreateDuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	store := NewLinkStore(db)

	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &model.Link{ID: "dup", TargetURL: "https://a.example.com"}))

	err := store.Create(ctx, &model.Link{ID: "dup", TargetURL: "https://b.example.com"})
	require.Error(t, err)
	require.True(t, apperrors.IsKind(err, apperrors.KindConflict), "expected conflict error, got %v", err)
}

func TestLinkStoreUpdateTarget(t *testing.T) {
	db := newTestDB(t)
	store := NewLinkStore(db)

	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &model.Link{ID: "upd", TargetURL: "https://old.example.com"}))

	link, err := store.UpdateTarget(ctx, "upd", "https://new.example.com")
	require.NoError(t, err)
	require.Equal(t, "https://new.example.com", link.TargetURL)

	reloaded, err := store.FindByID(ctx, "upd")
	require.NoError(t, err)
	require.Equal(t, "https://new.example.com", reloaded.TargetURL)
}

func TestLinkStoreUpdateMissingLink(t *testing.T) {
	db := newTestDB(t)
	store := NewLinkStore(db)

	_, err := store.UpdateTarget(context.Background(), "ghost", "https://example.com")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 404, appErr.Code)
}

func TestLinkStoreListIDs(t *testing.T) {
	db := newTestDB(t)
	store := NewLinkStore(db)

	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &model.Link{ID: "one", TargetURL: "https://example.com/1"}))
	require.NoError(t, store.Create(ctx, &model.Link{ID: "two", TargetURL: "https://example.com/2"}))

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"one", "two"}, ids)
}
