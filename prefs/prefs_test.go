package prefs

import (
	"context"
	"testing"

	"vitrine/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string       { return &s }
func sliceptr(s []string) *[]string { return &s }

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	s := NewStore(store.NewMemory(), 0)

	got := s.Load(context.Background(), "sid", "blog")

	assert.Equal(t, Defaults(), got)
	assert.Equal(t, ViewGrid, got.ViewMode)
	assert.Equal(t, SortNewest, got.SortOrder)
	assert.NotNil(t, got.SelectedCategories)
}

func TestLoadDefaultsWhenCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, "prefs:sid:blog", []byte("%%% not json"), 0))

	s := NewStore(kv, 0)
	got := s.Load(ctx, "sid", "blog")

	assert.Equal(t, Defaults(), got)
}

func TestUpdateMergesAndPersistsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewStore(store.NewMemory(), 0)

	_, err := s.Update(ctx, "sid", "blog", Patch{SearchQuery: strptr("react")})
	require.NoError(t, err)
	updated, err := s.Update(ctx, "sid", "blog", Patch{SortOrder: strptr(SortOldest)})
	require.NoError(t, err)

	// Both changes survive: writes are full snapshots, merged in memory.
	assert.Equal(t, "react", updated.SearchQuery)
	assert.Equal(t, SortOldest, updated.SortOrder)

	reloaded := s.Load(ctx, "sid", "blog")
	assert.Equal(t, updated, reloaded)
}

func TestUpdateEmptyPatchIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStore(store.NewMemory(), 0)

	_, err := s.Update(ctx, "sid", "blog", Patch{
		SearchQuery:        strptr("go"),
		SelectedCategories: sliceptr([]string{"web"}),
	})
	require.NoError(t, err)
	before := s.Load(ctx, "sid", "blog")

	_, err = s.Update(ctx, "sid", "blog", Patch{})
	require.NoError(t, err)

	assert.Equal(t, before, s.Load(ctx, "sid", "blog"))
}

func TestPreferencesIsolatedPerCollectionAndSession(t *testing.T) {
	ctx := context.Background()
	s := NewStore(store.NewMemory(), 0)

	_, err := s.Update(ctx, "sid-a", "blog", Patch{SearchQuery: strptr("react")})
	require.NoError(t, err)

	assert.Equal(t, "", s.Load(ctx, "sid-a", "portfolio").SearchQuery)
	assert.Equal(t, "", s.Load(ctx, "sid-b", "blog").SearchQuery)
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	assert.False(t, Patch{ViewMode: strptr(ViewList)}.IsEmpty())
}
