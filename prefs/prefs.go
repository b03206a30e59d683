// Package prefs persists per-collection view preferences (filter, search,
// sort, view mode) for a browser session. Writes are always full snapshots
// so the in-memory and durable copies cannot diverge.
package prefs

import (
	"context"
	"time"

	"vitrine/store"
)

// View modes and sort orders.
const (
	ViewGrid = "grid"
	ViewList = "list"

	SortNewest = "newest"
	SortOldest = "oldest"
)

// ViewPreferences is the persisted UI state of one named collection.
type ViewPreferences struct {
	ViewMode             string   `json:"view_mode"`
	SelectedCategories   []string `json:"selected_categories"`
	SelectedTechnologies []string `json:"selected_technologies"`
	SortOrder            string   `json:"sort_order"`
	SearchQuery          string   `json:"search_query"`
}

// Patch carries partial updates; nil fields are left untouched.
type Patch struct {
	ViewMode             *string   `json:"view_mode"`
	SelectedCategories   *[]string `json:"selected_categories"`
	SelectedTechnologies *[]string `json:"selected_technologies"`
	SortOrder            *string   `json:"sort_order"`
	SearchQuery          *string   `json:"search_query"`
}

// Defaults returns the preferences used before a user has touched anything.
func Defaults() ViewPreferences {
	return ViewPreferences{
		ViewMode:             ViewGrid,
		SelectedCategories:   []string{},
		SelectedTechnologies: []string{},
		SortOrder:            SortNewest,
		SearchQuery:          "",
	}
}

// Store reads and writes preferences keyed by session and collection name.
type Store struct {
	store store.Store
	ttl   time.Duration
}

func NewStore(s store.Store, ttl time.Duration) *Store {
	return &Store{store: s, ttl: ttl}
}

func prefKey(sid, collection string) string {
	return "prefs:" + sid + ":" + collection
}

// Load returns the persisted preferences for a collection. Absent or
// unparseable data falls back to defaults, never an error.
func (s *Store) Load(ctx context.Context, sid, collection string) ViewPreferences {
	prefs := Defaults()
	found, err := store.GetJSON(ctx, s.store, prefKey(sid, collection), &prefs)
	if err != nil || !found {
		return Defaults()
	}
	// Backfill fields a stale record may lack.
	if prefs.ViewMode == "" {
		prefs.ViewMode = ViewGrid
	}
	if prefs.SortOrder == "" {
		prefs.SortOrder = SortNewest
	}
	if prefs.SelectedCategories == nil {
		prefs.SelectedCategories = []string{}
	}
	if prefs.SelectedTechnologies == nil {
		prefs.SelectedTechnologies = []string{}
	}
	return prefs
}

// Update merges patch into the current preferences and persists the whole
// resulting snapshot. An empty patch leaves persisted state unchanged.
func (s *Store) Update(ctx context.Context, sid, collection string, patch Patch) (ViewPreferences, error) {
	prefs := s.Load(ctx, sid, collection)

	if patch.ViewMode != nil {
		prefs.ViewMode = *patch.ViewMode
	}
	if patch.SelectedCategories != nil {
		prefs.SelectedCategories = *patch.SelectedCategories
	}
	if patch.SelectedTechnologies != nil {
		prefs.SelectedTechnologies = *patch.SelectedTechnologies
	}
	if patch.SortOrder != nil {
		prefs.SortOrder = *patch.SortOrder
	}
	if patch.SearchQuery != nil {
		prefs.SearchQuery = *patch.SearchQuery
	}

	if err := store.SetJSON(ctx, s.store, prefKey(sid, collection), prefs, s.ttl); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.ViewMode == nil &&
		p.SelectedCategories == nil &&
		p.SelectedTechnologies == nil &&
		p.SortOrder == nil &&
		p.SearchQuery == nil
}
