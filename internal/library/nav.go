// Package library navigation state store.
package library

import (
	"log/slog"
	"sync"
	"time"
)

// Navigation constants.
const (
	// DefaultDebounceInterval is how long the query draft sits before committing.
	DefaultDebounceInterval = 250 * time.Millisecond
	// MaxRecentlyViewed caps the recently-viewed list.
	MaxRecentlyViewed = 20
)

// NavOption configures a NavState.
type NavOption func(*NavState)

// WithDebounceInterval overrides the query commit debounce interval.
func WithDebounceInterval(d time.Duration) NavOption {
	return func(n *NavState) {
		if d > 0 {
			n.debounce = d
		}
	}
}

// NavState holds the library navigation/filter state: committed and draft query text,
// selected section, active tag set, favorite-only and recommendation toggles, and the
// recently-viewed list. Keystrokes update the draft synchronously; a single-slot
// debounce timer commits the draft into the query, and filtering always reads the
// committed value.
type NavState struct {
	engine   *Engine
	debounce time.Duration

	mu                sync.Mutex
	timer             *time.Timer
	query             string
	queryDraft        string
	selectedSectionID string
	activeTags        map[string]bool
	favOnly           bool
	recMode           bool
	recentlyViewed    []string
}

// NewNavState creates a navigation store over a filter engine.
func NewNavState(engine *Engine, opts ...NavOption) *NavState {
	n := &NavState{
		engine:            engine,
		debounce:          DefaultDebounceInterval,
		selectedSectionID: SectionAll,
		activeTags:        make(map[string]bool),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SetQueryDraft records a keystroke. The draft updates synchronously for input echo;
// the committed query only changes once the debounce timer fires. Each call resets the
// single timer slot, so only the most recent scheduled commit runs.
func (n *NavState) SetQueryDraft(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queryDraft = text
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.debounce, n.commitDraft)
}

func (n *NavState) commitDraft() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.query = n.queryDraft
	slog.Debug("NavState.commitDraft: query committed", "query", n.query)
}

// FlushQuery commits the pending draft immediately, cancelling any scheduled commit.
func (n *NavState) FlushQuery() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.query = n.queryDraft
}

// SelectSection sets the selected section id. An empty id selects all sections.
func (n *NavState) SelectSection(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if id == "" {
		id = SectionAll
	}
	n.selectedSectionID = id
}

// ToggleTag flips a tag in the active tag set and reports whether it is now active.
func (n *NavState) ToggleTag(tag string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.activeTags[tag] {
		delete(n.activeTags, tag)
		return false
	}
	n.activeTags[tag] = true
	return true
}

// SetFavOnly sets the favorites-only toggle.
func (n *NavState) SetFavOnly(on bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.favOnly = on
}

// SetRecMode sets the recommended-ranking toggle.
func (n *NavState) SetRecMode(on bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recMode = on
}

// RecordView pushes a card id to the front of the recently-viewed list, removing any
// prior occurrence and capping the list. Re-selecting the current front card is a
// no-op.
func (n *NavState) RecordView(cardID string) {
	if cardID == "" {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.recentlyViewed) > 0 && n.recentlyViewed[0] == cardID {
		return
	}
	next := make([]string, 0, len(n.recentlyViewed)+1)
	next = append(next, cardID)
	for _, id := range n.recentlyViewed {
		if id != cardID {
			next = append(next, id)
		}
	}
	if len(next) > MaxRecentlyViewed {
		next = next[:MaxRecentlyViewed]
	}
	n.recentlyViewed = next
}

// RecentlyViewed returns a copy of the recently-viewed list, most recent first.
func (n *NavState) RecentlyViewed() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.recentlyViewed...)
}

// Filter runs the engine over the current committed state plus the caller's favorites
// set. The query draft is never consulted here.
func (n *NavState) Filter(favorites map[string]bool) *FilterResult {
	n.mu.Lock()
	req := FilterRequest{
		Section:        n.selectedSectionID,
		Query:          n.query,
		Tags:           sortedKeys(n.activeTags),
		FavOnly:        n.favOnly,
		RecMode:        n.recMode,
		Favorites:      favorites,
		RecentlyViewed: append([]string(nil), n.recentlyViewed...),
	}
	n.mu.Unlock()
	return n.engine.Filter(req)
}

// Snapshot returns the externally visible navigation state.
func (n *NavState) Snapshot() NavSnapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return NavSnapshot{
		Query:             n.query,
		QueryDraft:        n.queryDraft,
		SelectedSectionID: n.selectedSectionID,
		ActiveTags:        sortedKeys(n.activeTags),
		FavOnly:           n.favOnly,
		RecMode:           n.recMode,
		RecentlyViewedIDs: append([]string(nil), n.recentlyViewed...),
	}
}

// NavSnapshot is the read-only view of a NavState.
type NavSnapshot struct {
	Query             string   `json:"query"`
	QueryDraft        string   `json:"query_draft"`
	SelectedSectionID string   `json:"selected_section_id"`
	ActiveTags        []string `json:"active_tags"`
	FavOnly           bool     `json:"fav_only"`
	RecMode           bool     `json:"rec_mode"`
	RecentlyViewedIDs []string `json:"recently_viewed_ids"`
}
