// Package library filter/ranking engine.
package library

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/ClinScribe/NoteFlow/internal/models"
)

// Recommendation scoring weights.
const (
	// ScorePerSharedTag is added for each card tag that also appears on a favorited card.
	ScorePerSharedTag = 2
	// ScoreRecentlyViewed is added when the card appears in the recently-viewed list.
	ScoreRecentlyViewed = 1
)

// filterCacheSize bounds the per-engine result cache. Consecutive identical requests
// always hit, which is the correctness-relevant property; the extra slots just absorb
// quick filter toggles.
const filterCacheSize = 8

// FilterRequest carries every input that can change a filter result. Anything added
// here must also flow into the cache signature (the signature is derived structurally
// from this data, so new fields are picked up automatically).
type FilterRequest struct {
	Section        string
	Query          string
	Tags           []string
	FavOnly        bool
	RecMode        bool
	Favorites      map[string]bool
	RecentlyViewed []string
}

// FilterResult is the ranked card list plus the badge counts and recommendation
// scores computed alongside it. Results are shared across callers via the cache and
// must be treated as read-only.
type FilterResult struct {
	Cards []models.Card `json:"cards"`
	// SectionCounts is computed over the post-section, post-favorite, pre-tag,
	// pre-query base set: the "all" key is the base total and each leaf section id
	// maps to its sub-total. Badges therefore show what broadening the text/tag
	// filter would reveal.
	SectionCounts map[string]int `json:"section_counts"`
	RecScores     map[string]int `json:"rec_scores,omitempty"`
}

// cacheSignature mirrors every filter input in normalized form. Hashing this struct
// (rather than concatenating strings by hand) means a forgotten field is a compile-time
// visible omission here, not a silent stale-cache bug.
type cacheSignature struct {
	LibraryLen     int
	Section        string
	Query          string
	Tags           []string
	FavOnly        bool
	RecMode        bool
	Favorites      []string
	RecentlyViewed []string
}

// Engine owns an immutable library snapshot and its section index, and serves
// memoized filter/ranking queries over it. The library is threaded in at construction
// time; there is no module-level mutable state.
type Engine struct {
	library []models.Card
	index   *Index

	mu    sync.Mutex
	cache *lru.Cache[uint64, *FilterResult]
}

// NewEngine creates a filter engine over a library snapshot. The snapshot is copied;
// callers may not mutate cards after loading.
func NewEngine(cards []models.Card, index *Index) *Engine {
	snapshot := make([]models.Card, len(cards))
	copy(snapshot, cards)
	cache, _ := lru.New[uint64, *FilterResult](filterCacheSize)
	slog.Debug("Engine.NewEngine: library engine created", "cards", len(snapshot))
	return &Engine{library: snapshot, index: index, cache: cache}
}

// Index returns the engine's section index.
func (e *Engine) Index() *Index {
	return e.index
}

// Library returns the engine's immutable card snapshot.
func (e *Engine) Library() []models.Card {
	return e.library
}

// Filter applies the section restriction, favorite filter, tag filter (AND semantics,
// case-sensitive exact match) and query tokens (AND semantics, lowercased), then
// orders the result alphabetically or by recommendation score. Identical requests
// return the identical cached result object.
func (e *Engine) Filter(req FilterRequest) *FilterResult {
	sig := e.signature(req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if cached, ok := e.cache.Get(sig); ok {
		slog.Debug("Engine.Filter: cache hit", "signature", sig)
		return cached
	}

	result := e.compute(req)
	e.cache.Add(sig, result)
	slog.Debug("Engine.Filter: computed", "signature", sig, "matched", len(result.Cards))
	return result
}

func (e *Engine) signature(req FilterRequest) uint64 {
	sig := cacheSignature{
		LibraryLen:     len(e.library),
		Section:        req.Section,
		Query:          normalizeQuery(req.Query),
		Tags:           sortedCopy(req.Tags),
		FavOnly:        req.FavOnly,
		RecMode:        req.RecMode,
		Favorites:      sortedKeys(req.Favorites),
		RecentlyViewed: append([]string(nil), req.RecentlyViewed...),
	}
	hash, err := hashstructure.Hash(sig, hashstructure.FormatV2, nil)
	if err != nil {
		// hashstructure only fails on unsupported types; the signature struct is all
		// plain data, so treat a failure as a cache miss rather than an error path.
		slog.Warn("Engine.signature: hash failed, bypassing cache", "error", err)
		return 0
	}
	return hash
}

func (e *Engine) compute(req FilterRequest) *FilterResult {
	leafSet := toSet(e.index.ResolveSectionFilter(req.Section))

	// Base set: section + favorite restriction only. Counts come from here so badge
	// totals stay independent of the current text/tag filter.
	base := make([]models.Card, 0, len(e.library))
	for _, card := range e.library {
		if leafSet != nil && !leafSet[card.SectionID] {
			continue
		}
		if req.FavOnly && !req.Favorites[card.ID] {
			continue
		}
		base = append(base, card)
	}

	counts := map[string]int{SectionAll: len(base)}
	for _, card := range base {
		counts[card.SectionID]++
	}

	tokens := strings.Fields(strings.ToLower(req.Query))
	matched := make([]models.Card, 0, len(base))
	for _, card := range base {
		if !hasAllTags(card, req.Tags) {
			continue
		}
		if !matchesTokens(card, tokens, req.Favorites) {
			continue
		}
		matched = append(matched, card)
	}

	result := &FilterResult{Cards: matched, SectionCounts: counts}
	if req.RecMode {
		result.RecScores = e.recScores(req.Favorites, req.RecentlyViewed)
		rankRecommended(matched, result.RecScores)
	} else {
		sortAlphabetical(matched)
	}
	return result
}

// hasAllTags reports whether every active tag is present on the card. Tag matching is
// case-sensitive and exact; AND semantics, so adding a tag never widens the result.
func hasAllTags(card models.Card, tags []string) bool {
	for _, tag := range tags {
		found := false
		for _, ct := range card.Tags {
			if ct == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchesTokens applies every query token (AND semantics). Tokens support three
// directives: tag:<x> (exact membership in lowercased tags), section:<x> (substring of
// the lowercased section id) and is:fav (favorites membership); anything else is a
// plain substring test against the card haystack.
func matchesTokens(card models.Card, tokens []string, favorites map[string]bool) bool {
	if len(tokens) == 0 {
		return true
	}
	haystack := cardHaystack(card)
	for _, token := range tokens {
		switch {
		case strings.HasPrefix(token, "tag:"):
			want := strings.TrimPrefix(token, "tag:")
			if !hasLoweredTag(card, want) {
				return false
			}
		case strings.HasPrefix(token, "section:"):
			want := strings.TrimPrefix(token, "section:")
			if !strings.Contains(strings.ToLower(card.SectionID), want) {
				return false
			}
		case token == "is:fav":
			if !favorites[card.ID] {
				return false
			}
		default:
			if !strings.Contains(haystack, token) {
				return false
			}
		}
	}
	return true
}

func cardHaystack(card models.Card) string {
	return strings.ToLower(card.Title + " " + card.Summary + " " + strings.Join(card.Tags, " "))
}

func hasLoweredTag(card models.Card, want string) bool {
	for _, tag := range card.Tags {
		if strings.ToLower(tag) == want {
			return true
		}
	}
	return false
}

// recScores computes the recommendation score for every card in the library: points
// per tag shared with the user's favorited cards, plus a point for recently-viewed
// membership.
func (e *Engine) recScores(favorites map[string]bool, recentlyViewed []string) map[string]int {
	favTags := make(map[string]bool)
	for _, card := range e.library {
		if favorites[card.ID] {
			for _, tag := range card.Tags {
				favTags[tag] = true
			}
		}
	}
	recent := toSet(recentlyViewed)

	scores := make(map[string]int, len(e.library))
	for _, card := range e.library {
		score := 0
		for _, tag := range card.Tags {
			if favTags[tag] {
				score += ScorePerSharedTag
			}
		}
		if recent[card.ID] {
			score += ScoreRecentlyViewed
		}
		scores[card.ID] = score
	}
	return scores
}

// rankRecommended stable-sorts cards by descending score, tie-broken alphabetically.
func rankRecommended(cards []models.Card, scores map[string]int) {
	sort.SliceStable(cards, func(i, j int) bool {
		si, sj := scores[cards[i].ID], scores[cards[j].ID]
		if si != sj {
			return si > sj
		}
		return lessTitle(cards[i], cards[j])
	})
}

func sortAlphabetical(cards []models.Card) {
	sort.SliceStable(cards, func(i, j int) bool { return lessTitle(cards[i], cards[j]) })
}

func lessTitle(a, b models.Card) bool {
	return strings.ToLower(a.Title) < strings.ToLower(b.Title)
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

func toSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
