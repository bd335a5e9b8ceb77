package scoring

import (
	"log/slog"
	"sort"
	"sync"

	"debate-arena/domain"
	"debate-arena/errors"
)

//go:generate go run go.uber.org/mock/mockgen -source=table.go -destination=../mocks/mock_ranking_store.go -package=mocks

// RankingStore persists ranking entries; the table is write-through against
// it the same way the session registry is against its store.
type RankingStore interface {
	PutRanking(entry domain.RankingEntry) error
}

// Table is the in-memory ranking table. Entries are mutated only by the
// scoring pipeline; reads get value copies.
type Table struct {
	log   *slog.Logger
	store RankingStore

	mu         sync.RWMutex
	entries    map[domain.UserID]*domain.RankingEntry
	order      []domain.UserID // insertion order, tie-break for OrderedView
	nextJoined uint64
}

func NewTable(log *slog.Logger, store RankingStore) *Table {
	return &Table{
		log:     log,
		store:   store,
		entries: make(map[domain.UserID]*domain.RankingEntry),
	}
}

// Restore seeds the table from persisted entries at boot. Entries are
// replayed by their Joined sequence so tie-breaks survive a restart
// regardless of the store's key order.
func (t *Table) Restore(entries []domain.RankingEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sorted := make([]domain.RankingEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Joined < sorted[j].Joined
	})

	for _, entry := range sorted {
		e := entry
		if _, ok := t.entries[e.UserID]; !ok {
			t.order = append(t.order, e.UserID)
		}
		t.entries[e.UserID] = &e
		if e.Joined >= t.nextJoined {
			t.nextJoined = e.Joined + 1
		}
	}
}

// Update applies a cumulative score delta. An unseen user is initialized at
// the delta value as-is, negative or not; from then on negative deltas clamp
// the result at 0 and positive deltas add unconditionally. Returns the
// resulting score.
func (t *Table) Update(userID domain.UserID, delta float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, seen := t.entries[userID]
	switch {
	case !seen:
		entry = t.get(userID)
		entry.Score = delta
	case delta < 0:
		entry.Score = max(0, entry.Score+delta)
	default:
		entry.Score += delta
	}
	t.persist(*entry)
	return entry.Score
}

// SetRating records a new Elo rating after an evaluated debate.
func (t *Table) SetRating(userID domain.UserID, rating int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry := t.get(userID)
	entry.Rating = rating
	t.persist(*entry)
}

// Rating returns the user's Elo rating, defaulting for unseen users.
func (t *Table) Rating(userID domain.UserID) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if entry, ok := t.entries[userID]; ok {
		return entry.Rating
	}
	return domain.DefaultRating
}

// Entry returns a user's ranking record.
func (t *Table) Entry(userID domain.UserID) (domain.RankingEntry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.entries[userID]
	if !ok {
		return domain.RankingEntry{}, errors.ErrRankingUserNotFound
	}
	return *entry, nil
}

// OrderedView returns all entries sorted by score descending; ties keep
// insertion order.
func (t *Table) OrderedView() []domain.RankingEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.RankingEntry, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.entries[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// get returns the live entry for a user, creating it on first sight.
// Callers must hold the write lock.
func (t *Table) get(userID domain.UserID) *domain.RankingEntry {
	entry, ok := t.entries[userID]
	if !ok {
		entry = &domain.RankingEntry{UserID: userID, Rating: domain.DefaultRating, Joined: t.nextJoined}
		t.nextJoined++
		t.entries[userID] = entry
		t.order = append(t.order, userID)
	}
	return entry
}

func (t *Table) persist(entry domain.RankingEntry) {
	if err := t.store.PutRanking(entry); err != nil {
		t.log.Warn("ranking persistence failed", "user_id", entry.UserID, "err", err)
	}
}
