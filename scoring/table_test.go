package scoring

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"debate-arena/domain"
	"debate-arena/errors"
)

type noopRankingStore struct{}

func (noopRankingStore) PutRanking(domain.RankingEntry) error { return nil }

func newTestTable() *Table {
	return NewTable(slog.Default(), noopRankingStore{})
}

func TestTable_Negative_Delta_Clamps_At_Zero(t *testing.T) {
	req := require.New(t)
	table := newTestTable()
	table.Update("user-1", 3)

	score := table.Update("user-1", -5)

	req.Zero(score)
}

func TestTable_Positive_Delta_Adds_Unconditionally(t *testing.T) {
	req := require.New(t)
	table := newTestTable()

	table.Update("user-1", 3)
	score := table.Update("user-1", 4.5)

	req.Equal(7.5, score)
}

func TestTable_Unseen_User_Initialized_At_Delta(t *testing.T) {
	req := require.New(t)
	table := newTestTable()

	// Negative first delta has no prior floor to violate
	req.Equal(-2.0, table.Update("user-1", -2))
}

func TestTable_Floor_Applies_Only_After_First_Sight(t *testing.T) {
	req := require.New(t)
	table := newTestTable()

	// Given: a user whose first delta left a negative score
	req.Equal(-2.0, table.Update("user-1", -2))

	// Then: later negative deltas clamp at zero, they never dig deeper
	req.Equal(0.0, table.Update("user-1", -1))
	req.Equal(3.0, table.Update("user-1", 3))
}

func TestTable_OrderedView_Sorts_By_Score_Descending(t *testing.T) {
	req := require.New(t)
	table := newTestTable()
	table.Update("user-1", 30)
	table.Update("user-2", 40)
	table.Update("user-3", 20)

	view := table.OrderedView()

	req.Len(view, 3)
	req.Equal(domain.UserID("user-2"), view[0].UserID)
	req.Equal(domain.UserID("user-1"), view[1].UserID)
	req.Equal(domain.UserID("user-3"), view[2].UserID)
}

func TestTable_OrderedView_Breaks_Ties_By_Insertion_Order(t *testing.T) {
	req := require.New(t)
	table := newTestTable()
	table.Update("late", 10)
	table.Update("early", 25)
	table.Update("tied-first", 25)

	view := table.OrderedView()

	// "early" and "tied-first" are tied; "early" was inserted before
	req.Equal(domain.UserID("early"), view[0].UserID)
	req.Equal(domain.UserID("tied-first"), view[1].UserID)
	req.Equal(domain.UserID("late"), view[2].UserID)
}

func TestTable_Rating_Defaults_For_Unseen_Users(t *testing.T) {
	req := require.New(t)
	table := newTestTable()

	req.Equal(domain.DefaultRating, table.Rating("nobody"))
}

func TestTable_Entry_Unknown_User(t *testing.T) {
	req := require.New(t)
	table := newTestTable()

	_, err := table.Entry("nobody")

	req.ErrorIs(err, errors.ErrRankingUserNotFound)
}

func TestTable_Restore_Preserves_Tie_Break_Order(t *testing.T) {
	req := require.New(t)

	// Given: a table where "zed" entered before "abe" and both are tied
	recorder := &recordingRankingStore{entries: map[domain.UserID]domain.RankingEntry{}}
	table := NewTable(slog.Default(), recorder)
	table.Update("zed", 25)
	table.Update("abe", 25)
	table.Update("mid", 10)

	// When: a fresh table is seeded from the store, whose listing order is
	// lexicographic rather than insertion order
	restored := NewTable(slog.Default(), noopRankingStore{})
	restored.Restore([]domain.RankingEntry{
		recorder.entries["abe"],
		recorder.entries["mid"],
		recorder.entries["zed"],
	})

	// Then: "zed" still wins the tie, and new users keep joining after
	view := restored.OrderedView()
	req.Equal(domain.UserID("zed"), view[0].UserID)
	req.Equal(domain.UserID("abe"), view[1].UserID)
	req.Equal(domain.UserID("mid"), view[2].UserID)

	restored.Update("new-user", 25)
	view = restored.OrderedView()
	req.Equal(domain.UserID("new-user"), view[2].UserID)
}

type recordingRankingStore struct {
	entries map[domain.UserID]domain.RankingEntry
}

func (s *recordingRankingStore) PutRanking(entry domain.RankingEntry) error {
	s.entries[entry.UserID] = entry
	return nil
}

func TestTable_Restore_Seeds_Entries(t *testing.T) {
	req := require.New(t)
	table := newTestTable()

	table.Restore([]domain.RankingEntry{
		{UserID: "user-1", Score: 12, Rating: 1532},
		{UserID: "user-2", Score: 8, Rating: 1468},
	})

	entry, err := table.Entry("user-1")
	req.NoError(err)
	req.Equal(1532, entry.Rating)
	req.Equal(12.0, entry.Score)
	req.Equal(1468, table.Rating("user-2"))
}
