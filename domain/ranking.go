package domain

// DefaultRating is the Elo rating assigned to users before their first
// evaluated debate.
const DefaultRating = 1500

// RankingEntry is the persistent skill record of one user.
// Score accumulates per-debate evaluation deltas: the first delta sets it
// as-is (negative included), after which it is floored at zero. Rating is the
// Elo rating updated after each evaluated debate. Joined is the sequence in
// which the user first entered the ranking table and breaks score ties.
type RankingEntry struct {
	UserID UserID
	Score  float64
	Rating int
	Joined uint64
}
