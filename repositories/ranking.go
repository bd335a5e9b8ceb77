//go:generate go run go.uber.org/mock/mockgen -source=ranking.go -destination=../mocks/mock_ranking_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"debate-arena/domain"
	apperrors "debate-arena/errors"
)

type IRankingRepository interface {
	PutRanking(entry domain.RankingEntry) error
	GetRanking(id domain.UserID) (domain.RankingEntry, error)
	ListRankings() ([]domain.RankingEntry, error)
}

type RankingRepository struct {
	db *badger.DB
}

func NewRankingRepository(db *badger.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

type diskRanking struct {
	UserID string  `json:"user_id"`
	Score  float64 `json:"score"`
	Rating int     `json:"rating"`
	Joined uint64  `json:"joined"`
}

func rankingKey(id domain.UserID) []byte {
	return []byte(fmt.Sprintf("rank:%s", id))
}

func (r RankingRepository) PutRanking(entry domain.RankingEntry) error {
	bytes, err := json.Marshal(diskRanking{
		UserID: string(entry.UserID),
		Score:  entry.Score,
		Rating: entry.Rating,
		Joined: entry.Joined,
	})
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(rankingKey(entry.UserID), bytes)
	})
}

func (r RankingRepository) GetRanking(id domain.UserID) (domain.RankingEntry, error) {
	var stored diskRanking
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(rankingKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.RankingEntry{}, apperrors.ErrRankingUserNotFound
	}
	if err != nil {
		return domain.RankingEntry{}, err
	}
	return toRanking(stored), nil
}

// ListRankings returns every stored ranking entry, used to seed the in-memory
// table at boot.
func (r RankingRepository) ListRankings() ([]domain.RankingEntry, error) {
	var entries []domain.RankingEntry
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("rank:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var stored diskRanking
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &stored)
			})
			if err != nil {
				return err
			}
			entries = append(entries, toRanking(stored))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func toRanking(stored diskRanking) domain.RankingEntry {
	return domain.RankingEntry{
		UserID: domain.UserID(stored.UserID),
		Score:  stored.Score,
		Rating: stored.Rating,
		Joined: stored.Joined,
	}
}
