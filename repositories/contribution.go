//go:generate go run go.uber.org/mock/mockgen -source=contribution.go -destination=../mocks/mock_contribution_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"debate-arena/domain"
)

type IContributionRepository interface {
	PutContribution(contribution domain.Contribution) error
	SessionContributions(id domain.SessionID) ([]domain.Contribution, error)
}

type ContributionRepository struct {
	db *badger.DB
}

func NewContributionRepository(db *badger.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

type diskContribution struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	Lang      string    `json:"lang,omitempty"`
	Chat      bool      `json:"chat"`
	Seq       uint64    `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
}

// contributionKey embeds the zero-padded sequence number so a prefix scan
// returns a session's contributions in ledger order.
func contributionKey(sessionID domain.SessionID, seq uint64, id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("contrib:%s:%019d:%s", sessionID, seq, id))
}

func contributionPrefix(sessionID domain.SessionID) []byte {
	return []byte(fmt.Sprintf("contrib:%s:", sessionID))
}

func (r ContributionRepository) PutContribution(contribution domain.Contribution) error {
	bytes, err := json.Marshal(fromContribution(contribution))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(contributionKey(contribution.SessionID, contribution.Seq, contribution.ID), bytes)
	})
}

// SessionContributions returns the full stored ledger of a session, oldest
// first. An unknown session yields an empty slice, not an error.
func (r ContributionRepository) SessionContributions(id domain.SessionID) ([]domain.Contribution, error) {
	var contributions []domain.Contribution
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = contributionPrefix(id)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var stored diskContribution
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &stored)
			})
			if err != nil {
				return err
			}
			contribution, err := toContribution(stored)
			if err != nil {
				return err
			}
			contributions = append(contributions, contribution)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contributions, nil
}

func fromContribution(contribution domain.Contribution) diskContribution {
	return diskContribution{
		ID:        contribution.ID.String(),
		SessionID: string(contribution.SessionID),
		SenderID:  string(contribution.SenderID),
		Content:   contribution.Content,
		Lang:      contribution.Lang,
		Chat:      contribution.Chat,
		Seq:       contribution.Seq,
		CreatedAt: contribution.CreatedAt,
	}
}

func toContribution(stored diskContribution) (domain.Contribution, error) {
	id, err := uuid.Parse(stored.ID)
	if err != nil {
		return domain.Contribution{}, err
	}
	return domain.Contribution{
		ID:        id,
		SessionID: domain.SessionID(stored.SessionID),
		SenderID:  domain.UserID(stored.SenderID),
		Content:   stored.Content,
		Lang:      stored.Lang,
		Chat:      stored.Chat,
		Seq:       stored.Seq,
		CreatedAt: stored.CreatedAt,
	}, nil
}
