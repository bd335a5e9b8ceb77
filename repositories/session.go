//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=../mocks/mock_session_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"

	"debate-arena/domain"
	apperrors "debate-arena/errors"
)

type ISessionRepository interface {
	PutSession(session domain.Session) error
	GetSession(id domain.SessionID) (domain.Session, error)
}

type SessionRepository struct {
	db *badger.DB
}

func NewSessionRepository(db *badger.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// diskSession is the stored representation of a session, decoupled from the
// domain type so the domain can evolve without breaking stored records.
type diskSession struct {
	ID           string            `json:"id"`
	Topic        string            `json:"topic"`
	Participants []diskParticipant `json:"participants"`
	TurnIndex    int               `json:"turn_index"`
	Round        int               `json:"round"`
	Active       bool              `json:"active"`
	CreatedAt    time.Time         `json:"created_at"`
}

type diskParticipant struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func sessionKey(id domain.SessionID) []byte {
	return []byte(fmt.Sprintf("session:%s", id))
}

// PutSession stores the latest snapshot of a session, overwriting any
// previous one.
func (r SessionRepository) PutSession(session domain.Session) error {
	bytes, err := json.Marshal(fromSession(session))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(session.ID), bytes)
	})
}

func (r SessionRepository) GetSession(id domain.SessionID) (domain.Session, error) {
	var stored diskSession
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.Session{}, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	return toSession(stored), nil
}

func fromSession(session domain.Session) diskSession {
	return diskSession{
		ID:    string(session.ID),
		Topic: session.Topic,
		Participants: lo.Map(session.Participants, func(p domain.Participant, _ int) diskParticipant {
			return diskParticipant{ID: string(p.ID), Username: p.Username}
		}),
		TurnIndex: session.TurnIndex,
		Round:     session.Round,
		Active:    session.Active,
		CreatedAt: session.CreatedAt,
	}
}

func toSession(stored diskSession) domain.Session {
	return domain.Session{
		ID:    domain.SessionID(stored.ID),
		Topic: stored.Topic,
		Participants: lo.Map(stored.Participants, func(p diskParticipant, _ int) domain.Participant {
			return domain.Participant{ID: domain.UserID(p.ID), Username: p.Username}
		}),
		TurnIndex: stored.TurnIndex,
		Round:     stored.Round,
		Active:    stored.Active,
		CreatedAt: stored.CreatedAt,
	}
}
