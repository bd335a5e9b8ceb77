// Package debate owns the live state of every debate session: the
// turn-taking state machine and the ordered contribution ledger.
//
// All mutations go through the Registry, which keeps one lock per session so
// that unrelated debates never serialize on each other. Persistence is
// write-through against a key-value store abstraction; the in-memory state
// stays authoritative for reads.
package debate

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"debate-arena/domain"
	"debate-arena/errors"
)

//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=../mocks/mock_store.go -package=mocks

// Store is the persistence boundary of the coordinator. The registry is
// agnostic to what backs it: badger in production, a stub in tests.
type Store interface {
	PutSession(session domain.Session) error
	PutContribution(contribution domain.Contribution) error
}

// sessionState bundles everything guarded by one session's lock.
type sessionState struct {
	mu      sync.Mutex
	session *domain.Session
	ledger  []domain.Contribution
	nextSeq uint64
}

type Registry struct {
	log   *slog.Logger
	store Store

	mu       sync.RWMutex
	sessions map[domain.SessionID]*sessionState
}

func NewRegistry(log *slog.Logger, store Store) *Registry {
	return &Registry{
		log:      log,
		store:    store,
		sessions: make(map[domain.SessionID]*sessionState),
	}
}

// CreateSession assigns an id and registers a fresh session: turn index 0,
// round 1, empty ledger, active.
func (r *Registry) CreateSession(topic string, participants []domain.Participant) (domain.Session, error) {
	session, err := domain.NewSession(topic, participants)
	if err != nil {
		return domain.Session{}, err
	}

	r.mu.Lock()
	r.sessions[session.ID] = &sessionState{session: session}
	r.mu.Unlock()

	r.persistSession(*session)
	r.log.Info("session created",
		"session_id", session.ID,
		"topic", session.Topic,
		"participants", len(session.Participants),
	)
	return *session, nil
}

// Session returns a snapshot of an active session.
func (r *Registry) Session(id domain.SessionID) (domain.Session, error) {
	state, ok := r.lookup(id)
	if !ok {
		return domain.Session{}, errors.ErrSessionNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if !state.session.Active {
		return domain.Session{}, errors.ErrSessionNotFound
	}
	return snapshot(state.session), nil
}

// CloseSession marks the session inactive. The ledger stays readable so a
// finished debate can still be evaluated and replayed.
func (r *Registry) CloseSession(id domain.SessionID) error {
	state, ok := r.lookup(id)
	if !ok {
		return errors.ErrSessionNotFound
	}

	state.mu.Lock()
	state.session.Active = false
	closed := snapshot(state.session)
	state.mu.Unlock()

	r.persistSession(closed)
	r.log.Info("session closed", "session_id", id)
	return nil
}

// Submit validates one contribution, advances the turn for non-chat
// submissions, and appends to the ledger. Validation, turn transition, and
// append happen as a single unit under the session's lock, so sequence
// numbers are strictly increasing and gap-free and a rejected submission
// leaves no trace.
//
// The returned session snapshot reflects the state after the transition,
// which callers broadcast once the lock is released.
func (r *Registry) Submit(id domain.SessionID, sender domain.UserID, content string, chat bool, lang string) (domain.Contribution, domain.Session, error) {
	state, ok := r.lookup(id)
	if !ok {
		return domain.Contribution{}, domain.Session{}, errors.ErrSessionNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.session.Active {
		return domain.Contribution{}, domain.Session{}, errors.ErrSessionNotFound
	}
	if strings.TrimSpace(content) == "" {
		return domain.Contribution{}, domain.Session{}, errors.ErrEmptyContent
	}
	if err := state.session.SubmitTurn(sender, chat); err != nil {
		return domain.Contribution{}, domain.Session{}, err
	}

	state.nextSeq++
	contribution := domain.Contribution{
		ID:        uuid.New(),
		SessionID: id,
		SenderID:  sender,
		Content:   content,
		Lang:      lang,
		Chat:      chat,
		Seq:       state.nextSeq,
		CreatedAt: time.Now().UTC(),
	}
	state.ledger = append(state.ledger, contribution)

	after := snapshot(state.session)
	r.persistSession(after)
	r.persistContribution(contribution)
	return contribution, after, nil
}

// History returns the session's contributions in append order. It also works
// on closed sessions, so transcripts remain available for evaluation.
func (r *Registry) History(id domain.SessionID) ([]domain.Contribution, error) {
	state, ok := r.lookup(id)
	if !ok {
		return nil, errors.ErrSessionNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	out := make([]domain.Contribution, len(state.ledger))
	copy(out, state.ledger)
	return out, nil
}

func (r *Registry) lookup(id domain.SessionID) (*sessionState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.sessions[id]
	return state, ok
}

// persistSession is write-through and best-effort: the in-memory state is
// authoritative, a store failure must not fail the caller's request.
func (r *Registry) persistSession(session domain.Session) {
	if err := r.store.PutSession(session); err != nil {
		r.log.Warn("session persistence failed", "session_id", session.ID, "err", err)
	}
}

func (r *Registry) persistContribution(contribution domain.Contribution) {
	if err := r.store.PutContribution(contribution); err != nil {
		r.log.Warn("contribution persistence failed",
			"session_id", contribution.SessionID,
			"seq", contribution.Seq,
			"err", err,
		)
	}
}

func snapshot(s *domain.Session) domain.Session {
	out := *s
	out.Participants = make([]domain.Participant, len(s.Participants))
	copy(out.Participants, s.Participants)
	return out
}
