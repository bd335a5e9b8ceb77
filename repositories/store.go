package repositories

import "debate-arena/domain"

// DebateStore bundles the session and contribution repositories behind the
// single write-through interface the coordinator persists against.
type DebateStore struct {
	sessions      ISessionRepository
	contributions IContributionRepository
}

func NewDebateStore(sessions ISessionRepository, contributions IContributionRepository) *DebateStore {
	return &DebateStore{sessions: sessions, contributions: contributions}
}

func (s DebateStore) PutSession(session domain.Session) error {
	return s.sessions.PutSession(session)
}

func (s DebateStore) PutContribution(contribution domain.Contribution) error {
	return s.contributions.PutContribution(contribution)
}
