package domain

import (
	"time"

	"github.com/google/uuid"

	"debate-arena/errors"
)

// SessionID is an opaque unique session token.
type SessionID string

func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Session holds the turn-taking state of one debate.
//
// A Session is not safe for concurrent use on its own: it is owned by the
// session registry, which serializes all mutations behind a per-session lock.
// The participant order is fixed at creation; TurnIndex always references a
// valid participant; Round increments exactly once per full rotation.
type Session struct {
	ID           SessionID
	Topic        string
	Participants []Participant
	TurnIndex    int
	Round        int
	Active       bool
	CreatedAt    time.Time
}

// NewSession creates an active session with turn index 0 and round 1.
// A single participant is allowed as a lobby placeholder, but no turn can
// rotate until a second participant is present.
func NewSession(topic string, participants []Participant) (*Session, error) {
	if len(participants) < 1 {
		return nil, errors.ErrInvalidSession
	}
	return &Session{
		ID:           NewSessionID(),
		Topic:        topic,
		Participants: participants,
		TurnIndex:    0,
		Round:        1,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CurrentSpeaker returns the participant currently allowed to submit a
// non-chat contribution.
func (s *Session) CurrentSpeaker() Participant {
	return s.Participants[s.TurnIndex]
}

func (s *Session) IsParticipant(id UserID) bool {
	for _, p := range s.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// SubmitTurn validates a submission from sender and advances the turn.
//
// Chat submissions never change state: any participant may send them at any
// time. A non-chat submission must come from the current speaker and requires
// at least two participants. When the turn wraps back to the first
// participant, the round counter increments.
func (s *Session) SubmitTurn(sender UserID, chat bool) error {
	if !s.IsParticipant(sender) {
		return errors.ErrNotAParticipant
	}
	if chat {
		return nil
	}
	if len(s.Participants) < 2 {
		return errors.ErrInsufficientParticipants
	}
	if s.CurrentSpeaker().ID != sender {
		return errors.ErrNotYourTurn
	}
	s.TurnIndex = (s.TurnIndex + 1) % len(s.Participants)
	if s.TurnIndex == 0 {
		s.Round++
	}
	return nil
}
