// Package matchmaking pairs waiting users into new debate sessions, oldest
// ticket first.
package matchmaking

import (
	"log/slog"
	"sync"
	"time"

	"debate-arena/domain"
)

// SessionCreator is the slice of the session registry the queue needs.
type SessionCreator interface {
	CreateSession(topic string, participants []domain.Participant) (domain.Session, error)
}

type ticket struct {
	domain.WaitingTicket
	participant domain.Participant
}

// Queue is a FIFO waiting list. Pairing pops the two oldest tickets
// atomically, so a ticket is consumed exactly once.
type Queue struct {
	log     *slog.Logger
	creator SessionCreator

	mu      sync.Mutex
	tickets []ticket
}

func NewQueue(log *slog.Logger, creator SessionCreator) *Queue {
	return &Queue{log: log, creator: creator}
}

// Enqueue appends a waiting ticket for the user. A user already waiting
// keeps their original ticket and position.
func (q *Queue) Enqueue(participant domain.Participant) domain.WaitingTicket {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, t := range q.tickets {
		if t.UserID == participant.ID {
			return t.WaitingTicket
		}
	}
	t := ticket{
		WaitingTicket: domain.WaitingTicket{UserID: participant.ID, EnqueuedAt: time.Now().UTC()},
		participant:   participant,
	}
	q.tickets = append(q.tickets, t)
	q.log.Info("user enqueued for matching", "user_id", participant.ID, "waiting", len(q.tickets))
	return t.WaitingTicket
}

// TryMatch pairs the two oldest waiting users into a fresh session. It
// returns false when fewer than two users are waiting. Both tickets are
// removed before the session is created; a creation failure puts them back
// at the head of the queue.
func (q *Queue) TryMatch(topic string) (domain.Session, bool, error) {
	q.mu.Lock()
	if len(q.tickets) < 2 {
		q.mu.Unlock()
		return domain.Session{}, false, nil
	}
	first, second := q.tickets[0], q.tickets[1]
	q.tickets = q.tickets[2:]
	q.mu.Unlock()

	session, err := q.creator.CreateSession(topic, []domain.Participant{first.participant, second.participant})
	if err != nil {
		q.mu.Lock()
		q.tickets = append([]ticket{first, second}, q.tickets...)
		q.mu.Unlock()
		return domain.Session{}, false, err
	}

	q.log.Info("users matched",
		"session_id", session.ID,
		"user_a", first.UserID,
		"user_b", second.UserID,
	)
	return session, true, nil
}

// Waiting returns the number of users currently queued.
func (q *Queue) Waiting() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tickets)
}
