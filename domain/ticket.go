package domain

import "time"

// WaitingTicket is one user waiting to be paired into a debate.
// A ticket is consumed exactly once: pairing removes both tickets atomically.
type WaitingTicket struct {
	UserID     UserID
	EnqueuedAt time.Time
}
