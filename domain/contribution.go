// Package domain contains core concepts of the debate system.
// This file defines Contribution events and related rules.
// Contributions are immutable and validated by the domain.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contribution represents an immutable debate message.
//
// Seq is assigned by the ledger and is strictly increasing and gap-free
// within one session. Chat marks a side-channel message that does not
// consume the sender's turn.
type Contribution struct {
	ID        uuid.UUID
	SessionID SessionID
	SenderID  UserID
	Content   string
	Lang      string // ISO 639-3 code detected at append time, may be empty
	Chat      bool
	Seq       uint64
	CreatedAt time.Time
}
