// Package domain contains core concepts of the debate system.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

// UserID is a verified user identifier, supplied by the auth layer.
type UserID string

// Participant is a debater registered in a session.
// Immutable once added; the participant order is fixed at session creation.
type Participant struct {
	ID       UserID
	Username string
}
