package errors

import "fmt"

var (
	ErrSessionNotFound          = fmt.Errorf("session not found")
	ErrInvalidSession           = fmt.Errorf("a session requires at least one participant")
	ErrNotYourTurn              = fmt.Errorf("it's not your turn")
	ErrInsufficientParticipants = fmt.Errorf("cannot rotate the turn with fewer than two participants")
	ErrEmptyContent             = fmt.Errorf("contribution content cannot be empty")
	ErrNotAParticipant          = fmt.Errorf("user is not a participant of the debate")
	ErrEvaluationUnavailable    = fmt.Errorf("evaluation service is currently unavailable")
	ErrRankingUserNotFound      = fmt.Errorf("user has no ranking entry")

	ErrUserAlreadyExists  = fmt.Errorf("username or email already registered")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrInvalidPassword    = fmt.Errorf("password must mix upper, lower, digit and special characters")

	ErrWorkerPanic = fmt.Errorf("worker panic")
)
