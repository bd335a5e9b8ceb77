package domain

import "time"

// User is a registered account. PasswordHash is an encoded argon2id hash and
// never leaves the auth/repository layers.
type User struct {
	ID           UserID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
