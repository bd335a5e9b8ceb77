//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"debate-arena/domain"
	apperrors "debate-arena/errors"
)

type IUserRepository interface {
	CreateUser(user domain.User) error
	GetUserByName(username string) (domain.User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

type diskUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func userKey(username string) []byte {
	return []byte(fmt.Sprintf("user:%s", username))
}

// CreateUser stores a new account, refusing to overwrite an existing
// username.
func (r UserRepository) CreateUser(user domain.User) error {
	bytes, err := json.Marshal(diskUser{
		ID:           string(user.ID),
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(userKey(user.Username))
		if err == nil {
			return apperrors.ErrUserAlreadyExists
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(userKey(user.Username), bytes)
	})
}

func (r UserRepository) GetUserByName(username string) (domain.User, error) {
	var stored diskUser
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(username))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.User{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:           domain.UserID(stored.ID),
		Username:     stored.Username,
		Email:        stored.Email,
		PasswordHash: stored.PasswordHash,
		CreatedAt:    stored.CreatedAt,
	}, nil
}
