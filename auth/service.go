package auth

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"debate-arena/domain"
	apperrors "debate-arena/errors"
	"debate-arena/repositories"
)

// Service handles account registration and login on top of the user
// repository.
type Service struct {
	log    *slog.Logger
	users  repositories.IUserRepository
	tokens *TokenManager
}

func NewService(log *slog.Logger, users repositories.IUserRepository, tokens *TokenManager) *Service {
	return &Service{log: log, users: users, tokens: tokens}
}

// Register validates the request, hashes the password and stores the new
// account.
func (s *Service) Register(req RegisterRequest) (domain.User, error) {
	if err := ValidateRegister(req); err != nil {
		return domain.User{}, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           domain.UserID(uuid.NewString()),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(user); err != nil {
		return domain.User{}, err
	}

	s.log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login checks the credentials and issues an access token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(username, password string) (string, domain.User, error) {
	user, err := s.users.GetUserByName(username)
	if err != nil {
		return "", domain.User{}, err
	}

	ok, err := ComparePassword(password, user.PasswordHash)
	if err != nil {
		return "", domain.User{}, err
	}
	if !ok {
		return "", domain.User{}, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}
