package repositories

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"debate-arena/domain"
	apperrors "debate-arena/errors"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSessionRepository_Put_Then_Get(t *testing.T) {
	req := require.New(t)
	repo := NewSessionRepository(newTestDB(t))

	// Given: a session with two participants
	session := domain.Session{
		ID:    domain.NewSessionID(),
		Topic: "should cities ban cars",
		Participants: []domain.Participant{
			{ID: "user-a", Username: "alice"},
			{ID: "user-b", Username: "bob"},
		},
		TurnIndex: 1,
		Round:     2,
		Active:    true,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	// When: storing and reading it back
	req.NoError(repo.PutSession(session))
	fetched, err := repo.GetSession(session.ID)

	// Then: the snapshot round-trips intact
	req.NoError(err)
	req.Equal(session.ID, fetched.ID)
	req.Equal(session.Participants, fetched.Participants)
	req.Equal(1, fetched.TurnIndex)
	req.Equal(2, fetched.Round)
	req.True(fetched.Active)
}

func TestSessionRepository_Get_Unknown_Session(t *testing.T) {
	req := require.New(t)
	repo := NewSessionRepository(newTestDB(t))

	_, err := repo.GetSession("no-such-session")

	req.ErrorIs(err, apperrors.ErrSessionNotFound)
}

func TestSessionRepository_Put_Overwrites_Previous_Snapshot(t *testing.T) {
	req := require.New(t)
	repo := NewSessionRepository(newTestDB(t))
	session := domain.Session{
		ID:           domain.NewSessionID(),
		Participants: []domain.Participant{{ID: "user-a", Username: "alice"}},
		Round:        1,
		Active:       true,
	}
	req.NoError(repo.PutSession(session))

	session.Round = 3
	session.Active = false
	req.NoError(repo.PutSession(session))

	fetched, err := repo.GetSession(session.ID)
	req.NoError(err)
	req.Equal(3, fetched.Round)
	req.False(fetched.Active)
}

func TestContributionRepository_Reads_Back_In_Ledger_Order(t *testing.T) {
	req := require.New(t)
	repo := NewContributionRepository(newTestDB(t))
	sessionID := domain.NewSessionID()

	// Given: contributions stored out of order
	for _, seq := range []uint64{3, 1, 2} {
		req.NoError(repo.PutContribution(domain.Contribution{
			ID:        uuid.New(),
			SessionID: sessionID,
			SenderID:  "user-a",
			Content:   "argument",
			Seq:       seq,
			CreatedAt: time.Now().UTC(),
		}))
	}

	// When: reading the session's ledger
	contributions, err := repo.SessionContributions(sessionID)

	// Then: the prefix scan yields them by sequence
	req.NoError(err)
	req.Len(contributions, 3)
	req.Equal(uint64(1), contributions[0].Seq)
	req.Equal(uint64(2), contributions[1].Seq)
	req.Equal(uint64(3), contributions[2].Seq)
}

func TestContributionRepository_Sessions_Do_Not_Leak(t *testing.T) {
	req := require.New(t)
	repo := NewContributionRepository(newTestDB(t))
	first := domain.NewSessionID()
	second := domain.NewSessionID()
	req.NoError(repo.PutContribution(domain.Contribution{ID: uuid.New(), SessionID: first, SenderID: "user-a", Content: "a", Seq: 1}))
	req.NoError(repo.PutContribution(domain.Contribution{ID: uuid.New(), SessionID: second, SenderID: "user-b", Content: "b", Seq: 1}))

	contributions, err := repo.SessionContributions(first)

	req.NoError(err)
	req.Len(contributions, 1)
	req.Equal(first, contributions[0].SessionID)
}

func TestContributionRepository_Unknown_Session_Is_Empty(t *testing.T) {
	req := require.New(t)
	repo := NewContributionRepository(newTestDB(t))

	contributions, err := repo.SessionContributions("no-such-session")

	req.NoError(err)
	req.Empty(contributions)
}

func TestRankingRepository_Put_Get_List(t *testing.T) {
	req := require.New(t)
	repo := NewRankingRepository(newTestDB(t))

	req.NoError(repo.PutRanking(domain.RankingEntry{UserID: "user-a", Score: 41.5, Rating: 1516, Joined: 0}))
	req.NoError(repo.PutRanking(domain.RankingEntry{UserID: "user-b", Score: 38, Rating: 1484, Joined: 1}))

	entry, err := repo.GetRanking("user-a")
	req.NoError(err)
	req.Equal(41.5, entry.Score)
	req.Equal(1516, entry.Rating)

	entry, err = repo.GetRanking("user-b")
	req.NoError(err)
	req.Equal(uint64(1), entry.Joined)

	entries, err := repo.ListRankings()
	req.NoError(err)
	req.Len(entries, 2)
}

func TestRankingRepository_Get_Unknown_User(t *testing.T) {
	req := require.New(t)
	repo := NewRankingRepository(newTestDB(t))

	_, err := repo.GetRanking("ghost")

	req.ErrorIs(err, apperrors.ErrRankingUserNotFound)
}

func TestUserRepository_Create_Then_Fetch(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(newTestDB(t))
	user := domain.User{
		ID:           domain.UserID(uuid.NewString()),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	req.NoError(repo.CreateUser(user))
	fetched, err := repo.GetUserByName("alice")

	req.NoError(err)
	req.Equal(user.ID, fetched.ID)
	req.Equal(user.PasswordHash, fetched.PasswordHash)
}

func TestUserRepository_Duplicate_Username_Rejected(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(newTestDB(t))
	req.NoError(repo.CreateUser(domain.User{ID: "id-1", Username: "alice"}))

	err := repo.CreateUser(domain.User{ID: "id-2", Username: "alice"})

	req.ErrorIs(err, apperrors.ErrUserAlreadyExists)
}

func TestUserRepository_Unknown_User(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.GetUserByName("nobody")

	req.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func TestDebateStore_Forwards_To_Both_Repositories(t *testing.T) {
	req := require.New(t)
	db := newTestDB(t)
	sessions := NewSessionRepository(db)
	contributions := NewContributionRepository(db)
	store := NewDebateStore(sessions, contributions)
	sessionID := domain.NewSessionID()

	req.NoError(store.PutSession(domain.Session{ID: sessionID, Participants: []domain.Participant{{ID: "user-a", Username: "alice"}}, Active: true}))
	req.NoError(store.PutContribution(domain.Contribution{ID: uuid.New(), SessionID: sessionID, SenderID: "user-a", Content: "hi", Seq: 1}))

	_, err := sessions.GetSession(sessionID)
	req.NoError(err)
	ledger, err := contributions.SessionContributions(sessionID)
	req.NoError(err)
	req.Len(ledger, 1)
}
