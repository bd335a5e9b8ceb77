// Package services composes the coordinator, the broadcast hub, moderation,
// indexing and scoring into the operations the transport layer exposes.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abadojack/whatlanggo"

	"debate-arena/debate"
	"debate-arena/domain"
	apperrors "debate-arena/errors"
	"debate-arena/moderation"
	"debate-arena/realtime"
	"debate-arena/repositories"
	"debate-arena/scoring"
	"debate-arena/search"
)

type DebateService struct {
	log           *slog.Logger
	registry      *debate.Registry
	hub           *realtime.Hub
	moderator     *moderation.Moderator
	index         *search.Index
	pipeline      *scoring.Pipeline
	sessions      repositories.ISessionRepository
	contributions repositories.IContributionRepository
}

func NewDebateService(
	log *slog.Logger,
	registry *debate.Registry,
	hub *realtime.Hub,
	moderator *moderation.Moderator,
	index *search.Index,
	pipeline *scoring.Pipeline,
	sessions repositories.ISessionRepository,
	contributions repositories.IContributionRepository,
) *DebateService {
	return &DebateService{
		log:           log,
		registry:      registry,
		hub:           hub,
		moderator:     moderator,
		index:         index,
		pipeline:      pipeline,
		sessions:      sessions,
		contributions: contributions,
	}
}

func (s *DebateService) CreateSession(topic string, participants []domain.Participant) (domain.Session, error) {
	return s.registry.CreateSession(topic, participants)
}

// Session returns a live session, falling back to the stored snapshot for
// sessions closed in an earlier run.
func (s *DebateService) Session(id domain.SessionID) (domain.Session, error) {
	session, err := s.registry.Session(id)
	if err == nil {
		return session, nil
	}
	return s.sessions.GetSession(id)
}

// Submit runs one contribution through the full path: moderation for chat,
// language detection, the turn ledger, fan-out and the search index.
func (s *DebateService) Submit(id domain.SessionID, sender domain.UserID, content string, chat bool) (domain.Contribution, error) {
	if chat {
		censored, masked := s.moderator.Censor(content)
		if masked {
			s.log.Info("chat message censored", "session_id", id, "sender", sender)
		}
		content = censored
	}

	lang := detectLang(content)

	contribution, after, err := s.registry.Submit(id, sender, content, chat, lang)
	if err != nil {
		return domain.Contribution{}, err
	}

	event := realtime.NewContributionEvent(contribution, after)
	s.hub.Broadcast(id, event.Encode())

	if !chat {
		s.index.Add(contribution)
	}
	return contribution, nil
}

// History returns a session's ledger, reading the stored copy when the
// session is no longer held in memory.
func (s *DebateService) History(id domain.SessionID) ([]domain.Contribution, error) {
	contributions, err := s.registry.History(id)
	if err == nil {
		return contributions, nil
	}
	if _, storeErr := s.sessions.GetSession(id); storeErr != nil {
		return nil, err
	}
	return s.contributions.SessionContributions(id)
}

func (s *DebateService) CloseSession(id domain.SessionID) error {
	if err := s.registry.CloseSession(id); err != nil {
		return err
	}
	s.hub.Release(id)
	return nil
}

// Transcript renders the debate turns of a session as "username: content"
// lines. Chat messages are not part of the transcript.
func (s *DebateService) Transcript(id domain.SessionID) (string, error) {
	session, err := s.Session(id)
	if err != nil {
		return "", err
	}
	contributions, err := s.History(id)
	if err != nil {
		return "", err
	}

	names := make(map[domain.UserID]string, len(session.Participants))
	for _, p := range session.Participants {
		names[p.ID] = p.Username
	}

	var b strings.Builder
	for _, c := range contributions {
		if c.Chat {
			continue
		}
		name, ok := names[c.SenderID]
		if !ok {
			name = string(c.SenderID)
		}
		fmt.Fprintf(&b, "%s: %s\n", name, c.Content)
	}
	return b.String(), nil
}

// Evaluate scores a finished debate between the session's first two
// participants and folds the outcome into the ratings.
func (s *DebateService) Evaluate(ctx context.Context, id domain.SessionID) (EvaluationResult, error) {
	session, err := s.Session(id)
	if err != nil {
		return EvaluationResult{}, err
	}
	if len(session.Participants) < 2 {
		return EvaluationResult{}, apperrors.ErrInsufficientParticipants
	}

	transcript, err := s.Transcript(id)
	if err != nil {
		return EvaluationResult{}, err
	}
	if transcript == "" {
		return EvaluationResult{}, fmt.Errorf("%w: empty transcript", apperrors.ErrEvaluationUnavailable)
	}

	a, b := session.Participants[0], session.Participants[1]
	ratingA, ratingB, err := s.pipeline.EvaluateAndRate(ctx, id, transcript, a, b)
	if err != nil {
		return EvaluationResult{}, err
	}
	return EvaluationResult{
		SessionID: id,
		Ratings: map[domain.UserID]int{
			a.ID: ratingA,
			b.ID: ratingB,
		},
	}, nil
}

// SearchTranscripts runs a full-text query over indexed debate turns,
// optionally restricted to one session.
func (s *DebateService) SearchTranscripts(ctx context.Context, terms string, sessionID domain.SessionID, limit int) ([]search.Hit, error) {
	return s.index.Search(ctx, terms, sessionID, limit)
}

// EvaluationResult carries the post-evaluation ratings of both debaters.
type EvaluationResult struct {
	SessionID domain.SessionID
	Ratings   map[domain.UserID]int
}

func detectLang(content string) string {
	info := whatlanggo.Detect(content)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6393()
}
