package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"debate-arena/domain"
	"debate-arena/errors"
)

// Pipeline consumes an external evaluation of a finished debate and folds it
// into the ranking table: a ternary outcome from the two totals drives the
// Elo update, and each debater's total accumulates into their score.
type Pipeline struct {
	log       *slog.Logger
	evaluator Evaluator
	table     *Table
}

func NewPipeline(log *slog.Logger, evaluator Evaluator, table *Table) *Pipeline {
	return &Pipeline{log: log, evaluator: evaluator, table: table}
}

// EvaluateAndRate evaluates the transcript and updates both debaters'
// ratings, returning the new ratings of a and b in that order. Evaluation
// failures and results that do not name both debaters surface as
// ErrEvaluationUnavailable; nothing is retried here.
func (p *Pipeline) EvaluateAndRate(ctx context.Context, sessionID domain.SessionID, transcript string, a, b domain.Participant) (int, int, error) {
	evaluation, err := p.evaluator.Evaluate(ctx, transcript)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errors.ErrEvaluationUnavailable, err)
	}

	cardA, okA := evaluation[a.Username]
	cardB, okB := evaluation[b.Username]
	if !okA || !okB {
		return 0, 0, fmt.Errorf("%w: result does not cover both debaters", errors.ErrEvaluationUnavailable)
	}

	outcomeA := OutcomeDraw
	switch {
	case cardA.Total > cardB.Total:
		outcomeA = OutcomeWin
	case cardA.Total < cardB.Total:
		outcomeA = OutcomeLoss
	}

	ratingA := p.table.Rating(a.ID)
	ratingB := p.table.Rating(b.ID)
	newA := NewRating(ratingA, ratingB, outcomeA)
	newB := NewRating(ratingB, ratingA, 1-outcomeA)

	p.table.SetRating(a.ID, newA)
	p.table.SetRating(b.ID, newB)
	p.table.Update(a.ID, cardA.Total)
	p.table.Update(b.ID, cardB.Total)

	p.log.Info("debate rated",
		"session_id", sessionID,
		"outcome_a", outcomeA,
		"rating_a", newA,
		"rating_b", newB,
	)
	return newA, newB, nil
}
