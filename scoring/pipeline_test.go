package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"debate-arena/domain"
	"debate-arena/errors"
	"debate-arena/mocks"
)

var (
	alice = domain.Participant{ID: "user-a", Username: "Alice"}
	bob   = domain.Participant{ID: "user-b", Username: "Bob"}
)

func evaluation(totalA, totalB float64) domain.Evaluation {
	return domain.Evaluation{
		"Alice": {Criteria: map[string]float64{"logic": totalA}, Total: totalA},
		"Bob":   {Criteria: map[string]float64{"logic": totalB}, Total: totalB},
	}
}

func TestPipeline_Winner_Gains_Loser_Drops(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	evaluator := mocks.NewMockEvaluator(ctrl)
	table := newTestTable()
	pipeline := NewPipeline(slog.Default(), evaluator, table)

	evaluator.EXPECT().
		Evaluate(gomock.Any(), "Alice: the opening\nBob: the rebuttal").
		Return(evaluation(42, 31), nil)

	newA, newB, err := pipeline.EvaluateAndRate(context.Background(), "session-1",
		"Alice: the opening\nBob: the rebuttal", alice, bob)

	req.NoError(err)
	req.Equal(1516, newA)
	req.Equal(1484, newB)
	req.Equal(1516, table.Rating(alice.ID))
	req.Equal(1484, table.Rating(bob.ID))

	// Totals accumulate into the cumulative score
	entry, err := table.Entry(alice.ID)
	req.NoError(err)
	req.Equal(42.0, entry.Score)
}

func TestPipeline_Draw_Keeps_Equal_Ratings(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	evaluator := mocks.NewMockEvaluator(ctrl)
	table := newTestTable()
	pipeline := NewPipeline(slog.Default(), evaluator, table)

	evaluator.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Return(evaluation(30, 30), nil)

	newA, newB, err := pipeline.EvaluateAndRate(context.Background(), "session-1", "transcript", alice, bob)

	req.NoError(err)
	req.Equal(1500, newA)
	req.Equal(1500, newB)
}

func TestPipeline_Evaluation_Failure_Propagates(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	evaluator := mocks.NewMockEvaluator(ctrl)
	pipeline := NewPipeline(slog.Default(), evaluator, newTestTable())

	evaluator.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("model overloaded")).
		Times(1) // no retry inside the pipeline

	_, _, err := pipeline.EvaluateAndRate(context.Background(), "session-1", "transcript", alice, bob)

	req.ErrorIs(err, errors.ErrEvaluationUnavailable)
}

func TestPipeline_Result_Missing_A_Debater(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	evaluator := mocks.NewMockEvaluator(ctrl)
	table := newTestTable()
	pipeline := NewPipeline(slog.Default(), evaluator, table)

	evaluator.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Return(domain.Evaluation{
		"Alice": {Total: 40},
	}, nil)

	_, _, err := pipeline.EvaluateAndRate(context.Background(), "session-1", "transcript", alice, bob)

	req.ErrorIs(err, errors.ErrEvaluationUnavailable)
	req.Equal(domain.DefaultRating, table.Rating(alice.ID))
}

func TestHTTPEvaluator_Decodes_Scorecards(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"eval":{"Alice":{"criteria":{"logic":9,"evidence":8},"total":17},"Bob":{"criteria":{"logic":7,"evidence":6},"total":13}}}`))
	}))
	defer server.Close()

	evaluator := NewHTTPEvaluator(server.URL, time.Second)
	result, err := evaluator.Evaluate(context.Background(), "Alice: hi\nBob: hello")

	req.NoError(err)
	req.Equal(17.0, result["Alice"].Total)
	req.Equal(9.0, result["Alice"].Criteria["logic"])
	req.Equal(13.0, result["Bob"].Total)
}

func TestHTTPEvaluator_Error_Statuses_And_Garbage(t *testing.T) {
	req := require.New(t)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	_, err := NewHTTPEvaluator(failing.URL, time.Second).Evaluate(context.Background(), "transcript")
	req.Error(err)

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer garbage.Close()
	_, err = NewHTTPEvaluator(garbage.URL, time.Second).Evaluate(context.Background(), "transcript")
	req.Error(err)
}
