package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"debate-arena/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=evaluator.go -destination=../mocks/mock_evaluator.go -package=mocks

// Evaluator is the external AI evaluation collaborator: given the full
// transcript text it returns one scorecard per debater name. It may fail;
// failures surface to callers as ErrEvaluationUnavailable, and any retry
// policy belongs behind this interface, not in the pipeline.
type Evaluator interface {
	Evaluate(ctx context.Context, transcript string) (domain.Evaluation, error)
}

// HTTPEvaluator calls the evaluation service over HTTP. The service wraps the
// model invocation and replies with {"eval": {debater: scorecard}}.
type HTTPEvaluator struct {
	url    string
	client *http.Client
}

func NewHTTPEvaluator(url string, timeout time.Duration) *HTTPEvaluator {
	return &HTTPEvaluator{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type evaluateRequest struct {
	Transcript string `json:"transcript"`
}

type evaluateResponse struct {
	Eval domain.Evaluation `json:"eval"`
}

func (e *HTTPEvaluator) Evaluate(ctx context.Context, transcript string) (domain.Evaluation, error) {
	body, err := json.Marshal(evaluateRequest{Transcript: transcript})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("evaluation service replied %d", resp.StatusCode)
	}

	var decoded evaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("unparseable evaluation result: %w", err)
	}
	if len(decoded.Eval) == 0 {
		return nil, fmt.Errorf("evaluation result is empty")
	}
	return decoded.Eval, nil
}
