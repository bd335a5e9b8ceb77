package workers

import (
	"context"
	"log/slog"
	"time"

	"debate-arena/matchmaking"
)

// MatchmakerWorker periodically sweeps the waiting queue. Matching normally
// happens on enqueue; the sweep picks up pairs left behind when a session
// creation failed and the tickets were restored.
type MatchmakerWorker struct {
	log      *slog.Logger
	queue    *matchmaking.Queue
	topic    string
	interval time.Duration
}

func NewMatchmakerWorker(log *slog.Logger, queue *matchmaking.Queue, topic string, interval time.Duration) *MatchmakerWorker {
	return &MatchmakerWorker{log: log, queue: queue, topic: topic, interval: interval}
}

func (w *MatchmakerWorker) Name() string { return "matchmaker" }

func (w *MatchmakerWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for {
				session, matched, err := w.queue.TryMatch(w.topic)
				if err != nil {
					w.log.Warn("queue sweep failed to create session", "err", err)
					break
				}
				if !matched {
					break
				}
				w.log.Info("queue sweep formed a match", "session_id", session.ID)
			}
		}
	}
}
