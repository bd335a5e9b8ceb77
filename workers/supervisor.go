// Package workers runs the coordinator's background loops under a
// panic-recovering supervisor.
package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	apperrors "debate-arena/errors"
)

const waitTimeBeforeRestart = 200 * time.Millisecond

// Worker is a long-running background loop. Run returns nil when the worker
// is done for good; any error or panic triggers a restart.
type Worker interface {
	Name() string
	Run(ctx context.Context) error
}

// Supervisor owns a cancellable context, runs each worker in its own
// goroutine, recovers panics and restarts crashed workers. A failure in one
// worker never stops the supervisor itself.
type Supervisor struct {
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	log     *slog.Logger
	workers []Worker
}

func NewSupervisor(log *slog.Logger) *Supervisor {
	return &Supervisor{log: log}
}

func (s *Supervisor) Add(worker ...Worker) *Supervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Run starts every registered worker and blocks until all of them have
// stopped. Cancelling the parent context stops the supervised workers.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer s.cancel()

	for _, worker := range s.workers {
		s.start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) start(ctx context.Context, worker Worker) {
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Info("worker stopping", "name", worker.Name())
				return
			}

			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = apperrors.ErrWorkerPanic
					}
				}()
				return worker.Run(ctx)
			}()

			if err == nil {
				// Terminated properly, never restart.
				s.log.Info("worker finished", "name", worker.Name())
				return
			}

			if ctx.Err() != nil {
				s.log.Info("worker stopped (context canceled)", "name", worker.Name())
				return
			}

			s.log.Warn("worker crashed, restarting", "name", worker.Name(), "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(waitTimeBeforeRestart):
			}
		}
	}()
}

// Stop cancels every supervised worker.
func (s *Supervisor) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
