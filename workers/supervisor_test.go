package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// flakyWorker panics a fixed number of times before finishing cleanly.
type flakyWorker struct {
	panicsLeft int32
	runs       atomic.Int32
}

func (w *flakyWorker) Name() string { return "flaky" }

func (w *flakyWorker) Run(ctx context.Context) error {
	w.runs.Add(1)
	if atomic.AddInt32(&w.panicsLeft, -1) >= 0 {
		panic("boom")
	}
	return nil
}

// blockingWorker runs until its context is cancelled.
type blockingWorker struct {
	started chan struct{}
}

func (w *blockingWorker) Name() string { return "blocking" }

func (w *blockingWorker) Run(ctx context.Context) error {
	close(w.started)
	<-ctx.Done()
	return nil
}

func TestSupervisor_Restarts_A_Panicking_Worker(t *testing.T) {
	req := require.New(t)
	worker := &flakyWorker{panicsLeft: 2}
	supervisor := NewSupervisor(slog.Default()).Add(worker)

	done := make(chan struct{})
	go func() {
		supervisor.Run(context.Background())
		close(done)
	}()

	// Then: the worker is restarted after each panic and the supervisor
	// exits once it finishes cleanly
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not finish")
	}
	req.Equal(int32(3), worker.runs.Load())
}

func TestSupervisor_Finished_Worker_Is_Not_Restarted(t *testing.T) {
	req := require.New(t)
	worker := &flakyWorker{panicsLeft: 0}
	supervisor := NewSupervisor(slog.Default()).Add(worker)

	supervisor.Run(context.Background())

	req.Equal(int32(1), worker.runs.Load())
}

func TestSupervisor_Stop_Cancels_Workers(t *testing.T) {
	worker := &blockingWorker{started: make(chan struct{})}
	supervisor := NewSupervisor(slog.Default()).Add(worker)

	done := make(chan struct{})
	go func() {
		supervisor.Run(context.Background())
		close(done)
	}()

	select {
	case <-worker.started:
	case <-time.After(5 * time.Second):
		t.Fatal("worker never started")
	}

	supervisor.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop")
	}
}

func TestSupervisor_Parent_Context_Cancels_Workers(t *testing.T) {
	worker := &blockingWorker{started: make(chan struct{})}
	supervisor := NewSupervisor(slog.Default()).Add(worker)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(done)
	}()

	<-worker.started
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop on parent cancellation")
	}
}
