// Package tasks runs fire-and-forget side effects outside the request path.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

const defaultTaskTimeout = 60 * time.Second

// Runner launches detached tasks. Callers never join them; Wait exists for
// runtimes that freeze the process once a response is written.
type Runner struct {
	Timeout time.Duration

	wg sync.WaitGroup
}

// NewRunner constructs a Runner with the given per-task timeout.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}
	return &Runner{Timeout: timeout}
}

// Go runs fn in its own goroutine. The task keeps the values of parent but
// not its cancellation, so it survives the request that spawned it. Errors
// and panics are logged and discarded.
func (r *Runner) Go(parent context.Context, name string, fn func(ctx context.Context) error) {
	if r == nil || fn == nil {
		return
	}
	if parent == nil {
		parent = context.Background()
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}
	base := context.WithoutCancel(parent)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()

		start := time.Now()
		err := run(ctx, fn)
		fields := map[string]any{
			"task":        name,
			"request_id":  RequestIDFromContext(base),
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
		}
		if err != nil {
			metrics.IncSideEffectFailure()
			fields["error"] = err
			telemetry.Error("task.failed", fields)
			return
		}
		telemetry.Info("task.complete", fields)
	}()
}

// Wait blocks until every task started so far has finished or ctx is done.
func (r *Runner) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn(ctx)
}
