package dispatch

import (
	"context"
	"sync/atomic"
	"time"
)

// SyncDispatcher executes tasks synchronously in the caller's goroutine.
type SyncDispatcher struct {
	executor *Executor

	dispatched  atomic.Uint64
	handled     atomic.Uint64
	panicked    atomic.Uint64
	skipped     atomic.Uint64
	totalTimeNs atomic.Int64
}

// NewSyncDispatcher creates a new synchronous dispatcher.
func NewSyncDispatcher(opts ...SyncOption) *SyncDispatcher {
	d := &SyncDispatcher{
		executor: NewExecutor(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SyncOption configures a SyncDispatcher.
type SyncOption func(*SyncDispatcher)

// WithPanicHandler sets the panic handler for the dispatcher.
func WithPanicHandler(h PanicHandler) SyncOption {
	return func(d *SyncDispatcher) {
		d.executor = NewExecutor(WithExecutorPanicHandler(h))
	}
}

// Dispatch runs a task synchronously and blocks until it returns or panics.
func (d *SyncDispatcher) Dispatch(ctx context.Context, task Task) Result {
	d.dispatched.Add(1)

	result := d.executor.Execute(ctx, task)
	d.totalTimeNs.Add(result.Duration.Nanoseconds())

	switch {
	case result.Skipped:
		d.skipped.Add(1)
	case result.Panicked:
		d.panicked.Add(1)
	case result.Handled:
		d.handled.Add(1)
	}

	return result
}

// Stats returns dispatch statistics.
func (d *SyncDispatcher) Stats() Stats {
	dispatched := d.dispatched.Load()
	totalNs := d.totalTimeNs.Load()

	var avgNs int64
	if dispatched > 0 {
		avgNs = totalNs / int64(dispatched)
	}

	return Stats{
		Dispatched:    dispatched,
		Handled:       d.handled.Load(),
		Panicked:      d.panicked.Load(),
		Skipped:       d.skipped.Load(),
		TotalDuration: time.Duration(totalNs),
		AvgDuration:   time.Duration(avgNs),
	}
}

// Stats contains dispatcher statistics.
type Stats struct {
	// Dispatched is the total number of tasks run (or accepted, for async).
	Dispatched uint64

	// Handled is the number of tasks that returned true.
	Handled uint64

	// Panicked is the number of tasks that panicked.
	Panicked uint64

	// Skipped is the number of tasks skipped because their context ended.
	Skipped uint64

	// Dropped is the number of tasks rejected because the queue was full.
	Dropped uint64

	// QueueDepth is the current number of tasks waiting (async only).
	QueueDepth int

	// TotalDuration is the cumulative time spent in tasks.
	TotalDuration time.Duration

	// AvgDuration is the average task execution time.
	AvgDuration time.Duration
}

// Ensure SyncDispatcher implements Dispatcher.
var _ Dispatcher = (*SyncDispatcher)(nil)
