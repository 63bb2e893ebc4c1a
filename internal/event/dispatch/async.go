package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// AsyncDispatcher executes tasks on its own worker goroutines.
// With a single worker (the default) tasks run one at a time in enqueue order.
type AsyncDispatcher struct {
	queueSize   int
	workerCount int

	mu      sync.Mutex // protects queue creation/destruction
	queue   chan asyncTask
	running atomic.Bool
	wg      sync.WaitGroup

	panicHandler PanicHandler

	enqueued    atomic.Uint64
	handled     atomic.Uint64
	panicked    atomic.Uint64
	skipped     atomic.Uint64
	dropped     atomic.Uint64
	totalTimeNs atomic.Int64
}

type asyncTask struct {
	ctx  context.Context
	task Task
}

// NewAsyncDispatcher creates a new asynchronous dispatcher.
func NewAsyncDispatcher(opts ...AsyncOption) *AsyncDispatcher {
	d := &AsyncDispatcher{
		queueSize:    1024,
		workerCount:  1,
		panicHandler: defaultPanicHandler,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AsyncOption configures an AsyncDispatcher.
type AsyncOption func(*AsyncDispatcher)

// WithQueueSize sets the task queue size.
func WithQueueSize(size int) AsyncOption {
	return func(d *AsyncDispatcher) {
		if size > 0 {
			d.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) AsyncOption {
	return func(d *AsyncDispatcher) {
		if count > 0 {
			d.workerCount = count
		}
	}
}

// WithAsyncPanicHandler sets the panic handler for async execution.
func WithAsyncPanicHandler(h PanicHandler) AsyncOption {
	return func(d *AsyncDispatcher) {
		if h != nil {
			d.panicHandler = h
		}
	}
}

// Start starts the worker pool.
func (d *AsyncDispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return ErrAlreadyRunning
	}

	d.queue = make(chan asyncTask, d.queueSize)
	d.running.Store(true)

	for i := 0; i < d.workerCount; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return nil
}

// Stop stops the worker pool, letting queued tasks finish unless ctx ends
// first.
func (d *AsyncDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running.Load() {
		d.mu.Unlock()
		return ErrNotRunning
	}

	d.running.Store(false)
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue adds a task to the queue. It never blocks: a full queue drops the
// task and returns ErrQueueFull.
func (d *AsyncDispatcher) Enqueue(ctx context.Context, task Task) error {
	if task == nil {
		return ErrNilTask
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running.Load() {
		return ErrNotRunning
	}

	select {
	case d.queue <- asyncTask{ctx: ctx, task: task}:
		d.enqueued.Add(1)
		return nil
	default:
		d.dropped.Add(1)
		return ErrQueueFull
	}
}

func (d *AsyncDispatcher) worker() {
	defer d.wg.Done()

	executor := NewExecutor(WithExecutorPanicHandler(d.panicHandler))

	for t := range d.queue {
		result := executor.Execute(t.ctx, t.task)
		d.totalTimeNs.Add(result.Duration.Nanoseconds())

		switch {
		case result.Skipped:
			d.skipped.Add(1)
		case result.Panicked:
			d.panicked.Add(1)
		case result.Handled:
			d.handled.Add(1)
		}
	}
}

// QueueDepth returns the current number of tasks in the queue.
func (d *AsyncDispatcher) QueueDepth() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running.Load() {
		return 0
	}
	return len(d.queue)
}

// IsRunning returns true if the dispatcher is running.
func (d *AsyncDispatcher) IsRunning() bool {
	return d.running.Load()
}

// Stats returns dispatcher statistics.
func (d *AsyncDispatcher) Stats() Stats {
	enqueued := d.enqueued.Load()
	totalNs := d.totalTimeNs.Load()

	var avgNs int64
	if enqueued > 0 {
		avgNs = totalNs / int64(enqueued)
	}

	return Stats{
		Dispatched:    enqueued,
		Handled:       d.handled.Load(),
		Panicked:      d.panicked.Load(),
		Skipped:       d.skipped.Load(),
		Dropped:       d.dropped.Load(),
		QueueDepth:    d.QueueDepth(),
		TotalDuration: time.Duration(totalNs),
		AvgDuration:   time.Duration(avgNs),
	}
}
