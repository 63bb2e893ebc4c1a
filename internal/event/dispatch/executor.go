package dispatch

import (
	"context"
	"runtime/debug"
	"time"
)

// Executor runs tasks with panic recovery and timing.
type Executor struct {
	panicHandler PanicHandler
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		panicHandler: defaultPanicHandler,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithExecutorPanicHandler sets the panic handler for the executor.
func WithExecutorPanicHandler(h PanicHandler) ExecutorOption {
	return func(e *Executor) {
		if h != nil {
			e.panicHandler = h
		}
	}
}

// Execute runs a task and returns the result.
// It recovers from panics and captures timing information.
func (e *Executor) Execute(ctx context.Context, task Task) (result Result) {
	select {
	case <-ctx.Done():
		return Result{Skipped: true, Err: ctx.Err()}
	default:
	}

	start := time.Now()

	defer func() {
		result.Duration = time.Since(start)

		if r := recover(); r != nil {
			stack := debug.Stack()

			result.Handled = false
			result.Panicked = true
			result.PanicValue = r
			result.PanicStack = stack

			// A panicking panic handler must not escape either.
			func() {
				defer func() { _ = recover() }()
				e.panicHandler(r, stack)
			}()
		}
	}()

	result.Handled = task()
	return result
}
