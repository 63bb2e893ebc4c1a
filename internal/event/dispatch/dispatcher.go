package dispatch

import (
	"context"
	"time"
)

// Task is a single callback invocation. It returns true if the event was
// handled.
type Task func() bool

// Dispatcher runs tasks.
type Dispatcher interface {
	// Dispatch runs a task and returns the outcome.
	Dispatch(ctx context.Context, task Task) Result
}

// Result represents the outcome of a task execution.
type Result struct {
	// Handled is the value returned by the task. Always false when the task
	// panicked or was skipped.
	Handled bool

	// Panicked is true if the task panicked.
	Panicked bool

	// PanicValue is the value passed to panic(), if Panicked is true.
	PanicValue any

	// PanicStack is the stack trace at the point of panic.
	PanicStack []byte

	// Duration is how long the task took to execute.
	Duration time.Duration

	// Skipped is true if the task was not executed (context cancelled).
	Skipped bool

	// Err is the context error when Skipped is true.
	Err error
}

// Ran returns true if the task executed to completion.
func (r Result) Ran() bool {
	return !r.Skipped && !r.Panicked
}

// PanicHandler is called when a task panics.
type PanicHandler func(recovered any, stack []byte)

// defaultPanicHandler is a no-op panic handler.
func defaultPanicHandler(recovered any, stack []byte) {}
