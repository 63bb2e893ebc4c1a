package dispatch

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestResult_Ran(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		expected bool
	}{
		{"handled", Result{Handled: true}, true},
		{"unhandled", Result{}, true},
		{"panic", Result{Panicked: true}, false},
		{"skipped", Result{Skipped: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Ran(); got != tt.expected {
				t.Errorf("Ran() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSyncDispatcher_Dispatch(t *testing.T) {
	d := NewSyncDispatcher()

	result := d.Dispatch(context.Background(), func() bool { return true })
	if !result.Handled {
		t.Error("expected handled result")
	}

	result = d.Dispatch(context.Background(), func() bool { return false })
	if result.Handled {
		t.Error("expected unhandled result")
	}
	if !result.Ran() {
		t.Error("expected task to have run")
	}

	stats := d.Stats()
	if stats.Dispatched != 2 {
		t.Errorf("expected 2 dispatched, got %d", stats.Dispatched)
	}
	if stats.Handled != 1 {
		t.Errorf("expected 1 handled, got %d", stats.Handled)
	}
}

func TestSyncDispatcher_Panic(t *testing.T) {
	var recovered atomic.Value
	d := NewSyncDispatcher(WithPanicHandler(func(r any, stack []byte) {
		recovered.Store(r)
		if len(stack) == 0 {
			t.Error("expected non-empty stack")
		}
	}))

	result := d.Dispatch(context.Background(), func() bool {
		panic("boom")
	})

	if !result.Panicked {
		t.Fatal("expected panicked result")
	}
	if result.Handled {
		t.Error("panicked task must not be handled")
	}
	if result.PanicValue != "boom" {
		t.Errorf("expected panic value boom, got %v", result.PanicValue)
	}
	if recovered.Load() != "boom" {
		t.Errorf("expected panic handler to receive boom, got %v", recovered.Load())
	}
	if d.Stats().Panicked != 1 {
		t.Errorf("expected 1 panicked, got %d", d.Stats().Panicked)
	}
}

func TestSyncDispatcher_PanicHandlerPanics(t *testing.T) {
	d := NewSyncDispatcher(WithPanicHandler(func(any, []byte) {
		panic("handler boom")
	}))

	result := d.Dispatch(context.Background(), func() bool {
		panic("boom")
	})
	if !result.Panicked {
		t.Error("expected panicked result")
	}
}

func TestSyncDispatcher_CancelledContext(t *testing.T) {
	d := NewSyncDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	result := d.Dispatch(ctx, func() bool {
		called = true
		return true
	})

	if called {
		t.Error("task should not run on a cancelled context")
	}
	if !result.Skipped {
		t.Error("expected skipped result")
	}
	if result.Err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", result.Err)
	}
	if d.Stats().Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", d.Stats().Skipped)
	}
}
