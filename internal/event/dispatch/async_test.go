package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestAsyncDispatcher_StartStop(t *testing.T) {
	d := NewAsyncDispatcher()

	if d.IsRunning() {
		t.Error("expected dispatcher to not be running initially")
	}

	if err := d.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !d.IsRunning() {
		t.Error("expected dispatcher to be running")
	}

	if err := d.Start(); err != ErrAlreadyRunning {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}

	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if d.IsRunning() {
		t.Error("expected dispatcher to be stopped")
	}

	if err := d.Stop(context.Background()); err != ErrNotRunning {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
}

func TestAsyncDispatcher_Enqueue_NotRunning(t *testing.T) {
	d := NewAsyncDispatcher()

	err := d.Enqueue(context.Background(), func() bool { return true })
	if err != ErrNotRunning {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
}

func TestAsyncDispatcher_Enqueue_Nil(t *testing.T) {
	d := NewAsyncDispatcher()
	if err := d.Enqueue(context.Background(), nil); err != ErrNilTask {
		t.Errorf("expected ErrNilTask, got %v", err)
	}
}

func TestAsyncDispatcher_SingleWorkerOrder(t *testing.T) {
	d := NewAsyncDispatcher()
	if err := d.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		err := d.Enqueue(context.Background(), func() bool {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return true
		})
		if err != nil {
			t.Fatalf("Enqueue %d failed: %v", i, err)
		}
	}

	wg.Wait()
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	for i, v := range order {
		if v != i {
			t.Fatalf("position %d: expected %d, got %d", i, i, v)
		}
	}

	stats := d.Stats()
	if stats.Dispatched != 50 {
		t.Errorf("expected 50 dispatched, got %d", stats.Dispatched)
	}
	if stats.Handled != 50 {
		t.Errorf("expected 50 handled, got %d", stats.Handled)
	}
}

func TestAsyncDispatcher_QueueFull(t *testing.T) {
	d := NewAsyncDispatcher(WithQueueSize(1))
	if err := d.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	block := make(chan struct{})
	started := make(chan struct{})

	// Occupy the single worker.
	if err := d.Enqueue(context.Background(), func() bool {
		close(started)
		<-block
		return true
	}); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	<-started

	// Fill the queue.
	if err := d.Enqueue(context.Background(), func() bool { return true }); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	if err := d.Enqueue(context.Background(), func() bool { return true }); err != ErrQueueFull {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}

	close(block)
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if d.Stats().Dropped != 1 {
		t.Errorf("expected 1 dropped, got %d", d.Stats().Dropped)
	}
}

func TestAsyncDispatcher_Panic(t *testing.T) {
	recovered := make(chan any, 1)
	d := NewAsyncDispatcher(WithAsyncPanicHandler(func(r any, _ []byte) {
		recovered <- r
	}))
	if err := d.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop(context.Background())

	if err := d.Enqueue(context.Background(), func() bool { panic("async boom") }); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	select {
	case r := <-recovered:
		if r != "async boom" {
			t.Errorf("expected async boom, got %v", r)
		}
	case <-time.After(time.Second):
		t.Fatal("panic handler was not called")
	}

	// The worker survives the panic.
	done := make(chan struct{})
	if err := d.Enqueue(context.Background(), func() bool {
		close(done)
		return true
	}); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive panic")
	}
}

func TestAsyncDispatcher_StopDrains(t *testing.T) {
	d := NewAsyncDispatcher()
	if err := d.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var count int
	var mu sync.Mutex
	for i := 0; i < 10; i++ {
		_ = d.Enqueue(context.Background(), func() bool {
			time.Sleep(time.Millisecond)
			mu.Lock()
			count++
			mu.Unlock()
			return false
		})
	}

	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if count != 10 {
		t.Errorf("expected 10 tasks drained, got %d", count)
	}
	if d.QueueDepth() != 0 {
		t.Errorf("expected queue depth 0 after stop, got %d", d.QueueDepth())
	}
}
