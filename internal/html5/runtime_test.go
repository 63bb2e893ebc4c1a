package html5

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTargetSentinels(t *testing.T) {
	if !IsSentinel(TargetWindow) || !IsSentinel(TargetDocument) || !IsSentinel(TargetScreen) {
		t.Error("expected window, document and screen to be sentinels")
	}
	if IsSentinel(Selector("window")) {
		t.Error("a selector named window must not be the window sentinel")
	}
	if TargetName(TargetScreen) != "screen" {
		t.Errorf("expected screen, got %q", TargetName(TargetScreen))
	}
	if TargetName(Selector("#canvas")) != "#canvas" {
		t.Errorf("expected #canvas, got %q", TargetName(Selector("#canvas")))
	}
	if TargetName(nil) != "" {
		t.Errorf("expected empty name for nil, got %q", TargetName(nil))
	}
}

func TestResultString(t *testing.T) {
	tests := []struct {
		result   Result
		expected string
	}{
		{ResultSuccess, "success"},
		{ResultUnknownTarget, "unknown target"},
		{Result(42), "result(42)"},
	}
	for _, tt := range tests {
		if got := tt.result.String(); got != tt.expected {
			t.Errorf("Result(%d).String() = %q, want %q", int(tt.result), got, tt.expected)
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if EventMouseMove.String() != "mousemove" {
		t.Errorf("expected mousemove, got %q", EventMouseMove.String())
	}
	if EventType(99).String() != "event(99)" {
		t.Errorf("expected event(99), got %q", EventType(99).String())
	}
	if et, ok := ParseEventType("wheel"); !ok || et != EventWheel {
		t.Errorf("ParseEventType(wheel) = %v, %v", et, ok)
	}
	if _, ok := ParseEventType("nope"); ok {
		t.Error("expected unknown event name to fail")
	}
}

func TestRuntime_RegisterValidation(t *testing.T) {
	rt := New(WithSelectors("#canvas"))
	cb := func(EventType, *MouseEvent, UserData) bool { return true }
	ud := uuid.New()

	tests := []struct {
		name     string
		target   TargetRef
		cb       Callback[MouseEvent]
		expected Result
	}{
		{"sentinel", TargetWindow, cb, ResultSuccess},
		{"defined selector", Selector("#canvas"), cb, ResultSuccess},
		{"undefined selector", Selector("#missing"), cb, ResultUnknownTarget},
		{"empty selector", Selector(""), cb, ResultInvalidTarget},
		{"nil target", nil, cb, ResultInvalidTarget},
		{"nil callback", TargetWindow, nil, ResultInvalidParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rt.SetClickCallback(tt.target, ud, false, tt.cb, CallingThread); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRuntime_DispatchAndRemove(t *testing.T) {
	rt := New(WithSelectors("#canvas"))
	ud := uuid.New()

	var got []UserData
	cb := Callback[MouseEvent](func(et EventType, e *MouseEvent, userData UserData) bool {
		if et != EventMouseMove {
			t.Errorf("expected mousemove, got %v", et)
		}
		if e.ClientX != 7 {
			t.Errorf("expected clientX 7, got %d", e.ClientX)
		}
		got = append(got, userData)
		return true
	})

	if res := rt.SetMouseMoveCallback(Selector("#canvas"), ud, false, cb, CallingThread); res != ResultSuccess {
		t.Fatalf("register failed: %v", res)
	}

	if !rt.Dispatch(context.Background(), Selector("#canvas"), EventMouseMove, &MouseEvent{ClientX: 7}) {
		t.Error("expected dispatch to be handled")
	}
	if rt.Dispatch(context.Background(), Selector("#canvas"), EventClick, &MouseEvent{}) {
		t.Error("no click listener: expected unhandled")
	}
	if rt.Dispatch(context.Background(), TargetWindow, EventMouseMove, &MouseEvent{}) {
		t.Error("no window listener: expected unhandled")
	}
	if rt.Dispatch(context.Background(), Selector("#canvas"), EventMouseMove, &KeyboardEvent{}) {
		t.Error("wrong payload type: expected unhandled")
	}

	if len(got) != 1 || got[0] != ud {
		t.Fatalf("expected user data %v delivered once, got %v", ud, got)
	}

	// Wrong callback identity does not match.
	other := func(EventType, *MouseEvent, UserData) bool { return false }
	if res := rt.RemoveEventListener(Selector("#canvas"), ud, EventMouseMove, other); res == ResultSuccess {
		t.Error("expected removal with another callback to fail")
	}
	if res := rt.RemoveEventListener(Selector("#canvas"), ud, EventMouseMove, cb); res != ResultSuccess {
		t.Errorf("expected removal to succeed, got %v", res)
	}
	if rt.Count() != 0 {
		t.Errorf("expected 0 registrations, got %d", rt.Count())
	}
	if res := rt.RemoveEventListener(Selector("#canvas"), ud, EventMouseMove, cb); res == ResultSuccess {
		t.Error("expected second removal to fail")
	}
	if res := rt.RemoveEventListener(Selector("#canvas"), ud, EventMouseMove, "not a func"); res != ResultInvalidParam {
		t.Errorf("expected invalid param, got %v", res)
	}
}

func TestRuntime_RegisterSameKeyReplaces(t *testing.T) {
	rt := New()
	ud := uuid.New()
	cb := func(EventType, *UIEvent, UserData) bool { return true }

	rt.SetResizeCallback(TargetWindow, ud, false, cb, CallingThread)
	rt.SetResizeCallback(TargetWindow, ud, false, cb, CallingThread)

	if n := rt.CountFor(TargetWindow, EventResize); n != 1 {
		t.Errorf("expected 1 registration, got %d", n)
	}

	rt.SetResizeCallback(TargetWindow, uuid.New(), false, cb, CallingThread)
	if n := rt.CountFor(TargetWindow, EventResize); n != 2 {
		t.Errorf("expected 2 registrations, got %d", n)
	}
}

func TestRuntime_ImplicitTarget(t *testing.T) {
	rt := New()
	ud := uuid.New()
	cb := func(_ EventType, e *VisibilityChangeEvent, _ UserData) bool { return e.Hidden }

	if res := rt.SetVisibilityChangeCallback(ud, false, cb, CallingThread); res != ResultSuccess {
		t.Fatalf("register failed: %v", res)
	}
	if !rt.Dispatch(context.Background(), TargetDocument, EventVisibilityChange, &VisibilityChangeEvent{Hidden: true}) {
		t.Error("expected visibility change on document to be handled")
	}
	if res := rt.RemoveEventListener(TargetDocument, ud, EventVisibilityChange, cb); res != ResultSuccess {
		t.Errorf("expected removal to succeed, got %v", res)
	}
}

func TestRuntime_ThreadDelivery(t *testing.T) {
	rt := New()
	defer rt.Close(context.Background())

	var mu sync.Mutex
	var seen []int
	done := make(chan struct{}, 3)

	cb := func(_ EventType, e *MouseEvent, _ UserData) bool {
		mu.Lock()
		seen = append(seen, e.ClientX)
		mu.Unlock()
		done <- struct{}{}
		return true
	}
	rt.SetMouseMoveCallback(TargetWindow, uuid.New(), false, cb, MainThread)

	ev := &MouseEvent{}
	for i := 1; i <= 3; i++ {
		ev.ClientX = i
		if rt.Dispatch(context.Background(), TargetWindow, EventMouseMove, ev) {
			t.Error("threaded delivery must not report handled to the caller")
		}
	}

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("threaded callback not delivered")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for i, x := range seen {
		if x != i+1 {
			t.Errorf("position %d: expected %d, got %d (payload not copied?)", i, i+1, x)
		}
	}
}

func TestRuntime_Stats(t *testing.T) {
	rt := New()
	defer rt.Close(context.Background())

	done := make(chan struct{}, 1)
	rt.SetClickCallback(TargetWindow, uuid.New(), false, func(EventType, *MouseEvent, UserData) bool {
		return true
	}, CallingThread)
	rt.SetKeyUpCallback(TargetDocument, uuid.New(), false, func(EventType, *KeyboardEvent, UserData) bool {
		done <- struct{}{}
		return true
	}, MainThread)

	rt.Dispatch(context.Background(), TargetWindow, EventClick, &MouseEvent{})
	rt.Dispatch(context.Background(), TargetWindow, EventClick, &MouseEvent{})
	rt.Dispatch(context.Background(), TargetDocument, EventKeyUp, &KeyboardEvent{})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("threaded callback not delivered")
	}

	stats := rt.Stats()
	if stats.Dispatched != 3 {
		t.Errorf("expected 3 dispatched, got %d", stats.Dispatched)
	}
	if stats.Handled < 2 {
		t.Errorf("expected at least 2 handled, got %d", stats.Handled)
	}
	if stats.Panicked != 0 {
		t.Errorf("expected no panics, got %d", stats.Panicked)
	}
}

func TestRuntime_CallbackPanic(t *testing.T) {
	var recovered any
	rt := New(WithPanicHandler(func(r any, _ []byte) { recovered = r }))

	rt.SetKeyDownCallback(TargetDocument, uuid.New(), false, func(EventType, *KeyboardEvent, UserData) bool {
		panic("key boom")
	}, CallingThread)
	rt.SetKeyDownCallback(TargetDocument, uuid.New(), false, func(EventType, *KeyboardEvent, UserData) bool {
		return true
	}, CallingThread)

	if !rt.Dispatch(context.Background(), TargetDocument, EventKeyDown, &KeyboardEvent{Key: "a"}) {
		t.Error("expected second listener to still handle the event")
	}
	if recovered != "key boom" {
		t.Errorf("expected panic to be reported, got %v", recovered)
	}
}

func TestRuntime_CallbackMayRemoveItself(t *testing.T) {
	rt := New()
	ud := uuid.New()

	var cb Callback[FocusEvent]
	cb = func(EventType, *FocusEvent, UserData) bool {
		rt.RemoveEventListener(TargetWindow, ud, EventFocus, cb)
		return true
	}
	rt.SetFocusCallback(TargetWindow, ud, false, cb, CallingThread)

	if !rt.Dispatch(context.Background(), TargetWindow, EventFocus, &FocusEvent{}) {
		t.Error("expected handled")
	}
	if rt.Count() != 0 {
		t.Errorf("expected callback to have removed itself, got %d registrations", rt.Count())
	}
}

func TestRuntime_Undefine(t *testing.T) {
	rt := New(WithSelectors("#a"))
	cb := func(EventType, *MouseEvent, UserData) bool { return true }
	rt.SetClickCallback(Selector("#a"), uuid.New(), false, cb, CallingThread)
	rt.SetClickCallback(TargetWindow, uuid.New(), false, cb, CallingThread)

	rt.Undefine("#a")

	if rt.Count() != 1 {
		t.Errorf("expected 1 registration left, got %d", rt.Count())
	}
	if res := rt.SetClickCallback(Selector("#a"), uuid.New(), false, cb, CallingThread); res != ResultUnknownTarget {
		t.Errorf("expected unknown target, got %v", res)
	}
}

func TestRuntime_Close(t *testing.T) {
	rt := New()
	cb := func(EventType, *MouseEvent, UserData) bool { return true }
	rt.SetClickCallback(TargetWindow, uuid.New(), false, cb, MainThread)
	rt.Dispatch(context.Background(), TargetWindow, EventClick, &MouseEvent{})

	if err := rt.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := rt.Close(context.Background()); err != ErrRuntimeClosed {
		t.Errorf("expected ErrRuntimeClosed, got %v", err)
	}
	if res := rt.SetClickCallback(TargetWindow, uuid.New(), false, cb, CallingThread); res != ResultFailed {
		t.Errorf("expected failed registration on closed runtime, got %v", res)
	}
	if rt.Dispatch(context.Background(), TargetWindow, EventClick, &MouseEvent{}) {
		t.Error("expected no delivery on closed runtime")
	}
}

func TestNewPayload(t *testing.T) {
	tests := []struct {
		eventType EventType
		expected  any
	}{
		{EventMouseMove, &MouseEvent{}},
		{EventWheel, &WheelEvent{}},
		{EventKeyUp, &KeyboardEvent{}},
		{EventFocusOut, &FocusEvent{}},
		{EventScroll, &UIEvent{}},
		{EventVisibilityChange, &VisibilityChangeEvent{}},
	}
	for _, tt := range tests {
		got, ok := NewPayload(tt.eventType)
		if !ok {
			t.Errorf("NewPayload(%s) failed", tt.eventType)
			continue
		}
		if fmt.Sprintf("%T", got) != fmt.Sprintf("%T", tt.expected) {
			t.Errorf("NewPayload(%s) = %T, want %T", tt.eventType, got, tt.expected)
		}
	}
	if _, ok := NewPayload(EventType(99)); ok {
		t.Error("expected unknown event type to fail")
	}
}
