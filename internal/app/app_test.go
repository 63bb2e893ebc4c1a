package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"

	"github.com/dshills/evbridge/internal/bridge"
	"github.com/dshills/evbridge/internal/config"
	"github.com/dshills/evbridge/internal/config/watcher"
	"github.com/dshills/evbridge/internal/html5"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evbridge.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestNew_Defaults(t *testing.T) {
	app, err := New(Options{Output: io.Discard})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Shutdown()

	if got := app.Config().Canvas(); got != "#canvas" {
		t.Errorf("Canvas = %q, want #canvas", got)
	}
	if got := app.Window().Canvas(); got != "#canvas" {
		t.Errorf("Window canvas = %q, want #canvas", got)
	}
	if app.Addr() != "" {
		t.Errorf("Addr = %q before Run", app.Addr())
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "[target]\nthread = 0\n")

	_, err := New(Options{ConfigPath: path, Output: io.Discard})
	if !errors.Is(err, ErrInitialization) {
		t.Fatalf("err = %v, want ErrInitialization", err)
	}
	if !errors.Is(err, config.ErrInvalidThread) {
		t.Errorf("err = %v, want ErrInvalidThread", err)
	}
}

func TestRun_Terminal(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	app, err := New(Options{Screen: screen, Output: io.Discard})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	waitFor(t, "terminal", func() bool {
		app.mu.Lock()
		defer app.mu.Unlock()
		return app.terminal != nil
	})
	if got := app.Window().Registered(); len(got) != 13 {
		t.Errorf("Registered = %d channels, want 13", len(got))
	}

	if err := app.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run = %v, want ErrAlreadyRunning", err)
	}

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	waitFor(t, "key delivery", func() bool { return app.Handled() >= 2 })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}

	app.Shutdown()
	app.Shutdown()
	if n := app.Runtime().Count(); n != 0 {
		t.Errorf("Count after Shutdown = %d, want 0", n)
	}
}

func TestRun_Bridge(t *testing.T) {
	path := writeConfig(t, "[target]\nevents = [\"keyboard\"]\n")
	app, err := New(Options{ConfigPath: path, Listen: "127.0.0.1:0", Output: io.Discard})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	waitFor(t, "listener", func() bool { return app.Addr() != "" })

	if got := app.Window().Registered(); len(got) != 3 {
		t.Errorf("Registered = %v, want the keyboard channels", got)
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+app.Addr()+"/events", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	frames := []struct {
		target  html5.TargetRef
		et      html5.EventType
		payload any
		handled bool
	}{
		{html5.TargetDocument, html5.EventKeyDown, &html5.KeyboardEvent{Key: "a", Code: "KeyA"}, true},
		{html5.Selector("#canvas"), html5.EventMouseDown, &html5.MouseEvent{}, false},
	}
	for i, f := range frames {
		data, err := bridge.EncodeFrame(uint64(i+1), f.target, f.et, f.payload)
		if err != nil {
			t.Fatalf("EncodeFrame: %v", err)
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			t.Fatalf("WriteMessage: %v", err)
		}
		_, reply, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage: %v", err)
		}
		ack, err := bridge.DecodeAck(reply)
		if err != nil {
			t.Fatalf("DecodeAck: %v", err)
		}
		if ack.Seq != uint64(i+1) || ack.Handled != f.handled {
			t.Errorf("%s: ack = %+v, want handled %v", f.et, ack, f.handled)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	app.Shutdown()
}

func TestReload_Canvas(t *testing.T) {
	path := writeConfig(t, "[target]\ncanvas = \"#one\"\nevents = [\"mouse\"]\n")
	app, err := New(Options{ConfigPath: path, Output: io.Discard})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer app.Shutdown()

	if err := app.Window().Attach(app.Runtime()); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := os.WriteFile(path, []byte("[target]\ncanvas = \"#two\"\nevents = [\"mouse\"]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	app.reload(watcherEvent(path))

	if got := app.Window().Canvas(); got != "#two" {
		t.Fatalf("Canvas = %q, want #two", got)
	}
	if n := app.Runtime().CountFor(html5.Selector("#two"), html5.EventMouseDown); n != 1 {
		t.Errorf("listeners on #two = %d, want 1", n)
	}
	if n := app.Runtime().CountFor(html5.Selector("#one"), html5.EventMouseDown); n != 0 {
		t.Errorf("listeners on #one = %d, want 0", n)
	}
}

func watcherEvent(path string) watcher.Event {
	return watcher.Event{Path: path, Op: watcher.OpWrite, Time: time.Now()}
}
