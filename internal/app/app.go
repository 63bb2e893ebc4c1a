// Package app wires configuration, the html5 runtime, the window listeners
// and an event source into the evtap application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/evbridge/internal/backend"
	"github.com/dshills/evbridge/internal/bridge"
	"github.com/dshills/evbridge/internal/config"
	"github.com/dshills/evbridge/internal/config/watcher"
	"github.com/dshills/evbridge/internal/event"
	"github.com/dshills/evbridge/internal/html5"
	"github.com/dshills/evbridge/internal/log"
	"github.com/dshills/evbridge/internal/report"
	"github.com/dshills/evbridge/internal/window"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. It is watched for
	// changes while running.
	ConfigPath string

	// Listen overrides the bridge address of the configuration.
	Listen string

	// Debug enables debug logging.
	Debug bool

	// Screen replaces the process terminal.
	Screen tcell.Screen

	// Output receives log output. Defaults to stderr.
	Output io.Writer
}

// Application is the central coordinator of the evtap components.
type Application struct {
	opts Options

	mu       sync.Mutex
	cfg      *config.Config
	logger   *log.Log
	reporter *report.Handler
	runtime  *html5.Runtime
	window   *window.Window
	terminal *backend.Terminal
	bridge   *bridge.Server
	listener net.Listener

	running  atomic.Bool
	shutdown sync.Once
	cancel   context.CancelFunc
	handled  atomic.Int64
}

// New loads the configuration and builds every component.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.Listen != "" {
		cfg.Bridge.Listen = opts.Listen
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	app := &Application{opts: opts, cfg: cfg}
	app.logger = log.NewLog(cfg.Log.Prefix)
	app.logger.SetOutput(opts.Output)
	app.logger.DEBUG = cfg.Log.Debug || opts.Debug
	app.reporter = report.NewHandler(app.logger)

	app.runtime = html5.New(
		html5.WithSelectors(cfg.Canvas()),
		html5.WithQueueSize(cfg.Target.QueueSize),
		html5.WithPanicHandler(func(recovered any, stack []byte) {
			app.reporter.Report(report.PlatformError, "callback panicked: %v\n%s", recovered, stack)
		}),
	)

	app.window = window.New(cfg.Canvas(),
		window.WithGroups(cfg.Groups()...),
		window.WithLogger(app.logger),
		window.WithListenerOptions(
			event.WithReporter(app.reporter),
			event.WithThread(cfg.Thread()),
		),
	)
	app.installCallbacks()

	return app, nil
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

// Runtime returns the html5 runtime.
func (app *Application) Runtime() *html5.Runtime {
	return app.runtime
}

// Window returns the window listeners.
func (app *Application) Window() *window.Window {
	return app.window
}

// Reporter returns the error reporter.
func (app *Application) Reporter() *report.Handler {
	return app.reporter
}

// Handled returns the number of events a window callback handled.
func (app *Application) Handled() int64 {
	return app.handled.Load()
}

// Addr returns the bridge address once it is listening, or "".
func (app *Application) Addr() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.listener == nil {
		return ""
	}
	return app.listener.Addr().String()
}

// Run attaches the window and runs the event source until ctx ends or the
// source stops. Missing input channels are logged and tolerated.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	app.mu.Lock()
	app.cancel = cancel
	app.mu.Unlock()
	defer cancel()

	if err := app.window.Attach(app.runtime); err != nil {
		if !errors.Is(err, window.ErrChannels) {
			return &InitError{Component: "window", Err: err}
		}
		app.logger.Warning("%s", err)
	}
	app.logger.Debug("listening on %v", app.window.Registered())

	if app.opts.ConfigPath != "" {
		w, err := watcher.New(app.opts.ConfigPath, watcher.WithErrorHandler(func(err error) {
			app.logger.Warning("config watcher: %s", err)
		}))
		if err != nil {
			app.logger.Warning("config reload disabled: %s", err)
		} else {
			defer w.Close()
			w.OnChange(app.reload)
		}
	}

	if app.Config().Bridge.Listen != "" {
		return app.runBridge(ctx)
	}
	return app.runTerminal(ctx)
}

func (app *Application) runTerminal(ctx context.Context) error {
	var term *backend.Terminal
	if app.opts.Screen != nil {
		term = backend.NewTerminalWithScreen(app.opts.Screen, app.Config().Canvas())
	} else {
		var err error
		if term, err = backend.NewTerminal(app.Config().Canvas()); err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
	}
	if err := term.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}

	app.mu.Lock()
	app.terminal = term
	app.mu.Unlock()
	defer func() {
		app.mu.Lock()
		app.terminal = nil
		app.mu.Unlock()
		term.Shutdown()
	}()

	term.SetObserver(func(ev backend.Event, handled bool) {
		app.logger.Debug("%s on %s handled=%v", ev.Type, html5.TargetName(ev.Target), handled)
	})
	term.Status("evtap: Ctrl+C to quit")

	err := term.Run(ctx, app.runtime)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (app *Application) runBridge(ctx context.Context) error {
	cfg := app.Config()
	srv := bridge.NewServer(app.runtime,
		bridge.WithReadLimit(cfg.Bridge.ReadLimit),
		bridge.WithObserver(func(target html5.TargetRef, et html5.EventType, handled bool) {
			app.logger.Debug("%s on %s handled=%v", et, html5.TargetName(target), handled)
		}),
	)

	ln, err := net.Listen("tcp", cfg.Bridge.Listen)
	if err != nil {
		return &InitError{Component: "bridge", Err: err}
	}
	app.mu.Lock()
	app.bridge = srv
	app.listener = ln
	app.mu.Unlock()

	mux := http.NewServeMux()
	mux.Handle("/events", srv)
	httpServer := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.Serve(ln) }()
	app.logger.Info("bridge listening on ws://%s/events", ln.Addr())

	select {
	case <-ctx.Done():
	case err := <-errCh:
		srv.Close()
		return err
	}

	srv.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// reload applies a changed configuration file. Only the canvas selector is
// applied live; other changes take effect on restart.
func (app *Application) reload(ev watcher.Event) {
	if ev.Op == watcher.OpRemove {
		return
	}
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		app.logger.Error("reloading %s: %s", ev.Path, err)
		return
	}

	app.mu.Lock()
	old := app.cfg
	if app.opts.Listen != "" {
		cfg.Bridge.Listen = app.opts.Listen
	}
	app.cfg = cfg
	term := app.terminal
	app.mu.Unlock()

	if cfg.Canvas() == old.Canvas() {
		return
	}
	app.runtime.Define(cfg.Canvas())
	if err := app.window.Retarget(cfg.Canvas()); err != nil {
		app.logger.Warning("retarget %s: %s", cfg.Canvas(), err)
	}
	app.runtime.Undefine(old.Canvas())
	if term != nil {
		term.SetCanvas(cfg.Canvas())
	}
	app.logger.Info("canvas is now %s", cfg.Canvas())
}

// Shutdown stops the event source and removes every listener. It is safe
// to call more than once.
func (app *Application) Shutdown() {
	app.shutdown.Do(func() {
		app.mu.Lock()
		cancel := app.cancel
		app.mu.Unlock()
		if cancel != nil {
			cancel()
		}

		app.window.Close()

		stats := app.runtime.Stats()
		app.logger.Debug("delivered %d events: %d handled, %d panicked, %d dropped",
			stats.Dispatched, stats.Handled, stats.Panicked, stats.Dropped)

		ctx, cancelClose := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelClose()
		if err := app.runtime.Close(ctx); err != nil {
			app.logger.Warning("closing runtime: %s", err)
		}
	})
}

func (app *Application) count(handled bool) bool {
	if handled {
		app.handled.Add(1)
	}
	return handled
}

func (app *Application) installCallbacks() {
	w, l := app.window, app.logger

	w.OnCursorPos(func(x, y float64) {
		app.count(true)
		l.Debug("cursor %.0f,%.0f", x, y)
	})
	w.OnMouseButton(func(b html5.MouseButton, a window.Action, mods html5.Modifiers) {
		app.count(true)
		app.status(fmt.Sprintf("button %d %s", b, a))
		l.Info("button %d %s %+v", b, a, mods)
	})
	w.OnScroll(func(dx, dy float64) {
		app.count(true)
		l.Info("scroll %.1f,%.1f", dx, dy)
	})
	w.OnKey(func(key, code string, a window.Action, mods html5.Modifiers) {
		app.count(true)
		app.status(fmt.Sprintf("key %s %s", key, a))
		l.Info("key %q code %q %s %+v", key, code, a, mods)
	})
	w.OnChar(func(r rune) {
		app.count(true)
		l.Debug("char %q", r)
	})
	w.OnFocus(func(focused bool) {
		app.count(true)
		l.Info("focus %v", focused)
	})
	w.OnSize(func(width, height int) {
		app.count(true)
		l.Info("size %dx%d", width, height)
	})
	w.OnCursorEnter(func(entered bool) {
		app.count(true)
		l.Debug("cursor enter %v", entered)
	})
	w.OnVisibility(func(hidden bool) {
		app.count(true)
		l.Info("hidden %v", hidden)
	})
}

func (app *Application) status(text string) {
	app.mu.Lock()
	term := app.terminal
	app.mu.Unlock()
	if term != nil {
		term.Status(text)
	}
}
