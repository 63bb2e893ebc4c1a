package backend

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/evbridge/internal/html5"
)

// Terminal reads input from a tcell screen.
type Terminal struct {
	screen   tcell.Screen
	observer Observer

	mu      sync.Mutex
	canvas  html5.Selector
	start   time.Time
	buttons html5.Buttons
	x, y    int
	moved   bool
}

// NewTerminal creates a terminal source on the process terminal.
func NewTerminal(canvas html5.Selector) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, canvas), nil
}

// NewTerminalWithScreen creates a terminal source on screen.
func NewTerminalWithScreen(screen tcell.Screen, canvas html5.Selector) *Terminal {
	return &Terminal{
		screen: screen,
		canvas: canvas,
		start:  time.Now(),
	}
}

// Init initializes the screen and enables mouse and focus reporting.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnableFocus()
	return nil
}

// Shutdown restores the terminal. Run returns once the screen is finalized.
func (t *Terminal) Shutdown() {
	t.screen.Fini()
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// SetCanvas changes the selector mouse events are dispatched on.
func (t *Terminal) SetCanvas(sel html5.Selector) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.canvas = sel
}

// SetObserver sets the function told about every dispatched event.
func (t *Terminal) SetObserver(fn Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observer = fn
}

// Run dispatches terminal input into d until ctx ends, Ctrl+C is pressed or
// the screen is finalized. Ctrl+C and finalization return nil.
func (t *Terminal) Run(ctx context.Context, d Dispatcher) error {
	stop := context.AfterFunc(ctx, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // wakes PollEvent
	})
	defer stop()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if k, ok := ev.(*tcell.EventKey); ok && isInterrupt(k) {
			return nil
		}

		t.mu.Lock()
		observer := t.observer
		t.mu.Unlock()

		for _, out := range t.Translate(ev) {
			handled := d.Dispatch(ctx, out.Target, out.Type, out.Payload)
			if observer != nil {
				observer(out, handled)
			}
		}
	}
}

func isInterrupt(k *tcell.EventKey) bool {
	if k.Key() == tcell.KeyCtrlC {
		return true
	}
	return k.Key() == tcell.KeyRune && k.Rune() == 'c' && k.Modifiers()&tcell.ModCtrl != 0
}

// Translate converts a tcell event into the events to dispatch, in order.
func (t *Terminal) Translate(ev tcell.Event) []Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return t.translateKey(e)
	case *tcell.EventMouse:
		return t.translateMouse(e)
	case *tcell.EventResize:
		w, h := e.Size()
		ui := &html5.UIEvent{
			DocumentBodyWidth:  w,
			DocumentBodyHeight: h,
			WindowInnerWidth:   w,
			WindowInnerHeight:  h,
			WindowOuterWidth:   w,
			WindowOuterHeight:  h,
		}
		return []Event{{Target: html5.TargetWindow, Type: html5.EventResize, Payload: ui}}
	case *tcell.EventFocus:
		return translateFocus(e.Focused)
	default:
		return nil
	}
}

func (t *Terminal) timestamp(when time.Time) float64 {
	return float64(when.Sub(t.start)) / float64(time.Millisecond)
}

func (t *Terminal) translateKey(ev *tcell.EventKey) []Event {
	ke, ok := convertKey(ev)
	if !ok {
		return nil
	}
	ke.Timestamp = t.timestamp(ev.When())

	doc := html5.TargetDocument
	down, up := ke, ke
	out := []Event{{Target: doc, Type: html5.EventKeyDown, Payload: &down}}
	if ke.CharCode > 0 && !ke.Ctrl {
		press := ke
		out = append(out, Event{Target: doc, Type: html5.EventKeyPress, Payload: &press})
	}
	return append(out, Event{Target: doc, Type: html5.EventKeyUp, Payload: &up})
}

func (t *Terminal) translateMouse(ev *tcell.EventMouse) []Event {
	x, y := ev.Position()
	mask := ev.Buttons()

	t.mu.Lock()
	defer t.mu.Unlock()

	canvas := html5.TargetRef(t.canvas)
	base := html5.MouseEvent{
		Timestamp: t.timestamp(ev.When()),
		ScreenX:   x,
		ScreenY:   y,
		ClientX:   x,
		ClientY:   y,
		TargetX:   x,
		TargetY:   y,
		Buttons:   convertButtons(mask),
		Modifiers: convertMod(ev.Modifiers()),
	}

	var out []Event
	if !t.moved || x != t.x || y != t.y {
		move := base
		if t.moved {
			move.MovementX, move.MovementY = x-t.x, y-t.y
		}
		out = append(out, Event{Target: canvas, Type: html5.EventMouseMove, Payload: &move})
		t.x, t.y, t.moved = x, y, true
	}

	for _, b := range buttonOrder {
		was, is := t.buttons&b.mask != 0, base.Buttons&b.mask != 0
		switch {
		case is && !was:
			down := base
			down.Button = b.button
			out = append(out, Event{Target: canvas, Type: html5.EventMouseDown, Payload: &down})
		case was && !is:
			up, click := base, base
			up.Button, click.Button = b.button, b.button
			out = append(out,
				Event{Target: canvas, Type: html5.EventMouseUp, Payload: &up},
				Event{Target: canvas, Type: html5.EventClick, Payload: &click},
			)
		}
	}
	t.buttons = base.Buttons

	if w := wheelEvent(base, mask); w != nil {
		out = append(out, Event{Target: canvas, Type: html5.EventWheel, Payload: w})
	}
	return out
}

// wheelEvent returns the wheel payload for the wheel bits of mask, in lines.
func wheelEvent(base html5.MouseEvent, mask tcell.ButtonMask) *html5.WheelEvent {
	var dx, dy float64
	if mask&tcell.WheelUp != 0 {
		dy--
	}
	if mask&tcell.WheelDown != 0 {
		dy++
	}
	if mask&tcell.WheelLeft != 0 {
		dx--
	}
	if mask&tcell.WheelRight != 0 {
		dx++
	}
	if dx == 0 && dy == 0 {
		return nil
	}
	return &html5.WheelEvent{
		Mouse:     base,
		DeltaX:    dx,
		DeltaY:    dy,
		DeltaMode: html5.DeltaLine,
	}
}

func translateFocus(focused bool) []Event {
	et := html5.EventBlur
	vis := &html5.VisibilityChangeEvent{Hidden: true, VisibilityState: html5.VisibilityHidden}
	if focused {
		et = html5.EventFocus
		vis = &html5.VisibilityChangeEvent{Hidden: false, VisibilityState: html5.VisibilityVisible}
	}
	return []Event{
		{Target: html5.TargetWindow, Type: et, Payload: &html5.FocusEvent{NodeName: "#window"}},
		{Target: html5.TargetDocument, Type: html5.EventVisibilityChange, Payload: vis},
	}
}

// Status draws text on the first row of the screen, clearing the rest of
// the row.
func (t *Terminal) Status(text string) {
	width, _ := t.screen.Size()
	runes := []rune(text)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		t.screen.SetContent(x, 0, r, nil, tcell.StyleDefault)
	}
	t.screen.Show()
}
