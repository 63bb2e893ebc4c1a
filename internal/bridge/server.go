// Package bridge receives DOM events from remote pages over WebSocket and
// dispatches them into an html5 runtime.
//
// Each binary message is a msgpack Frame; the server answers every frame
// with a msgpack Ack telling whether a listener handled the event.
package bridge

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/dshills/evbridge/internal/html5"
	"github.com/dshills/evbridge/internal/log"
)

var server_log = log.NewLog("evbridge:bridge")

// Dispatcher delivers one event to the listeners of a target.
type Dispatcher interface {
	Dispatch(ctx context.Context, target html5.TargetRef, eventType html5.EventType, payload any) bool
}

// Observer is told about every dispatched frame.
type Observer func(target html5.TargetRef, eventType html5.EventType, handled bool)

// Server is an http.Handler accepting WebSocket event streams.
type Server struct {
	dispatcher Dispatcher
	upgrader   *websocket.Upgrader
	readLimit  int64
	observer   Observer

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithReadLimit sets the maximum frame size in bytes.
func WithReadLimit(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.readLimit = n
		}
	}
}

// WithCheckOrigin sets the origin check of the upgrade.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = fn
	}
}

// WithObserver sets the function told about every dispatched frame.
func WithObserver(fn Observer) Option {
	return func(s *Server) {
		s.observer = fn
	}
}

// NewServer creates a server dispatching into d.
func NewServer(d Dispatcher, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		dispatcher: d,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		readLimit: 64 << 10,
		ctx:       ctx,
		cancel:    cancel,
		conns:     make(map[*websocket.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServeHTTP upgrades the request and serves frames until the peer leaves
// or the server is closed.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		http.Error(w, "Upgrade Required", http.StatusUpgradeRequired)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		server_log.Debug("websocket error before upgrade: %s", err)
		return
	}
	conn.SetReadLimit(s.readLimit)

	if !s.track(conn) {
		conn.Close()
		return
	}
	defer s.untrack(conn)

	server_log.Debug("peer %s connected", r.RemoteAddr)
	s.serve(conn)
	server_log.Debug("peer %s disconnected", r.RemoteAddr)
}

func (s *Server) serve(conn *websocket.Conn) {
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				server_log.Warning("read: %s", err)
			}
			return
		}
		if mt != websocket.BinaryMessage {
			server_log.Debug("ignoring non-binary message")
			continue
		}

		ack := s.handle(data)
		out, err := msgpack.Marshal(&ack)
		if err != nil {
			server_log.Error("encode ack: %s", err)
			return
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, out); err != nil {
			server_log.Debug("write: %s", err)
			return
		}
	}
}

// handle dispatches one encoded frame.
func (s *Server) handle(data []byte) Ack {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Ack{Error: err.Error()}
	}

	target, et, payload, err := f.decode()
	if err != nil {
		return Ack{Seq: f.Seq, Error: err.Error()}
	}

	handled := s.dispatcher.Dispatch(s.ctx, target, et, payload)
	if s.observer != nil {
		s.observer(target, et, handled)
	}
	return Ack{Seq: f.Seq, Handled: handled}
}

func (s *Server) track(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()

	conn.Close()
	s.wg.Done()
}

// Connections returns the number of open connections.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Close disconnects every peer and waits for their handlers to return.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.cancel()
	for conn := range s.conns {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}
