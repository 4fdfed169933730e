package bridge

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/olton/router"
)

// Inbound message types.
const (
	msgNavigate = "navigate"
	msgBack     = "back"
	msgForward  = "forward"
)

// Outbound message types.
const (
	msgNavigated = "navigated"
	msgNotFound  = "notFound"
	msgError     = "error"
)

type inboundMessage struct {
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	Replace bool   `json:"replace,omitempty"`
}

type outboundMessage struct {
	Type    string        `json:"type"`
	Path    string        `json:"path"`
	Pattern string        `json:"pattern,omitempty"`
	Params  router.Params `json:"params,omitempty"`
	Error   string        `json:"error,omitempty"`
}

const defaultShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>App</title></head>
<body><div id="app"></div></body>
</html>
`

const defaultWriteTimeout = 10 * time.Second

// Server bridges a router to browser clients.
type Server struct {
	router   *router.Router
	logger   *slog.Logger
	shell    []byte
	metrics  http.Handler
	wsPath   string
	timeout  time.Duration
	upgrader websocket.Upgrader

	// mu guards the active connection. Writes come from the read
	// goroutine and displacement from the upgrade handler.
	mu   sync.Mutex
	conn *websocket.Conn
}

// Option configures the bridge server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithShell sets the SPA shell HTML served for non-protocol paths.
func WithShell(html []byte) Option {
	return func(s *Server) {
		s.shell = html
	}
}

// WithMetricsHandler mounts a handler at /metrics, typically
// promhttp.Handler().
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithWebSocketPath sets the WebSocket endpoint path (default "/ws").
func WithWebSocketPath(path string) Option {
	return func(s *Server) {
		s.wsPath = path
	}
}

// WithWriteTimeout sets the per-message write deadline (default 10s).
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// WithCheckOrigin sets the WebSocket origin check.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = check
	}
}

// New creates a bridge for the given router and subscribes to its
// event channels. The router must not be shared with another bridge.
func New(r *router.Router, opts ...Option) *Server {
	s := &Server{
		router:  r,
		logger:  r.Logger(),
		shell:   []byte(defaultShell),
		wsPath:  "/ws",
		timeout: defaultWriteTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r.On(router.EventAfterNavigate, func(d router.EventData) bool {
		s.send(outboundMessage{
			Type:    msgNavigated,
			Path:    d.Path,
			Pattern: d.Match.Pattern,
			Params:  d.Match.Params,
		})
		return true
	})
	r.On(router.EventRouteNotFound, func(d router.EventData) bool {
		s.send(outboundMessage{Type: msgNotFound, Path: d.Path})
		return true
	})
	r.On(router.EventError, func(d router.EventData) bool {
		reason := ""
		if d.Err != nil {
			reason = d.Err.Error()
		}
		s.send(outboundMessage{Type: msgError, Path: d.Path, Error: reason})
		return true
	})

	return s
}

// Handler returns the HTTP surface: the WebSocket endpoint, the
// optional metrics endpoint, and the SPA shell for everything else.
func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Get(s.wsPath, s.handleWebSocket)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(s.shell)
	})
	return mux
}

// handleWebSocket upgrades the connection, displaces any previous
// client, and runs the read loop until the connection closes.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
	}
	s.conn = conn
	s.mu.Unlock()

	s.readLoop(r, conn)
}

func (s *Server) readLoop(r *http.Request, conn *websocket.Conn) {
	defer func() {
		s.mu.Lock()
		if s.conn == conn {
			s.conn = nil
		}
		s.mu.Unlock()
		conn.Close()
	}()

	ctx := r.Context()
	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		switch msg.Type {
		case msgNavigate:
			s.router.NavigateTo(ctx, msg.Path, msg.Replace)

		case msgBack:
			if nav, ok := s.router.History().(backForward); ok {
				s.router.Navigate(ctx, nav.Back())
			}

		case msgForward:
			if nav, ok := s.router.History().(backForward); ok {
				s.router.Navigate(ctx, nav.Forward())
			}

		default:
			s.logger.Warn("unknown message type", "type", msg.Type)
		}
	}
}

// backForward is satisfied by history implementations that can move
// through their stack, like router.MemoryHistory.
type backForward interface {
	Back() string
	Forward() string
}

// send writes one outbound message to the active connection, if any.
func (s *Server) send(msg outboundMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("marshal error", "error", err)
		return
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.timeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("write error", "error", err)
		s.conn.Close()
		s.conn = nil
	}
}
