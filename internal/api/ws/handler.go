package ws

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jai-git4208/portfolio-os/backend/internal/infrastructure/monitoring"
	"github.com/jai-git4208/portfolio-os/backend/internal/shared/id"
	"github.com/jai-git4208/portfolio-os/backend/internal/shared/types"
	"github.com/jai-git4208/portfolio-os/backend/internal/shared/utils"
	"github.com/jai-git4208/portfolio-os/backend/internal/shell"
	"github.com/jai-git4208/portfolio-os/backend/internal/terminal"
)

// Config tunes connection keep-alive and buffering
type Config struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	SendBuffer     int
	CloseGrace     time.Duration
	AllowedOrigins []string
}

// DefaultConfig returns the connection settings used by the server
func DefaultConfig() Config {
	return Config{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		SendBuffer:     256,
		CloseGrace:     100 * time.Millisecond,
		AllowedOrigins: []string{"*"},
	}
}

// Handler streams one terminal session over a WebSocket
type Handler struct {
	manager  *terminal.Manager
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	cfg      Config
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(manager *terminal.Manager, metrics *monitoring.Metrics, logger *zap.Logger, cfg Config) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = DefaultConfig().SendBuffer
	}
	h := &Handler{
		manager: manager,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Register mounts the stream route
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/terminal/sessions/:id/stream", h.HandleConnection)
}

// HandleConnection upgrades the request and pumps the session until either
// side goes away. Lines after ?since=N are replayed first.
func (h *Handler) HandleConnection(c *gin.Context) {
	parsed, err := id.ParseSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sessionID := parsed.String()

	var since uint64
	if raw := c.Query("since"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be a non-negative integer"})
			return
		}
		since = v
	}

	session, err := h.manager.Session(sessionID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, terminal.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{
		h:         h,
		conn:      conn,
		sessionID: sessionID,
		session:   session,
		out:       make(chan Event, h.cfg.SendBuffer),
		done:      make(chan struct{}),
		logger: h.logger.With(
			zap.String("conn_id", uuid.NewString()),
			zap.String("session_id", sessionID)),
	}

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	cl.logger.Info("WebSocket connected")
	defer cl.logger.Info("WebSocket disconnected")

	cl.run(since)
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}

// client is one live connection. Only writePump writes to conn.
type client struct {
	h         *Handler
	conn      *websocket.Conn
	sessionID string
	session   *shell.Session
	out       chan Event
	done      chan struct{}
	logger    *zap.Logger
}

func (cl *client) run(since uint64) {
	changes, cancel := cl.session.Log().Watch()
	defer cancel()

	cursor := cl.session.Log().Cursor(since)

	go func() {
		defer close(cl.done)
		cl.readPump()
	}()
	cl.writePump(changes, cursor)
}

func (cl *client) readPump() {
	cl.conn.SetReadLimit(utils.MaxMessageSize)
	if cl.h.cfg.PongWait > 0 {
		cl.conn.SetReadDeadline(time.Now().Add(cl.h.cfg.PongWait))
		cl.conn.SetPongHandler(func(string) error {
			return cl.conn.SetReadDeadline(time.Now().Add(cl.h.cfg.PongWait))
		})
	}

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cl.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			cl.h.record("in", "invalid")
			cl.send(errorEvent("invalid message"))
			continue
		}
		cl.h.record("in", msg.Type)

		if stop := cl.handle(msg); stop {
			return
		}
	}
}

// handle processes one client message and reports whether the connection should end
func (cl *client) handle(msg types.WSMessage) bool {
	switch msg.Type {
	case MsgExec:
		if err := utils.ValidateLine(msg.Line); err != nil {
			cl.send(errorEvent(err.Error()))
			return false
		}
		res, err := cl.h.manager.Execute(cl.sessionID, msg.Line)
		if err != nil {
			cl.send(errorEvent(err.Error()))
			return errors.Is(err, terminal.ErrSessionNotFound)
		}
		cl.send(resultEvent(res, cl.session.Log().LastSeq()))
		return res.Exited

	case MsgHistory:
		dir, err := terminal.ParseDirection(msg.Direction)
		if err != nil {
			cl.send(errorEvent(err.Error()))
			return false
		}
		input, err := cl.h.manager.Navigate(cl.sessionID, dir)
		if err != nil {
			cl.send(errorEvent(err.Error()))
			return errors.Is(err, terminal.ErrSessionNotFound)
		}
		cl.send(Event{Type: EventHistory, Input: input, Timestamp: time.Now().Unix()})

	case MsgPing:
		cl.send(Event{Type: EventPong, Timestamp: time.Now().Unix()})

	default:
		cl.send(errorEvent("unknown message type"))
	}
	return false
}

// send queues an event, dropping it if the writer is gone or hopelessly behind
func (cl *client) send(ev Event) {
	select {
	case cl.out <- ev:
	case <-cl.done:
	default:
		cl.logger.Warn("WebSocket send buffer full, dropping event", zap.String("type", ev.Type))
	}
}

// writePump owns the connection. Lines are read from the log through the
// cursor, so a burst of output is never lost. Queued events are written
// only after every line logged before them, which keeps a result behind
// the output it summarizes.
func (cl *client) writePump(changes <-chan struct{}, cursor *shell.Cursor) {
	defer cl.conn.Close()

	var ticker <-chan time.Time
	if cl.h.cfg.PingPeriod > 0 {
		t := time.NewTicker(cl.h.cfg.PingPeriod)
		defer t.Stop()
		ticker = t.C
	}

	ready := Event{
		Type:      EventReady,
		SessionID: cl.sessionID,
		Cwd:       cl.session.Cwd(),
		Prompt:    cl.session.Prompt(),
		Timestamp: time.Now().Unix(),
	}
	if err := cl.write(ready); err != nil {
		return
	}
	if err := cl.flush(cursor); err != nil {
		return
	}

	var closing <-chan time.Time
	sessionClosed := false

	for {
		select {
		case _, ok := <-changes:
			if !ok {
				// session ended; give the reader a moment to queue the exit result
				changes = nil
				sessionClosed = true
				closing = time.After(cl.h.cfg.CloseGrace)
			}
			if err := cl.flush(cursor); err != nil {
				return
			}

		case ev := <-cl.out:
			if err := cl.flush(cursor); err != nil {
				return
			}
			if err := cl.write(ev); err != nil {
				return
			}

		case <-ticker:
			cl.conn.SetWriteDeadline(time.Now().Add(cl.h.cfg.WriteWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-closing:
			cl.finish(cursor, sessionClosed)
			return

		case <-cl.done:
			cl.finish(cursor, sessionClosed || cl.session.Closed())
			return
		}
	}
}

// flush writes every line the cursor has not returned yet
func (cl *client) flush(cursor *shell.Cursor) error {
	for _, line := range cursor.Next() {
		if err := cl.write(lineEvent(line)); err != nil {
			return err
		}
	}
	return nil
}

// finish flushes queued events and says goodbye
func (cl *client) finish(cursor *shell.Cursor, sessionClosed bool) {
drain:
	for {
		select {
		case ev := <-cl.out:
			if err := cl.flush(cursor); err != nil {
				return
			}
			if err := cl.write(ev); err != nil {
				return
			}
		default:
			break drain
		}
	}
	if err := cl.flush(cursor); err != nil {
		return
	}

	if sessionClosed {
		if err := cl.write(Event{Type: EventClosed, SessionID: cl.sessionID, Timestamp: time.Now().Unix()}); err != nil {
			return
		}
	}
	cl.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(cl.h.cfg.WriteWait))
}

func (cl *client) write(ev Event) error {
	data, err := sonic.Marshal(ev)
	if err != nil {
		cl.logger.Error("Failed to encode event", zap.String("type", ev.Type), zap.Error(err))
		return nil
	}
	if cl.h.cfg.WriteWait > 0 {
		cl.conn.SetWriteDeadline(time.Now().Add(cl.h.cfg.WriteWait))
	}
	if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	cl.h.record("out", ev.Type)
	return nil
}
