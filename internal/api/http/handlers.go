package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jai-git4208/portfolio-os/backend/internal/infrastructure/monitoring"
	"github.com/jai-git4208/portfolio-os/backend/internal/shared/id"
	"github.com/jai-git4208/portfolio-os/backend/internal/shared/types"
	"github.com/jai-git4208/portfolio-os/backend/internal/shared/utils"
	"github.com/jai-git4208/portfolio-os/backend/internal/shell"
	"github.com/jai-git4208/portfolio-os/backend/internal/terminal"
	"github.com/jai-git4208/portfolio-os/backend/internal/vfs"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	manager *terminal.Manager
	metrics *monitoring.Metrics
	logger  *zap.Logger
	started time.Time
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(manager *terminal.Manager, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		manager: manager,
		metrics: metrics,
		logger:  logger,
		started: time.Now(),
	}
}

// Root handles the banner request
func (h *Handlers) Root(c *gin.Context) {
	doc := h.manager.Document()
	c.JSON(http.StatusOK, gin.H{
		"status":   "online",
		"service":  "Portfolio OS terminal",
		"version":  doc.Version,
		"hostname": doc.Hostname,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"sessions": h.manager.Count(),
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	})
}

// Stats returns the JSON metrics snapshot
func (h *Handlers) Stats(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "metrics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

// Profile returns the portfolio owner's profile
func (h *Handlers) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.Document().Profile)
}

// CreateSession opens a terminal session and returns its welcome lines
func (h *Handlers) CreateSession(c *gin.Context) {
	info, err := h.manager.CreateSession()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

// ListSessions lists live sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions := h.manager.ListSessions()
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// GetSession returns one session
func (h *Handlers) GetSession(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	info, err := h.manager.GetSession(sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// DeleteSession kills a session
func (h *Handlers) DeleteSession(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	if err := h.manager.Kill(sessionID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sessionID,
	})
}

// Exec runs one input line
func (h *Handlers) Exec(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxRequestBody)
	var req types.ExecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := utils.ValidateLine(req.Line); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.manager.Execute(sessionID, req.Line)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// History moves through the command history and returns the recalled input
func (h *Handlers) History(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	dir, err := terminal.ParseDirection(c.Param("direction"))
	if err != nil {
		h.fail(c, err)
		return
	}

	input, err := h.manager.Navigate(sessionID, dir)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"input": input})
}

// Output returns log lines after the since cursor, at most limit of them
func (h *Handlers) Output(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	since, err := queryUint(c, "since", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "since must be a non-negative integer"})
		return
	}
	limit, err := queryUint(c, "limit", utils.MaxOutputRequest)
	if err != nil || limit == 0 || limit > utils.MaxOutputRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(utils.MaxOutputRequest)})
		return
	}

	lines, err := h.manager.Output(sessionID, since)
	if err != nil {
		h.fail(c, err)
		return
	}

	more := false
	if uint64(len(lines)) > limit {
		lines = lines[:limit]
		more = true
	}
	next := since
	if len(lines) > 0 {
		next = lines[len(lines)-1].Seq
	}
	if lines == nil {
		lines = []shell.Line{}
	}

	c.JSON(http.StatusOK, gin.H{
		"lines": lines,
		"next":  next,
		"more":  more,
	})
}

// Entries lists a directory for the file explorer view
func (h *Handlers) Entries(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	path := c.Query("path")
	if err := utils.ValidatePath(path); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.manager.Entries(sessionID, path)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"path":    path,
		"entries": entries,
	})
}

// fail writes the status that matches err
func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, terminal.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, terminal.ErrTooManySessions):
		return http.StatusTooManyRequests
	case errors.Is(err, terminal.ErrInvalidDirection):
		return http.StatusBadRequest
	case errors.Is(err, vfs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, vfs.ErrNotDirectory), errors.Is(err, vfs.ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func sessionParam(c *gin.Context) (string, bool) {
	sessionID, err := id.ParseSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return sessionID.String(), true
}

func queryUint(c *gin.Context, key string, def uint64) (uint64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}
