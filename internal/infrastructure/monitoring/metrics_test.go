package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"

	"github.com/jai-git4208/portfolio-os/backend/internal/terminal"
)

var _ terminal.Recorder = (*Metrics)(nil)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewMetricsWithRegistry(reg, reg)
}

// value reads a single counter or gauge
func value(t *testing.T, metric prometheus.Metric) float64 {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, metric.Write(&pb))
	if pb.Counter != nil {
		return pb.GetCounter().GetValue()
	}
	return pb.GetGauge().GetValue()
}

// series counts the label combinations a collector currently exports
func series(c prometheus.Collector) int {
	ch := make(chan prometheus.Metric, 16)
	go func() {
		c.Collect(ch)
		close(ch)
	}()
	n := 0
	for range ch {
		n++
	}
	return n
}

func TestSessionMetrics(t *testing.T) {
	m := newTestMetrics(t)

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed(terminal.ReasonIdle)

	assert.Equal(t, 1.0, value(t, m.SessionsActive))
	assert.Equal(t, 2.0, value(t, m.SessionsTotal))
	assert.Equal(t, 1.0, value(t, m.SessionsClosed.WithLabelValues(terminal.ReasonIdle)))
	assert.Equal(t, int64(1), m.Snapshot().ActiveSessions)
}

func TestCommandMetrics(t *testing.T) {
	m := newTestMetrics(t)

	m.CommandExecuted("ls", "ok", time.Millisecond)
	m.CommandExecuted("ls", "ok", time.Millisecond)
	m.CommandExecuted("cat", "error", time.Millisecond)
	m.CommandExecuted("rm-everything-now", "unknown", time.Millisecond)

	assert.Equal(t, 2.0, value(t, m.CommandsTotal.WithLabelValues("ls", "ok")))
	assert.Equal(t, 1.0, value(t, m.CommandsTotal.WithLabelValues("cat", "error")))
	assert.Equal(t, 1.0, value(t, m.CommandsTotal.WithLabelValues(unknownCommand, "unknown")))
	assert.Equal(t, 3, series(m.CommandsTotal))

	snap := m.Snapshot()
	assert.Equal(t, int64(4), snap.TotalCommands)
	assert.Equal(t, int64(2), snap.FailedCommands)
}

func TestWSMetrics(t *testing.T) {
	m := newTestMetrics(t)

	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()
	m.RecordWSMessage("in", "exec")

	assert.Equal(t, 1.0, value(t, m.WSConnections))
	assert.Equal(t, 1.0, value(t, m.WSMessages.WithLabelValues("in", "exec")))
	assert.Equal(t, int64(1), m.Snapshot().ActiveConnections)
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestMetrics(t)

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/terminal/sessions/:id", func(c *gin.Context) {
		c.String(http.StatusNotFound, "missing")
	})

	for _, id := range []string{"sess_a", "sess_b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/terminal/sessions/"+id, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, value(t, m.RequestsTotal.WithLabelValues("GET", "/terminal/sessions/:id", "404")))
	assert.Equal(t, 1.0, value(t, m.RequestsTotal.WithLabelValues("GET", unmatchedPath, "404")))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(3), snap.TotalErrors)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := newTestMetrics(t)
	m.SessionOpened()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)

	assert.True(t, strings.Contains(text, "portfolio_sessions_active 1"))
	assert.Contains(t, text, "portfolio_uptime_seconds")
}
