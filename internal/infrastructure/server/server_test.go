package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/jai-git4208/portfolio-os/backend/internal/api/middleware"
	"github.com/jai-git4208/portfolio-os/backend/internal/infrastructure/config"
	"github.com/jai-git4208/portfolio-os/backend/internal/infrastructure/logging"
	"github.com/jai-git4208/portfolio-os/backend/internal/infrastructure/monitoring"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	srv, err := NewServer(cfg,
		WithLogger(logging.NewNop()),
		WithMetrics(monitoring.NewMetricsWithRegistry(reg, reg)))
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func request(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServerRoutes(t *testing.T) {
	srv := newTestServer(t, config.Default())
	h := srv.Handler()

	w := request(t, h, http.MethodPost, "/terminal/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))

	var info struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))

	w = request(t, h, http.MethodPost, "/terminal/sessions/"+info.ID+"/exec", `{"line":"whoami"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jaimin")

	w = request(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `portfolio_commands_total{command="whoami",status="ok"} 1`)
	assert.Contains(t, body, "portfolio_sessions_active 1")
	assert.Contains(t, body, `path="/terminal/sessions/:id/exec"`)

	assert.Equal(t, 1, srv.Manager().Count())
}

func TestServerRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.RequestsPerSecond = 1
	cfg.RateLimit.Burst = 1
	srv := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, request(t, srv.Handler(), http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(t, srv.Handler(), http.MethodGet, "/health", "").Code)
}

func TestServerGlobalRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.GlobalRequestsPerSecond = 1
	cfg.RateLimit.GlobalBurst = 1
	h := newTestServer(t, cfg).Handler()

	from := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, from("10.0.0.1:4000"))
	assert.Equal(t, http.StatusTooManyRequests, from("10.0.0.2:4000"))
}

func TestServerDevelopmentLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.Logging.Level = ""

	reg := prometheus.NewRegistry()
	srv, err := NewServer(cfg, WithMetrics(monitoring.NewMetricsWithRegistry(reg, reg)))
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	assert.True(t, srv.logger.Core().Enabled(zapcore.DebugLevel))
}

func TestServerCompression(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	w := httptest.NewRecorder()
	newTestServer(t, config.Default()).Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	cfg := config.Default()
	cfg.Server.Compression = false
	w = httptest.NewRecorder()
	newTestServer(t, cfg).Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Contains(t, w.Body.String(), "Jaimin Pansal")
}

func TestServerSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user: alice\nhostname: lab\n"), 0o644))

	cfg := config.Default()
	cfg.Terminal.SeedFile = path
	srv := newTestServer(t, cfg)

	w := request(t, srv.Handler(), http.MethodPost, "/terminal/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"prompt":"alice@lab:~ $"`)
}

func TestServerBadSeedFile(t *testing.T) {
	cfg := config.Default()
	cfg.Terminal.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewServer(cfg, WithLogger(logging.NewNop()))
	assert.Error(t, err)
}

func TestServerRunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Server.ShutdownTimeout = time.Second
	srv := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
