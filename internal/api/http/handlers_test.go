package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jai-git4208/portfolio-os/backend/internal/infrastructure/monitoring"
	"github.com/jai-git4208/portfolio-os/backend/internal/seed"
	"github.com/jai-git4208/portfolio-os/backend/internal/shared/id"
	"github.com/jai-git4208/portfolio-os/backend/internal/shell"
	"github.com/jai-git4208/portfolio-os/backend/internal/terminal"
	"github.com/jai-git4208/portfolio-os/backend/internal/vfs"
)

type testAPI struct {
	router  *gin.Engine
	manager *terminal.Manager
	metrics *monitoring.Metrics
}

func newTestAPI(t *testing.T, cfg terminal.Config) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	doc, err := seed.Default()
	require.NoError(t, err)

	cfg.StepDelay = time.Millisecond
	manager, err := terminal.NewManager(doc, cfg)
	require.NoError(t, err)
	t.Cleanup(manager.Close)

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetricsWithRegistry(reg, reg)
	manager.WithMetrics(metrics)

	router := gin.New()
	NewHandlers(manager, metrics, nil).Register(router)
	return &testAPI{router: router, manager: manager, metrics: metrics}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) create(t *testing.T) terminal.SessionInfo {
	t.Helper()
	w := a.do(t, http.MethodPost, "/terminal/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var info terminal.SessionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	return info
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestRootAndHealth(t *testing.T) {
	api := newTestAPI(t, terminal.DefaultConfig())

	w := api.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	root := decode[map[string]any](t, w)
	assert.Equal(t, "online", root["status"])
	assert.Equal(t, "2.0", root["version"])
	assert.Equal(t, "portfolio-os", root["hostname"])

	api.create(t)
	w = api.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, w)["sessions"])
}

func TestProfile(t *testing.T) {
	api := newTestAPI(t, terminal.DefaultConfig())

	w := api.do(t, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[map[string]any](t, w)
	assert.Equal(t, "Jaimin Pansal", profile["name"])
	assert.NotEmpty(t, profile["projects"])
}

func TestCreateSession(t *testing.T) {
	api := newTestAPI(t, terminal.DefaultConfig())

	info := api.create(t)
	assert.True(t, strings.HasPrefix(info.ID, "sess_"))
	assert.Equal(t, "/home/jaimin", info.Cwd)
	require.NotEmpty(t, info.Lines)
	assert.Contains(t, info.Lines[0].Text, "Welcome")
}

func TestCreateSessionAtCap(t *testing.T) {
	cfg := terminal.DefaultConfig()
	cfg.MaxSessions = 1
	api := newTestAPI(t, cfg)

	api.create(t)
	w := api.do(t, http.MethodPost, "/terminal/sessions", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestListGetDelete(t *testing.T) {
	api := newTestAPI(t, terminal.DefaultConfig())
	a := api.create(t)
	b := api.create(t)

	w := api.do(t, http.MethodGet, "/terminal/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Sessions []terminal.SessionInfo `json:"sessions"`
		Count    int                    `json:"count"`
	}](t, w)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, a.ID, list.Sessions[0].ID)

	w = api.do(t, http.MethodGet, "/terminal/sessions/"+b.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, b.ID, decode[terminal.SessionInfo](t, w).ID)

	w = api.do(t, http.MethodDelete, "/terminal/sessions/"+b.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/terminal/sessions/"+b.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = api.do(t, http.MethodDelete, "/terminal/sessions/"+b.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExec(t *testing.T) {
	api := newTestAPI(t, terminal.DefaultConfig())
	info := api.create(t)
	path := "/terminal/sessions/" + info.ID + "/exec"

	w := api.do(t, http.MethodPost, path, map[string]string{"line": "cd skills"})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[shell.Result](t, w)
	assert.Equal(t, shell.StatusOK, res.Status)
	assert.Equal(t, "/home/jaimin/skills", res.Cwd)
	assert.Equal(t, "jaimin@portfolio-os:~/skills $", res.Prompt)

	w = api.do(t, http.MethodPost, path, map[string]string{"line": "cat nope.txt"})
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[shell.Result](t, w)
	assert.Equal(t, shell.StatusError, res.Status)
	assert.Equal(t, []string{"cat: nope.txt: No such file or directory"}, res.Output())
}

func TestExecRejectsBadInput(t *testing.T) {
	api := newTestAPI(t, terminal.DefaultConfig())
	info := api.create(t)
	path := "/terminal/sessions/" + info.ID + "/exec"

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{name: "malformed json", path: path, body: "{", want: http.StatusBadRequest},
		{name: "control characters", path: path, body: map[string]string{"line": "ls\nrm -rf /"}, want: http.StatusBadRequest},
		{name: "bad session id", path: "/terminal/sessions/bad.id/exec", body: map[string]string{"line": "ls"}, want: http.StatusBadRequest},
		{name: "id is not a ulid", path: "/terminal/sessions/sess_missing/exec", body: map[string]string{"line": "ls"}, want: http.StatusBadRequest},
		{name: "id has wrong prefix", path: "/terminal/sessions/req_" + strings.TrimPrefix(info.ID, "sess_") + "/exec", body: map[string]string{"line": "ls"}, want: http.StatusBadRequest},
		{name: "unknown session", path: "/terminal/sessions/" + id.NewSessionID().String() + "/exec", body: map[string]string{"line": "ls"}, want: http.StatusNotFound},
		{name: "oversized body", path: path, body: map[string]string{"line": strings.Repeat("a", 70*1024)}, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHistory(t *testing.T) {
	api := newTestAPI(t, terminal.DefaultConfig())
	info := api.create(t)
	base := "/terminal/sessions/" + info.ID

	api.do(t, http.MethodPost, base+"/exec", map[string]string{"line": "whoami"})
	api.do(t, http.MethodPost, base+"/exec", map[string]string{"line": "pwd"})

	w := api.do(t, http.MethodPost, base+"/history/previous", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pwd", decode[map[string]string](t, w)["input"])

	w = api.do(t, http.MethodPost, base+"/history/up", nil)
	assert.Equal(t, "whoami", decode[map[string]string](t, w)["input"])

	w = api.do(t, http.MethodPost, base+"/history/next", nil)
	assert.Equal(t, "pwd", decode[map[string]string](t, w)["input"])

	w = api.do(t, http.MethodPost, base+"/history/sideways", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOutput(t *testing.T) {
	api := newTestAPI(t, terminal.DefaultConfig())
	info := api.create(t)
	base := "/terminal/sessions/" + info.ID

	api.do(t, http.MethodPost, base+"/exec", map[string]string{"line": "pwd"})

	type page struct {
		Lines []shell.Line `json:"lines"`
		Next  uint64       `json:"next"`
		More  bool         `json:"more"`
	}

	w := api.do(t, http.MethodGet, base+"/output?since=0&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[page](t, w)
	require.Len(t, p.Lines, 2)
	assert.True(t, p.More)
	assert.Equal(t, uint64(2), p.Next)

	w = api.do(t, http.MethodGet, base+"/output?since=3", nil)
	p = decode[page](t, w)
	require.Len(t, p.Lines, 2)
	assert.Equal(t, shell.LineInput, p.Lines[0].Kind)
	assert.Equal(t, "/home/jaimin", p.Lines[1].Text)
	assert.False(t, p.More)

	w = api.do(t, http.MethodGet, base+"/output?since=99", nil)
	p = decode[page](t, w)
	assert.Empty(t, p.Lines)
	assert.Equal(t, uint64(99), p.Next)

	for _, q := range []string{"since=abc", "since=-1", "limit=0", "limit=100000"} {
		w = api.do(t, http.MethodGet, base+"/output?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestEntries(t *testing.T) {
	api := newTestAPI(t, terminal.DefaultConfig())
	info := api.create(t)
	base := "/terminal/sessions/" + info.ID + "/fs"

	w := api.do(t, http.MethodGet, base+"?path=~/skills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Entries []vfs.Entry `json:"entries"`
	}](t, w)
	require.Len(t, body.Entries, 3)
	assert.Equal(t, "backend.txt", body.Entries[0].Name)
	assert.Equal(t, "/home/jaimin/skills/backend.txt", body.Entries[0].Path)

	w = api.do(t, http.MethodGet, base+"?path=/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodGet, base+"?path=about.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, base+"?path="+strings.Repeat("a/", 600), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	api := newTestAPI(t, terminal.DefaultConfig())
	info := api.create(t)
	api.do(t, http.MethodPost, "/terminal/sessions/"+info.ID+"/exec", map[string]string{"line": "ls"})
	api.do(t, http.MethodPost, "/terminal/sessions/"+info.ID+"/exec", map[string]string{"line": "bogus"})

	w := api.do(t, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[monitoring.MetricsSnapshot](t, w)
	assert.Equal(t, int64(1), snap.ActiveSessions)
	assert.Equal(t, int64(2), snap.TotalCommands)
	assert.Equal(t, int64(1), snap.FailedCommands)
}
