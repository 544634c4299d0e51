package middleware

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

// CompressConfig defines response compression configuration.
type CompressConfig struct {
	Level int
	// ExcludedPaths are served uncompressed, e.g. endpoints that negotiate
	// their own encoding.
	ExcludedPaths []string
}

// DefaultCompressConfig returns the default compression configuration.
func DefaultCompressConfig() CompressConfig {
	return CompressConfig{
		Level:         gzip.DefaultCompression,
		ExcludedPaths: []string{"/metrics"},
	}
}

// Compress gzips response bodies for clients that accept it.
// WebSocket upgrades and empty responses pass through untouched.
func Compress(cfg CompressConfig) gin.HandlerFunc {
	pool := sync.Pool{
		New: func() any {
			w, err := gzip.NewWriterLevel(io.Discard, cfg.Level)
			if err != nil {
				w = gzip.NewWriter(io.Discard)
			}
			return w
		},
	}
	excluded := make(map[string]struct{}, len(cfg.ExcludedPaths))
	for _, p := range cfg.ExcludedPaths {
		excluded[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, skip := excluded[c.Request.URL.Path]; skip || !acceptsGzip(c.Request) {
			c.Next()
			return
		}

		gz := pool.Get().(*gzip.Writer)
		defer pool.Put(gz)
		gz.Reset(c.Writer)

		w := &gzipWriter{ResponseWriter: c.Writer, gz: gz}
		c.Writer = w
		c.Next()

		if w.started {
			gz.Close()
		} else {
			gz.Reset(io.Discard)
		}
	}
}

func acceptsGzip(r *http.Request) bool {
	if r.Method == http.MethodHead {
		return false
	}
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return false
	}
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

type gzipWriter struct {
	gin.ResponseWriter
	gz      *gzip.Writer
	started bool
}

// start sets the encoding headers before the first body byte
func (w *gzipWriter) start() {
	if w.started {
		return
	}
	w.started = true
	h := w.Header()
	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")
	h.Del("Content-Length")
}

func (w *gzipWriter) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	w.start()
	return w.gz.Write(data)
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *gzipWriter) Flush() {
	if w.started {
		w.gz.Flush()
	}
	w.ResponseWriter.Flush()
}
