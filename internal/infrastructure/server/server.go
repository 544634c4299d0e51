package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/jai-git4208/portfolio-os/backend/internal/api/http"
	"github.com/jai-git4208/portfolio-os/backend/internal/api/middleware"
	"github.com/jai-git4208/portfolio-os/backend/internal/api/ws"
	"github.com/jai-git4208/portfolio-os/backend/internal/infrastructure/config"
	"github.com/jai-git4208/portfolio-os/backend/internal/infrastructure/logging"
	"github.com/jai-git4208/portfolio-os/backend/internal/infrastructure/monitoring"
	"github.com/jai-git4208/portfolio-os/backend/internal/seed"
	"github.com/jai-git4208/portfolio-os/backend/internal/terminal"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	manager *terminal.Manager
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// Option customises a Server under construction
type Option func(*options)

type options struct {
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// WithLogger replaces the logger built from the configuration
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics replaces the metrics collector, e.g. one on a test registry
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(o *options) { o.metrics = metrics }
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		built, err := logging.New(logging.ForMode(cfg.Logging.Development, cfg.Logging.Level))
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		logger = built
	}

	logger.Info("Initializing portfolio terminal server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Bool("shared_fs", cfg.Terminal.SharedFS),
		zap.Int("max_sessions", cfg.Terminal.MaxSessions),
	)

	metrics := o.metrics
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}
	logger.Info("Performance monitoring initialized")

	doc, err := seed.LoadOrDefault(cfg.Terminal.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}
	if cfg.Terminal.SeedFile != "" {
		logger.Info("Loaded seed document", zap.String("path", cfg.Terminal.SeedFile))
	}

	manager, err := terminal.NewManager(doc, cfg.Terminal.Manager())
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}
	manager.WithLogger(logger.Component("terminal")).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger.Logger))
	router.Use(middleware.Logger(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.CORS.Origins)))
	if cfg.Server.Compression {
		router.Use(middleware.Compress(middleware.DefaultCompressConfig()))
	}
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))

		if cfg.RateLimit.GlobalRequestsPerSecond > 0 {
			global := rl
			global.RequestsPerSecond = cfg.RateLimit.GlobalRequestsPerSecond
			global.Burst = max(cfg.RateLimit.GlobalBurst, 1)
			logger.Info("Global rate limit enabled",
				zap.Int("rps", global.RequestsPerSecond),
				zap.Int("burst", global.Burst),
			)
			router.Use(middleware.GlobalRateLimit(global))
		}
	}

	handlers := apihttp.NewHandlers(manager, metrics, logger.Component("api"))
	handlers.Register(router)

	wsCfg := ws.DefaultConfig()
	wsCfg.AllowedOrigins = cfg.CORS.Origins
	ws.NewHandler(manager, metrics, logger.Component("ws"), wsCfg).Register(router)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		manager: manager,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Manager returns the session manager
func (s *Server) Manager() *terminal.Manager {
	return s.manager
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := s.config.Server.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	reaperCtx, stopReaper := context.WithCancel(ctx)
	defer stopReaper()
	reaperDone := s.manager.StartReaper(reaperCtx, s.config.Terminal.ReapInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case err := <-errCh:
		runErr = err
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			runErr = fmt.Errorf("shutdown: %w", err)
		}
	}

	stopReaper()
	<-reaperDone
	return runErr
}

// Close kills every session and flushes the logger
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.manager.Close()
	_ = s.logger.Sync()
	return nil
}
