// Package middleware provides the HTTP middleware stack for the terminal API.
//
// Middleware:
//   - RequestID: tags each request and echoes X-Request-ID
//   - Logger: structured zap access log
//   - Recovery: panic to 500 with a logged stack
//   - CORS: cross-origin access for the browser terminal
//   - RateLimit: per-IP token bucket, idle clients evicted after ClientTTL
//   - Compress: gzip response bodies (klauspost/compress), never on upgrades
//
// Example Usage:
//
//	router.Use(middleware.RequestID(), middleware.Logger(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
