/*
Package monitoring provides Prometheus metrics for the terminal backend.

# Overview

Metrics cover HTTP traffic, terminal session lifecycle, shell command
execution and WebSocket streams. Metrics implements the terminal manager's
Recorder, so session and command events flow in without the manager
knowing about Prometheus.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	manager.WithMetrics(metrics)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

Tests build metrics on an isolated registry:

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetricsWithRegistry(reg, reg)
*/
package monitoring
