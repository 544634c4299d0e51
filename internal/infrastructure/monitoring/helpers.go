package monitoring

import "time"

// MetricsSnapshot holds current metric values for the JSON stats endpoint
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	TotalDuration     float64 `json:"-"`
	AvgLatencyMs      float64 `json:"avg_latency_ms"`
	ActiveSessions    int64   `json:"active_sessions"`
	ActiveConnections int64   `json:"active_connections"`
	TotalCommands     int64   `json:"total_commands"`
	FailedCommands    int64   `json:"failed_commands"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// Snapshot returns a copy of the tracked values with derived fields filled in
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	snap := m.snapshot
	m.mu.RUnlock()

	if snap.TotalRequests > 0 {
		snap.AvgLatencyMs = snap.TotalDuration / float64(snap.TotalRequests) * 1000
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
