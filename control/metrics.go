// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime counter registry for wire-level telemetry.
// Exposes monotonic counters in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"
)

// Counter keys maintained by the framing and keepalive layers.
const (
	MetricFramesDecoded  = "frames.decoded"
	MetricFramesEncoded  = "frames.encoded"
	MetricPingSent       = "ping.sent"
	MetricPingAcked      = "ping.acked"
	MetricPingViolations = "ping.violations"
	MetricPingQueueWarn  = "ping.queue_warn"
)

// MetricsRegistry holds named monotonic counters.
type MetricsRegistry struct {
	mu       sync.RWMutex
	counters map[string]int64
	updated  time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[string]int64),
	}
}

// Inc increments a counter by one, registering it on first use.
func (mr *MetricsRegistry) Inc(key string) {
	mr.Add(key, 1)
}

// Add increments a counter by n.
func (mr *MetricsRegistry) Add(key string, n int64) {
	if mr == nil {
		return
	}
	mr.mu.Lock()
	mr.counters[key] += n
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Get returns the current value of a counter.
func (mr *MetricsRegistry) Get(key string) int64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.counters[key]
}

// GetSnapshot returns a copy of all counters.
func (mr *MetricsRegistry) GetSnapshot() map[string]int64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]int64, len(mr.counters))
	for k, v := range mr.counters {
		out[k] = v
	}
	return out
}
