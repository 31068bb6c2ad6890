// metrics.go - Metrics collection for the pool daemon
package main

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MetricsCollector gathers counters and operation timings for a daemon run.
type MetricsCollector struct {
	mu       sync.RWMutex
	counters map[string]int64
	timings  map[string][]time.Duration
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		counters: make(map[string]int64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrementCounter increments a counter metric
func (mc *MetricsCollector) IncrementCounter(name string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.counters[name]++
}

// RecordDuration records an operation duration
func (mc *MetricsCollector) RecordDuration(name string, d time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.timings[name] = append(mc.timings[name], d)
	// Keep only the last 1000 samples per operation
	if len(mc.timings[name]) > 1000 {
		mc.timings[name] = mc.timings[name][len(mc.timings[name])-1000:]
	}
}

// Time runs fn and records its duration under name.
func (mc *MetricsCollector) Time(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	mc.RecordDuration(name, time.Since(start))
	return err
}

// Counter returns the current value of a counter
func (mc *MetricsCollector) Counter(name string) int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.counters[name]
}

// Summary formats all collected metrics, one line per entry
func (mc *MetricsCollector) Summary() string {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	var b strings.Builder
	names := make([]string, 0, len(mc.counters))
	for name := range mc.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%d ", name, mc.counters[name])
	}

	ops := make([]string, 0, len(mc.timings))
	for name := range mc.timings {
		ops = append(ops, name)
	}
	sort.Strings(ops)
	for _, name := range ops {
		samples := mc.timings[name]
		var total time.Duration
		for _, d := range samples {
			total += d
		}
		fmt.Fprintf(&b, "%s_avg=%s ", name, (total / time.Duration(len(samples))).Round(time.Millisecond))
	}
	return strings.TrimSpace(b.String())
}

// Report logs every counter and timing average at info level
func (mc *MetricsCollector) Report(logger zerolog.Logger) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	ev := logger.Info()
	for name, value := range mc.counters {
		ev = ev.Int64(name, value)
	}
	for name, samples := range mc.timings {
		var total time.Duration
		for _, d := range samples {
			total += d
		}
		ev = ev.Dur(name+"_avg", total/time.Duration(len(samples)))
	}
	ev.Msg("run metrics")
}
