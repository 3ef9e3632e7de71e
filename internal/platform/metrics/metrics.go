package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-local request counters. Good enough for a
// single-instance deployment; anything bigger should scrape a real backend.
type Collector struct {
	requests        uint64
	errors          uint64
	inserts         uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.requests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordInsert counts successful employee insertions.
func (c *Collector) RecordInsert() {
	atomic.AddUint64(&c.inserts, 1)
}

func (c *Collector) Snapshot() map[string]any {
	requests := atomic.LoadUint64(&c.requests)
	errs := atomic.LoadUint64(&c.errors)
	inserts := atomic.LoadUint64(&c.inserts)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if requests > 0 {
		avg = float64(totalMs) / float64(requests)
	}
	return map[string]any{
		"requestsTotal":   requests,
		"errorsTotal":     errs,
		"insertsTotal":    inserts,
		"avgDurationMs":   avg,
		"totalDurationMs": totalMs,
	}
}
