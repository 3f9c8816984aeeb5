// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Cache metrics
	IncUserCacheHit()
	IncUserCacheMiss()
	IncCacheError(op string) // op: "get" or "put"

	// User metrics
	IncUserCreated()
	ObserveStoreDuration(op string, duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
