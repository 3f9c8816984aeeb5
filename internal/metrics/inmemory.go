package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UserCacheHits        uint64
	UserCacheMisses      uint64
	CacheGetErrors       uint64
	CachePutErrors       uint64
	UsersCreated         uint64
	StoreDurationCount   uint64
	StoreDurationTotalNs int64
}

// InMemoryRecorder keeps counters in process memory.
// It backs the /metrics endpoint and is handy in tests.
type InMemoryRecorder struct {
	userCacheHits        atomic.Uint64
	userCacheMisses      atomic.Uint64
	cacheGetErrors       atomic.Uint64
	cachePutErrors       atomic.Uint64
	usersCreated         atomic.Uint64
	storeDurationCount   atomic.Uint64
	storeDurationTotalNs atomic.Int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UserCacheHits:        m.userCacheHits.Load(),
		UserCacheMisses:      m.userCacheMisses.Load(),
		CacheGetErrors:       m.cacheGetErrors.Load(),
		CachePutErrors:       m.cachePutErrors.Load(),
		UsersCreated:         m.usersCreated.Load(),
		StoreDurationCount:   m.storeDurationCount.Load(),
		StoreDurationTotalNs: m.storeDurationTotalNs.Load(),
	}
}

// IncUserCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncUserCacheHit() {
	m.userCacheHits.Add(1)
}

// IncUserCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncUserCacheMiss() {
	m.userCacheMisses.Add(1)
}

// IncCacheError counts a swallowed cache failure.
func (m *InMemoryRecorder) IncCacheError(op string) {
	switch op {
	case "get":
		m.cacheGetErrors.Add(1)
	case "put":
		m.cachePutErrors.Add(1)
	}
}

// IncUserCreated increments user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	m.usersCreated.Add(1)
}

// ObserveStoreDuration records a store call's latency.
func (m *InMemoryRecorder) ObserveStoreDuration(_ string, duration time.Duration) {
	m.storeDurationCount.Add(1)
	m.storeDurationTotalNs.Add(duration.Nanoseconds())
}
