package handler

import (
	"context"
	"net/http"
	"time"
)

// StoreProber reports the store's clock; a successful call means it is reachable.
type StoreProber interface {
	Now(ctx context.Context) (time.Time, error)
}

// CacheProber reports whether a cache is configured and reachable.
type CacheProber interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// timestampLayout is RFC 3339 with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Cache states reported by /health.
const (
	cacheConnected    = "connected"
	cacheDisconnected = "disconnected"
)

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	store StoreProber
	cache CacheProber
	now   func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
// cache may be nil when no cache is configured.
func NewHealthHandler(store StoreProber, cache CacheProber) *HealthHandler {
	return &HealthHandler{
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

// PostgresStatus is the store detail in a health report.
type PostgresStatus struct {
	Now time.Time `json:"now"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string          `json:"status"`
	Postgres  *PostgresStatus `json:"postgres,omitempty"`
	Redis     string          `json:"redis,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Healthz is a liveness probe endpoint with no dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Health probes the store and, when configured, the cache.
// Only the store decides the outcome; an unreachable cache is reported as
// disconnected and the check still passes.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.store == nil {
		writeJSON(w, http.StatusInternalServerError, HealthResponse{
			Status: "unhealthy",
			Error:  "store not configured",
		})
		return
	}

	dbNow, err := h.store.Now(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, HealthResponse{
			Status: "unhealthy",
			Error:  err.Error(),
		})
		return
	}

	redisStatus := cacheDisconnected
	if h.cache != nil && h.cache.Enabled() {
		if err := h.cache.Ping(ctx); err == nil {
			redisStatus = cacheConnected
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Postgres:  &PostgresStatus{Now: dbNow},
		Redis:     redisStatus,
		Timestamp: h.now().UTC().Format(timestampLayout),
	})
}
