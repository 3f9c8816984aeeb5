package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/usersvc/usersvc/internal/metrics"
	"github.com/usersvc/usersvc/internal/model"
)

// ErrDisabled is returned by FailOpen.Ping when no backend is configured.
var ErrDisabled = errors.New("cache not configured")

// Backend is the raw cache the decorator wraps. *Cache implements it.
type Backend interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	SetUser(ctx context.Context, user *model.User, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// FailOpen keeps cache failures away from callers. Every read error is
// reported as a miss and every write error is logged and dropped, so the
// service stays correct (only slower) while Redis is down.
type FailOpen struct {
	backend Backend
	ttl     time.Duration
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewFailOpen wraps backend. A nil backend yields a disabled cache.
func NewFailOpen(backend Backend, logger *slog.Logger, recorder metrics.Recorder) *FailOpen {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &FailOpen{
		backend: backend,
		ttl:     UserTTL,
		logger:  logger,
		metrics: recorder,
	}
}

// Disabled returns a cache that always misses and discards writes.
func Disabled(logger *slog.Logger) *FailOpen {
	return NewFailOpen(nil, logger, nil)
}

// Enabled reports whether a backend is configured.
func (f *FailOpen) Enabled() bool {
	return f.backend != nil
}

// Get returns the cached user and true on a hit.
func (f *FailOpen) Get(ctx context.Context, id int64) (*model.User, bool) {
	if f.backend == nil {
		return nil, false
	}

	user, err := f.backend.GetUser(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			f.metrics.IncCacheError("get")
			f.logger.WarnContext(ctx, "cache get failed, treating as miss",
				slog.String("key", UserKey(id)),
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}

	return user, true
}

// Put stores user with the fixed TTL. Failures are logged, never returned.
func (f *FailOpen) Put(ctx context.Context, user *model.User) {
	if f.backend == nil || user == nil {
		return
	}

	if err := f.backend.SetUser(ctx, user, f.ttl); err != nil {
		f.metrics.IncCacheError("put")
		f.logger.WarnContext(ctx, "cache put failed",
			slog.String("key", UserKey(user.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// Ping probes the backend. It returns ErrDisabled when none is configured.
func (f *FailOpen) Ping(ctx context.Context) error {
	if f.backend == nil {
		return ErrDisabled
	}
	return f.backend.Ping(ctx)
}
