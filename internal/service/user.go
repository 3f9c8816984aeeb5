// Package service provides business logic for the application.
package service

import (
	"context"
	"time"

	"github.com/usersvc/usersvc/internal/metrics"
	"github.com/usersvc/usersvc/internal/model"
)

// UserStore is the persistent store of users. *repository.Repository implements it.
type UserStore interface {
	CreateUser(ctx context.Context, name, email *string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// UserCache is a best-effort cache that never reports errors.
// *cache.FailOpen implements it.
type UserCache interface {
	Get(ctx context.Context, id int64) (*model.User, bool)
	Put(ctx context.Context, user *model.User)
}

// UserService coordinates the store and the cache for user operations.
type UserService struct {
	store   UserStore
	cache   UserCache
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, cache UserCache, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		store:   store,
		cache:   cache,
		metrics: recorder,
	}
}

// CreateUserInput defines input for creating a user.
// Nil fields reach the store as NULL and are rejected there.
type CreateUserInput struct {
	Name  *string
	Email *string
}

// CreateUser persists a user and then caches the stored record.
// Store errors are returned unchanged.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	start := time.Now()
	user, err := s.store.CreateUser(ctx, input.Name, input.Email)
	s.metrics.ObserveStoreDuration("create", time.Since(start))
	if err != nil {
		return nil, err
	}

	s.cache.Put(ctx, user)
	s.metrics.IncUserCreated()

	return user, nil
}

// GetUser looks a user up in the cache first and falls back to the store.
// The bool result reports whether the record came from the cache. A store
// hit is not written back to the cache; only CreateUser populates it.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, bool, error) {
	if user, ok := s.cache.Get(ctx, id); ok {
		s.metrics.IncUserCacheHit()
		return user, true, nil
	}
	s.metrics.IncUserCacheMiss()

	start := time.Now()
	user, err := s.store.GetUserByID(ctx, id)
	s.metrics.ObserveStoreDuration("get", time.Since(start))
	if err != nil {
		return nil, false, err
	}

	return user, false, nil
}

// ListUsers returns all users newest first, always from the store.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	start := time.Now()
	users, err := s.store.ListUsers(ctx)
	s.metrics.ObserveStoreDuration("list", time.Since(start))
	return users, err
}
