// Package main is the entrypoint for the usersvc API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/usersvc/usersvc/internal/cache"
	"github.com/usersvc/usersvc/internal/config"
	"github.com/usersvc/usersvc/internal/handler"
	"github.com/usersvc/usersvc/internal/metrics"
	"github.com/usersvc/usersvc/internal/middleware"
	"github.com/usersvc/usersvc/internal/repository"
	"github.com/usersvc/usersvc/internal/server"
	"github.com/usersvc/usersvc/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	databaseURL := cfg.DatabaseURL()

	repo, err := repository.New(ctx, databaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, databaseURL)),
			slog.String("database_url", redactURL(databaseURL)),
		)
		return err
	}
	logger.Info("connected to database")

	recorder := metrics.NewInMemory()
	userCache, closeCache := openCache(ctx, cfg, logger, recorder)

	userService := service.NewUserService(repo, userCache, recorder)

	routes := routerDeps{
		info:    handler.New(),
		health:  handler.NewHealthHandler(repo, userCache),
		users:   handler.NewUserHandler(userService, logger),
		metrics: handler.NewMetricsHandler(recorder),
	}
	r := setupRouter(routes, cfg, logger)

	srv := server.New(
		r,
		cfg.Port,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// LIFO: the cache closes before the pool.
	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	if closeCache != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return closeCache()
		})
	}

	logger.Info("starting server",
		"port", cfg.Port,
		"env", cfg.AppEnv,
		"cache_enabled", userCache.Enabled(),
	)

	return srv.Run(ctx)
}

// openCache wires the Redis cache when REDIS_URL is set. The service never
// fails to start because of Redis: a bad URL disables caching, an
// unreachable server is logged and retried lazily by the client.
func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) (*cache.FailOpen, func() error) {
	if !cfg.CacheEnabled() {
		logger.Info("REDIS_URL not set, cache disabled")
		return cache.Disabled(logger), nil
	}

	client, err := cache.Open(cfg.RedisURL)
	if err != nil {
		logger.Warn(
			"invalid Redis URL, cache disabled",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		return cache.Disabled(logger), nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx); err != nil {
		logger.Warn(
			"Redis not reachable, serving from database until it is",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
	} else {
		logger.Info("connected to Redis")
	}

	return cache.NewFailOpen(client, logger, recorder), client.Close
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	info    *handler.Handler
	health  *handler.HealthHandler
	users   *handler.UserHandler
	metrics *handler.MetricsHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.SecurityHeaders(cfg.IsDevelopment()))
	r.Use(middleware.CORS(cfg.GetCORSAllowedOrigins()))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	r.Get("/", deps.info.Info)
	r.Get("/health", deps.health.Health)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/metrics", deps.metrics.Metrics)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", deps.users.List)
		r.Post("/", deps.users.Create)
		r.Get("/{id}", deps.users.Get)
	})

	r.NotFound(deps.info.NotFound)
	r.MethodNotAllowed(deps.info.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s&]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
