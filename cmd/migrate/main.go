// Command migrate creates the users table if it does not exist.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/usersvc/usersvc/internal/config"
	"github.com/usersvc/usersvc/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		databaseURL = flag.String("database-url", cfg.DatabaseURL(), "PostgreSQL connection string")
		timeout     = flag.Duration("timeout", 30*time.Second, "Overall timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := migrate(ctx, *databaseURL); err != nil {
		logger.Error("migration failed", "error", err)
		cancel()
		os.Exit(1)
	}

	logger.Info("migration completed")
}

func migrate(ctx context.Context, databaseURL string) error {
	repo, err := repository.New(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer repo.Close()

	return repo.Migrate(ctx)
}
