// Command seed inserts the fixture users. Rows whose email already exists
// are skipped, so it can be run repeatedly.
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

	inserted, err := seed(ctx, *databaseURL)
	if err != nil {
		logger.Error("seeding failed", "error", err)
		cancel()
		os.Exit(1)
	}

	logger.Info("seeding completed",
		"inserted", inserted,
		"skipped", int64(len(repository.DefaultSeedUsers))-inserted,
	)
}

func seed(ctx context.Context, databaseURL string) (int64, error) {
	repo, err := repository.New(ctx, databaseURL)
	if err != nil {
		return 0, err
	}
	defer repo.Close()

	return repo.SeedUsers(ctx, repository.DefaultSeedUsers)
}
