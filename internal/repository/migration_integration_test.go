//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usersvc/usersvc/internal/testutil"
)

// ============================================================================
// Migration Integration Tests
// ============================================================================

func TestIntegrationMigration_UsersTable(t *testing.T) {
	ctx, repo := newMigrationTestEnv(t)

	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	exists, err := tableExists(ctx, repo.Pool(), "users")
	if err != nil {
		t.Fatalf("tableExists failed: %v", err)
	}
	if !exists {
		t.Fatal("users table should exist after migration")
	}

	for _, col := range []string{"id", "name", "email", "created_at"} {
		t.Run(col, func(t *testing.T) {
			exists, err := columnExists(ctx, repo.Pool(), "users", col)
			if err != nil {
				t.Fatalf("columnExists failed: %v", err)
			}
			if !exists {
				t.Errorf("column %q should exist in users table", col)
			}
		})
	}
}

func TestIntegrationMigration_Idempotent(t *testing.T) {
	ctx, repo := newMigrationTestEnv(t)

	for i := 0; i < 3; i++ {
		if err := repo.Migrate(ctx); err != nil {
			t.Fatalf("Migrate run %d failed: %v", i+1, err)
		}
	}
}

func TestIntegrationMigration_Constraints(t *testing.T) {
	ctx, repo := newMigrationTestEnv(t)

	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err := repo.Pool().Exec(ctx,
		`INSERT INTO users (name, email) VALUES ($1, $2)`,
		string(long), testutil.UniqueEmail("long"),
	)
	if err == nil {
		t.Error("expected varchar(100) to reject a 101 character name")
	}

	_, err = repo.Pool().Exec(ctx, `INSERT INTO users (email) VALUES ($1)`, testutil.UniqueEmail("noname"))
	if err == nil {
		t.Error("expected NOT NULL violation for missing name")
	}
}

func TestIntegrationSeed_ConflictTolerant(t *testing.T) {
	ctx, repo := newMigrationTestEnv(t)

	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	inserted, err := repo.SeedUsers(ctx, DefaultSeedUsers)
	if err != nil {
		t.Fatalf("SeedUsers failed: %v", err)
	}
	if inserted != int64(len(DefaultSeedUsers)) {
		t.Errorf("expected %d inserted, got %d", len(DefaultSeedUsers), inserted)
	}

	inserted, err = repo.SeedUsers(ctx, DefaultSeedUsers)
	if err != nil {
		t.Fatalf("SeedUsers (second run) failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("expected duplicates to be skipped, got %d inserted", inserted)
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != len(DefaultSeedUsers) {
		t.Errorf("expected %d users, got %d", len(DefaultSeedUsers), len(users))
	}
}

func TestIntegrationSeed_Empty(t *testing.T) {
	ctx, repo := newMigrationTestEnv(t)

	inserted, err := repo.SeedUsers(ctx, nil)
	if err != nil {
		t.Fatalf("SeedUsers failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("expected 0, got %d", inserted)
	}
}

func tableExists(ctx context.Context, pool *pgxpool.Pool, tableName string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`, tableName).Scan(&exists)
	return exists, err
}

func columnExists(ctx context.Context, pool *pgxpool.Pool, tableName, columnName string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.columns
			WHERE table_schema = 'public'
			AND table_name = $1
			AND column_name = $2
		)
	`, tableName, columnName).Scan(&exists)
	return exists, err
}

// ============================================================================
// Test Environment Setup
// ============================================================================

// newMigrationTestEnv starts every test from a dropped users table.
func newMigrationTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if _, err := repo.Pool().Exec(ctx, `DROP TABLE IF EXISTS users`); err != nil {
		t.Fatalf("drop users: %v", err)
	}

	return ctx, repo
}
