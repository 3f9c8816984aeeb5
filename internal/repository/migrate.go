package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/usersvc/usersvc/migrations"
)

// SeedUser is a fixture row for SeedUsers.
type SeedUser struct {
	Name  string
	Email string
}

// DefaultSeedUsers are the fixture rows inserted by cmd/seed.
var DefaultSeedUsers = []SeedUser{
	{Name: "John Doe", Email: "john@example.com"},
	{Name: "Jane Smith", Email: "jane@example.com"},
	{Name: "Bob Johnson", Email: "bob@example.com"},
}

// Migrate applies the users schema. Safe to run repeatedly.
func (r *Repository) Migrate(ctx context.Context) error {
	stmt, err := migrations.Files.ReadFile(migrations.UsersUp)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", migrations.UsersUp, err)
	}

	if _, err := r.pool.Exec(ctx, string(stmt)); err != nil {
		return fmt.Errorf("apply migration %s: %w", migrations.UsersUp, classify(err))
	}

	return nil
}

// SeedUsers inserts the given users, skipping any whose email already exists.
// It returns the number of rows actually inserted.
func (r *Repository) SeedUsers(ctx context.Context, users []SeedUser) (int64, error) {
	if len(users) == 0 {
		return 0, nil
	}

	names := make([]string, len(users))
	emails := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
		emails[i] = u.Email
	}

	query := `
		INSERT INTO users (name, email)
		SELECT name, email
		FROM unnest($1::text[], $2::text[]) AS seed(name, email)
		ON CONFLICT (email) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, pq.Array(names), pq.Array(emails))
	if err != nil {
		return 0, fmt.Errorf("seed users: %w", classify(err))
	}

	return tag.RowsAffected(), nil
}
