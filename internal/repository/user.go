package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/usersvc/usersvc/internal/model"
)

const userColumns = `id, name, email, created_at`

// CreateUser inserts a user and returns the persisted row.
// A nil name or email is sent as NULL so the table's NOT NULL
// constraint rejects it.
func (r *Repository) CreateUser(ctx context.Context, name, email *string) (*model.User, error) {
	query := `
		INSERT INTO users (name, email, created_at)
		VALUES ($1, $2, NOW())
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, name, email))
	if err != nil {
		return nil, classify(err)
	}

	return user, nil
}

// GetUserByID retrieves a user by primary key.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, classify(err)
	}

	return user, nil
}

// ListUsers returns every user, newest first.
// An empty table yields an empty, non-nil slice.
func (r *Repository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, classify(err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return users, nil
}

// scanUser scans a single row into a User model.
func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
