package repository

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
)

// Store error kinds. Match them with errors.Is.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrConnection          = errors.New("store unavailable")
	ErrQuery               = errors.New("query failed")
)

// StoreError carries the driver's message unchanged alongside its kind.
// Handlers echo Error() to clients as-is.
type StoreError struct {
	Kind error
	Err  error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes both the kind sentinel and the driver error.
func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// classify maps a pgx error onto one of the store error kinds.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &StoreError{Kind: ErrUserNotFound, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 23: integrity constraint violation (unique, not null, check...).
		if strings.HasPrefix(pgErr.Code, "23") {
			return &StoreError{Kind: ErrConstraintViolation, Err: err}
		}
		return &StoreError{Kind: ErrQuery, Err: err}
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	if isConnectionError(err) {
		return &StoreError{Kind: ErrConnection, Err: err}
	}

	// Client-side failures such as encoding a parameter or scanning a row.
	return &StoreError{Kind: ErrQuery, Err: err}
}

// isConnectionError reports whether err means the store could not be reached
// or the connection broke, as opposed to a statement it rejected.
func isConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr), errors.As(err, &netErr):
		return true
	case errors.Is(err, puddle.ErrClosedPool), errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, net.ErrClosed):
		return true
	}
	return pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}

// IsUniqueViolation reports whether err is a unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
