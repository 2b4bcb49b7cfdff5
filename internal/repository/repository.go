// Package repository persists known users and their activity history.
package repository

import (
	"context"
	"errors"

	"uni-assistant/internal/model"
)

// ErrDataCorruption marks a stored record that cannot be parsed.
var ErrDataCorruption = errors.New("corrupt record")

// Store is the durable user and activity storage. Users are unique by
// TelegramID; activity is append-only and kept in insertion order.
type Store interface {
	// EnsureUser stores user unless a record with the same TelegramID exists.
	// It reports whether a new record was written.
	EnsureUser(ctx context.Context, user model.User) (bool, error)

	// AppendActivity appends one activity record.
	AppendActivity(ctx context.Context, activity model.Activity) error

	// ListUsers returns every known user in first-seen order. An empty
	// store yields an empty slice, not an error.
	ListUsers(ctx context.Context) ([]model.User, error)

	// ListActivity returns all activity in insertion order.
	ListActivity(ctx context.Context) ([]model.Activity, error)

	Close() error
}
