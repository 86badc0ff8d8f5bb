// Package session persists the CLI login session (token and email) in the
// local SQLite database.
package session

import "context"

// Well-known keys.
const (
	KeyToken = "token"
	KeyEmail = "email"
)

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
