package repository

import "context"

// Durable keys, shared by every store implementation.
const (
	KeyLoggedIn = "isLoggedIn"
	KeyUsername = "username"
)

// Store is the durable key/value storage holding the session flag and name.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
