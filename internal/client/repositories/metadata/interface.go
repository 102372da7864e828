package metadata

import (
	"context"
)

// Well-known keys of the session record.
const (
	KeyUsername     = "username"
	KeyRefreshToken = "refresh_token"
)

// Repository is a small key/value store in the local database.
// Get on a missing key returns (nil, nil).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
