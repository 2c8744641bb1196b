package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key or hash field does not exist.
var ErrNotFound = errors.New("key not found")

// Cache defines the key-value operations interface following hexagonal architecture.
// This is a port that can be implemented by different providers (Redis, in-memory, etc.).
type Cache interface {
	// Get retrieves a value by key. Returns ErrNotFound when the key is missing.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified key and TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores a value only if the key does not exist yet and reports whether it was stored.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Append pushes a value to the tail of the list stored at key and returns the new length.
	Append(ctx context.Context, key string, value []byte) (int64, error)

	// Range returns every element of the list stored at key, in insertion order.
	Range(ctx context.Context, key string) ([][]byte, error)

	// AddMember adds a member to the set stored at key.
	AddMember(ctx context.Context, key, member string) error

	// Members returns the members of the set stored at key.
	Members(ctx context.Context, key string) ([]string, error)

	// SetField stores a field of the hash at key.
	SetField(ctx context.Context, key, field string, value []byte) error

	// Field reads a field of the hash at key. Returns ErrNotFound when missing.
	Field(ctx context.Context, key, field string) ([]byte, error)

	// Fields returns every field of the hash at key.
	Fields(ctx context.Context, key string) (map[string][]byte, error)

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
