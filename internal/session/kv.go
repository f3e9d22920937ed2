// Package session tracks which identity is currently signed in. The session
// pointer is a single small value; it lives in a KV backend so the CLI can
// resume a session across restarts and the tests can use plain memory.
package session

import "context"

// KV is a minimal key/value contract. Get returns common.ErrorNotFound for
// missing keys; Delete of a missing key is not an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
