package model

import "context"

// KV is a single-value blob store keyed by string. Get returns
// ErrNotFound when the key is absent. Cart and session state live
// behind this interface so tests can substitute an in-memory store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
