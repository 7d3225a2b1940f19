package dao

import (
	"context"
)

// Service is a minimal keyed persistence contract shared by the gate and the
// engine. In-process deployments use the in-memory store; durable deployments
// substitute an implementation backed by a transactional keyed store.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context) ([]*T, error)
}
