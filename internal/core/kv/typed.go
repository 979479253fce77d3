package kv

import (
	"context"
	"time"
)

// TypedKV provides type-safe access to one namespace of a KV store.
type TypedKV[T any] struct {
	store  KV
	prefix string
	ttl    time.Duration
}

// Scoped returns a TypedKV[T] that prefixes all keys with "namespace:".
// Values written with Put expire after ttl; a zero ttl stores without expiry.
func Scoped[T any](store KV, namespace string, ttl time.Duration) *TypedKV[T] {
	return &TypedKV[T]{
		store:  store,
		prefix: namespace + ":",
		ttl:    ttl,
	}
}

// Namespace returns the key prefix including the trailing colon.
func (t *TypedKV[T]) Namespace() string {
	return t.prefix
}

// Get retrieves and deserializes a value by key.
func (t *TypedKV[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	if err := t.store.Get(ctx, t.prefix+key, &v); err != nil {
		return v, err
	}
	return v, nil
}

// Put stores a value using the namespace TTL.
func (t *TypedKV[T]) Put(ctx context.Context, key string, value T) error {
	if t.ttl > 0 {
		return t.store.SetTTL(ctx, t.prefix+key, value, t.ttl)
	}
	return t.store.Set(ctx, t.prefix+key, value)
}

// Delete removes a key.
func (t *TypedKV[T]) Delete(ctx context.Context, key string) error {
	return t.store.Delete(ctx, t.prefix+key)
}

// Has returns whether a key exists.
func (t *TypedKV[T]) Has(ctx context.Context, key string) (bool, error) {
	return t.store.Has(ctx, t.prefix+key)
}

// Clear deletes every key in the namespace.
func (t *TypedKV[T]) Clear(ctx context.Context) (int64, error) {
	return t.store.Clear(ctx, t.prefix)
}
