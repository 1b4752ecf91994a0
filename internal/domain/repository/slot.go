package repository

import "context"

// KeyValueSlot is a persistent string-valued slot addressed by key.
// Get returns ok=false when the key has never been written.
type KeyValueSlot interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
