package ports

import "context"

// KVStore is a durable string-keyed store. Get reports found=false for a
// missing key; Remove of a missing key is not an error.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}
