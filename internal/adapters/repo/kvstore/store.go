package kvstore

import (
	"context"
	"fmt"

	"github.com/bnema/medconnect/internal/logging"
	"github.com/bnema/medconnect/internal/ports"
)

type document struct {
	store  ports.KVStore
	logger logging.Logger
}

func newDocument(store ports.KVStore, logger logging.Logger) document {
	if logger == nil {
		logger = logging.Nop()
	}

	return document{store: store, logger: logger.With("component", "kvstore")}
}

// read decodes the value under key into doc. It reports false when the key
// is absent or the value cannot be decoded; the latter is logged and doc is
// left for the caller to reset, never returned as an error.
func (d document) read(ctx context.Context, key string, doc any, version func() int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	raw, found, err := d.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found {
		return false, nil
	}

	if err := decodeDocument(raw, doc, version); err != nil {
		d.logger.Warn(ctx, "stored value unreadable, using empty default", "key", key, "error", err)
		return false, nil
	}

	return true, nil
}

func (d document) write(ctx context.Context, key string, doc any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := d.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}

func (d document) exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, found, err := d.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}

	return found, nil
}
