package core

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by a KVStore when a write does not fit into
// the remaining capacity of the medium.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

type (
	// KVStore is the host key-value store the draft and wishlist stores are
	// built on. Keys and values are plain strings; found reports whether the
	// key holds a value.
	KVStore interface {
		Get(ctx context.Context, key string) (value string, found bool, err error)

		// Set overwrites whatever is stored under key.
		Set(ctx context.Context, key, value string) error

		// Delete removes key. Deleting an absent key is not an error.
		Delete(ctx context.Context, key string) error
	}
)
