package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrStoreUnavailable wraps any transport or driver fault of the backing store.
var ErrStoreUnavailable = errors.New("store unavailable")

// storeError tags a driver error so callers can match ErrStoreUnavailable
// while the original error stays inspectable.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
