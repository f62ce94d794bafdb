package directory

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record exists for the sender.
	ErrNotFound = errors.New("directory: user not found")
	// ErrDuplicate is returned when a record for the sender already exists.
	ErrDuplicate = errors.New("directory: user already exists")
	// ErrStoreUnavailable wraps every other backing store failure.
	ErrStoreUnavailable = errors.New("directory: store unavailable")
)

// classify keeps the domain sentinels and marks everything else as unavailable.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) || errors.Is(err, ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// errCode maps an error to the err_code log attribute.
func errCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	default:
		return "store_unavailable"
	}
}
