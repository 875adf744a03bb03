package errs

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrAmbiguousTarget  = errors.New("ambiguous target")
	ErrStoreTimeout     = errors.New("store timeout")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Store classifies a failure coming back from an underlying store call.
// Deadline expiry becomes ErrStoreTimeout, already-classified errors pass
// through unchanged, and everything else (connection refused, auth failure,
// protocol error) becomes ErrStoreUnavailable.
func Store(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrAmbiguousTarget),
		errors.Is(err, ErrStoreTimeout),
		errors.Is(err, ErrStoreUnavailable):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrStoreTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
