package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreNil(t *testing.T) {
	assert.NoError(t, Store(nil))
}

func TestStoreClassifiesDeadline(t *testing.T) {
	err := Store(fmt.Errorf("query aborted: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, ErrStoreTimeout)
}

func TestStoreClassifiesUnknownAsUnavailable(t *testing.T) {
	err := Store(errors.New("connection refused"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestStorePassesThroughClassified(t *testing.T) {
	for _, sentinel := range []error{ErrInvalidArgument, ErrNotFound, ErrAmbiguousTarget, ErrStoreTimeout, ErrStoreUnavailable} {
		wrapped := fmt.Errorf("%w: detail", sentinel)
		assert.Equal(t, wrapped, Store(wrapped))
	}
}
