package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityErrorsWrapGenericErrors(t *testing.T) {
	t.Parallel()

	notFound := []error{ErrUserNotFound, ErrProviderNotFound, ErrBookingNotFound}
	for _, err := range notFound {
		assert.True(t, IsNotFoundError(err), err.Error())
		assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", err)), err.Error())
	}

	duplicates := []error{ErrEmailExists, ErrProviderProfileExists, ErrBookingExists, ErrReviewExists}
	for _, err := range duplicates {
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.False(t, IsNotFoundError(err), err.Error())
	}

	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(errors.New("boom")))
	assert.False(t, errors.Is(ErrReviewExists, ErrEmailExists))
}
