package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMatching(t *testing.T) {
	err := Invariant("discount exceeds assessment")
	assert.True(t, Is(err, KindInvariant))
	assert.False(t, Is(err, KindValidation))

	// wrapped errors still match
	wrapped := fmt.Errorf("apply grant: %w", err)
	assert.True(t, Is(wrapped, KindInvariant))

	assert.False(t, Is(errors.New("plain"), KindInvariant))
	assert.False(t, Is(nil, KindInvariant))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := Transient("storage conflict, retries exhausted", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "deadlock detected")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 422, HTTPStatus(KindValidation))
	assert.Equal(t, 409, HTTPStatus(KindInvariant))
	assert.Equal(t, 409, HTTPStatus(KindInvalidTransition))
	assert.Equal(t, 412, HTTPStatus(KindPrecondition))
	assert.Equal(t, 404, HTTPStatus(KindNotFound))
	assert.Equal(t, 503, HTTPStatus(KindTransient))
}
